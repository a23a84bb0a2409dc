// Package slogx holds typed slog.Attr constructors so call sites never pass loose key-value pairs.
package slogx

import (
	"fmt"
	"log/slog"
	"time"
)

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// Error returns an attribute under ErrorKey, or an empty attribute (dropped by handlers) for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Stringer renders value eagerly. Amounts and addresses are logged through it.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Uint64(key string, v uint64) slog.Attr {
	return slog.Uint64(key, v)
}

func Bool(key string, v bool) slog.Attr {
	return slog.Bool(key, v)
}

// Time logs v without its monotonic reading.
func Time(key string, v time.Time) slog.Attr {
	return slog.Time(key, v)
}

// Duration is logged in milliseconds by the configured logger.
func Duration(key string, v time.Duration) slog.Attr {
	return slog.Duration(key, v)
}
