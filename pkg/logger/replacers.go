package logger

import (
	"fmt"
	"log/slog"
)

// Levels above slog.LevelError.
const (
	LevelCritical = slog.Level(12)
	LevelPanic    = slog.Level(14)
	LevelFatal    = slog.Level(16)
)

type replacer func(groups []string, attr slog.Attr) slog.Attr

var namedLevels = []struct {
	level slog.Level
	name  string
}{
	{LevelFatal, "FATAL"},
	{LevelPanic, "PANIC"},
	{LevelCritical, "CRITICAL"},
}

// levelAttrReplacer names the custom levels, e.g. CRITICAL or PANIC+1.
func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) != 0 || attr.Key != slog.LevelKey {
		return attr
	}
	l, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}
	for _, named := range namedLevels {
		if l < named.level {
			continue
		}
		name := named.name
		if offset := l - named.level; offset != 0 {
			name = fmt.Sprintf("%s%+d", name, offset)
		}
		return slog.String(attr.Key, name)
	}
	return attr
}

// durationAttrReplacer logs durations as whole milliseconds.
func durationAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindDuration {
		return attr
	}
	return slog.Int64(attr.Key, attr.Value.Duration().Milliseconds())
}

func chainReplacers(replacers ...replacer) replacer {
	return func(groups []string, attr slog.Attr) slog.Attr {
		for _, r := range replacers {
			attr = r(groups, attr)
		}
		return attr
	}
}
