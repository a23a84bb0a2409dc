package slogx

import (
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	assert.True(t, Error(nil).Equal(slog.Attr{}))

	attr := Error(errors.New("boom"))
	assert.Equal(t, ErrorKey, attr.Key)
	assert.EqualError(t, attr.Value.Any().(error), "boom")
}

func TestStringer(t *testing.T) {
	attr := Stringer("amount", uint128.From64(105))
	assert.Equal(t, slog.KindString, attr.Value.Kind())
	assert.Equal(t, "105", attr.Value.String())
}
