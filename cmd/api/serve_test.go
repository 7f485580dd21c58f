// AngelaMos | 2026
// serve_test.go

package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloseLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	closeLogged(logger, "database", func() error {
		calls++
		return nil
	})
	assert.Equal(t, 1, calls)
	assert.Empty(t, buf.String())

	closeLogged(logger, "redis", func() error {
		calls++
		return errors.New("connection reset")
	})
	assert.Equal(t, 2, calls)
	assert.Contains(t, buf.String(), "redis close error")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestCloseLoggedRunsOnEarlyReturn(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	closed := false

	setup := func() error {
		defer closeLogged(logger, "database", func() error {
			closed = true
			return nil
		})
		return errors.New("redis unreachable")
	}

	assert.Error(t, setup())
	assert.True(t, closed)
}
