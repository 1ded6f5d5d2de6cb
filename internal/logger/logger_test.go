package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()
	assert.NotEqual(t, zerolog.Logger{}, log)
}

func capture() *bytes.Buffer {
	var buf bytes.Buffer
	log = zerolog.New(&buf)
	return &buf
}

func TestInfo(t *testing.T) {
	buf := capture()

	Info("booking created", "booking_id", "b-1", "total", 500000)

	output := buf.String()
	assert.Contains(t, output, "booking created")
	assert.Contains(t, output, `"booking_id":"b-1"`)
	assert.Contains(t, output, `"total":500000`)
}

func TestInfoOddFields(t *testing.T) {
	buf := capture()

	Info("message", "dangling")

	// an odd trailing key is kept, not dropped
	assert.Contains(t, buf.String(), `"dangling":""`)
}

func TestError(t *testing.T) {
	buf := capture()

	Error("sweep failed", "error", "connection refused")

	output := buf.String()
	assert.Contains(t, output, `"level":"error"`)
	assert.Contains(t, output, "sweep failed")
	assert.Contains(t, output, "connection refused")
}

func TestInfof(t *testing.T) {
	buf := capture()

	Infof("server starting on port %s", "8080")

	assert.Contains(t, buf.String(), "server starting on port 8080")
}

func TestErrorf(t *testing.T) {
	buf := capture()

	Errorf("failed after %d attempts", 3)

	output := buf.String()
	assert.Contains(t, output, `"level":"error"`)
	assert.Contains(t, output, "failed after 3 attempts")
}

func TestWarn(t *testing.T) {
	buf := capture()

	Warn("queue backlog", "length", 120)

	output := buf.String()
	assert.Contains(t, output, `"level":"warn"`)
	assert.Contains(t, output, `"length":120`)
}
