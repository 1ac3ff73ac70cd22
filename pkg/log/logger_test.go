package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	logger := New("test")

	SetLevel(Notice)
	logger.Info("hidden info")
	logger.Noticef("shown %d", 42)
	assert.NotContains(t, buf.String(), "hidden info")
	assert.Contains(t, buf.String(), "shown 42")
	assert.Contains(t, buf.String(), "[test]")
	assert.Contains(t, buf.String(), "[NOTICE]")

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("row %d done", 3)
	assert.Contains(t, buf.String(), "row 3 done")

	buf.Reset()
	SetLevel(Error)
	logger.Warning("quiet")
	assert.Empty(t, buf.String())
}

func TestSetSink_KeepsLevel(t *testing.T) {
	SetLevel(Warning)
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stderr)
		SetLevel(Notice)
	}()

	logger := New("renderer")
	logger.Notice("wrote out.png")
	logger.Warningf("render of %q stopped", "cover")

	assert.Equal(t, Warning, CurrentLevel())
	assert.NotContains(t, buf.String(), "wrote out.png")
	assert.Contains(t, buf.String(), `render of "cover" stopped`)
}

func TestSetLevel_IgnoresUnknown(t *testing.T) {
	SetLevel(Info)
	defer SetLevel(Notice)

	SetLevel(Level(42))
	assert.Equal(t, Info, CurrentLevel())
}
