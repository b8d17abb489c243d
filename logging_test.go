package hostmux

import (
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestNewLogger(t *testing.T) {
	lg, err := NewLogger("debug", "json")
	assert.Nil(t, err)
	assert.True(t, lg != nil)

	lg, err = NewLogger("warn", LogFormatConsole)
	assert.Nil(t, err)
	assert.True(t, lg != nil)

	// Empty level defaults to info
	lg, err = NewLogger("", "json")
	assert.Nil(t, err)
	assert.True(t, lg != nil)
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger("verbose", "json")
	assert.True(t, err != nil)
}
