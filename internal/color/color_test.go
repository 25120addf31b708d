package color

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPalette_PlainForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPalette(&buf)

	assert.Equal(t, "PASSED", p.Pass.Render("PASSED"))
	assert.Equal(t, "FAILED", p.Fail.Render("FAILED"))
	assert.Equal(t, "CACHED", p.Cached.Render("CACHED"))
	assert.Equal(t, "Failures", p.Header.Render("Failures"))
}
