package service

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_ReadLine(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("a\r\nquit\nlast"), &out)

	line, err := c.ReadLine("Please enter your selection: ")
	require.NoError(t, err)
	assert.Equal(t, "a", line)

	line, err = c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "quit", line)

	line, err = c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = c.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Please enter your selection: > ", out.String())
	assert.Same(t, &out, c.Writer())
}

func TestConsole_EmptyLine(t *testing.T) {
	c := NewConsole(strings.NewReader("\n"), io.Discard)
	line, err := c.ReadLine("")
	require.NoError(t, err)
	assert.Equal(t, "", line)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
	assert.False(t, IsTerminal(nil))
}
