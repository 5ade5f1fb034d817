package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ConsoleImpl is a line-oriented console over a reader and a writer
type ConsoleImpl struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console reading lines from in and writing to out
func NewConsole(in io.Reader, out io.Writer) *ConsoleImpl {
	return &ConsoleImpl{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next line without its terminator.
// A final line without a newline is returned before io.EOF.
func (c *ConsoleImpl) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(c.out, prompt); err != nil {
			return "", err
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Writer returns the destination for menus and reports
func (c *ConsoleImpl) Writer() io.Writer {
	return c.out
}

// IsTerminal reports whether v is an *os.File attached to a terminal
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsInteractiveEnvironment returns true if stderr is a terminal and the
// process is not running under CI.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return IsTerminal(os.Stderr)
}
