package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/xingstat/domain"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// DividerWidth is the width of every rule printed around reports and menus
const DividerWidth = 119

// FormatUtils provides shared text formatting with optional ANSI color
type FormatUtils struct {
	bold   *color.Color
	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils(useColor bool) *FormatUtils {
	f := &FormatUtils{
		bold:   color.New(color.Bold),
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{f.bold, f.cyan, f.green, f.yellow, f.red} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Divider returns a full-width rule of dashes
func (f *FormatUtils) Divider() string {
	return strings.Repeat("-", DividerWidth)
}

// TitledRule centres " title " in a full-width rule. The extra dash of an
// odd remainder goes to the right.
func (f *FormatUtils) TitledRule(title string) string {
	label := " " + title + " "
	remaining := DividerWidth - len(label)
	if remaining < 2 {
		return f.bold.Sprint(label)
	}
	left := remaining / 2
	right := remaining - left
	return strings.Repeat("-", left) + f.bold.Sprint(label) + strings.Repeat("-", right)
}

// Heading emphasises a line of text
func (f *FormatUtils) Heading(s string) string {
	return f.bold.Sprint(s)
}

// Key colors a selection code or menu key
func (f *FormatUtils) Key(s string) string {
	return f.cyan.Sprint(s)
}

// FormatDirection colors a year-over-year direction label
func (f *FormatUtils) FormatDirection(d domain.Direction) string {
	if d == domain.DirectionIncrease {
		return f.green.Sprint(string(d))
	}
	return f.yellow.Sprint(string(d))
}

// Flag highlights a flagged item
func (f *FormatUtils) Flag(s string) string {
	return f.yellow.Sprint(s)
}

// Error colors a one-line diagnostic
func (f *FormatUtils) Error(s string) string {
	return f.red.Sprint(s)
}

// FormatPercent formats a percentage with two decimals
func (f *FormatUtils) FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

// FormatYearRange formats a consecutive year pair as "2000-2001"
func (f *FormatUtils) FormatYearRange(from, to int) string {
	return fmt.Sprintf("%d-%d", from, to)
}

// Lower returns the category name as it reads inside a sentence
func (f *FormatUtils) Lower(name string) string {
	return strings.ToLower(name)
}
