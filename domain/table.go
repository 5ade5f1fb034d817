package domain

import (
	"fmt"
	"strings"
)

// BaseYear is the calendar year of offset 0 in every category series.
const BaseYear = 2000

// Category is one named series of yearly counts.
type Category struct {
	Name   string `json:"name" yaml:"name"`
	Values []int  `json:"values" yaml:"values"`
}

// Table is the ordered, immutable set of categories loaded at startup.
// Row order defines the selection codes (A, B, C, ...), so it is never reordered.
type Table struct {
	categories []Category
}

// NewTable validates the minimal shape of the data and returns an immutable table.
// The input slices are copied.
func NewTable(categories []Category) (*Table, error) {
	if len(categories) == 0 {
		return nil, NewValidationError("table has no categories")
	}

	width := len(categories[0].Values)
	if width == 0 {
		return nil, NewValidationError(fmt.Sprintf("category %q has no yearly values", categories[0].Name))
	}

	seen := make(map[string]int, len(categories))
	copied := make([]Category, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, NewValidationError(fmt.Sprintf("category at position %d has an empty name", i))
		}
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, NewValidationError(fmt.Sprintf("duplicate category name %q (positions %d and %d)", name, prev, i))
		}
		seen[key] = i

		if len(c.Values) != width {
			return nil, NewValidationError(fmt.Sprintf("category %q has %d values, expected %d", name, len(c.Values), width))
		}

		values := make([]int, width)
		copy(values, c.Values)
		copied[i] = Category{Name: name, Values: values}
	}

	return &Table{categories: copied}, nil
}

// Len returns the number of categories.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.categories)
}

// Years returns the number of yearly values each category carries.
func (t *Table) Years() int {
	if t.Len() == 0 {
		return 0
	}
	return len(t.categories[0].Values)
}

// FirstYear returns the year of offset 0.
func (t *Table) FirstYear() int {
	return BaseYear
}

// LastYear returns the year of the final offset.
func (t *Table) LastYear() int {
	return BaseYear + t.Years() - 1
}

// Valid reports whether index addresses a category.
func (t *Table) Valid(index int) bool {
	return index >= 0 && index < t.Len()
}

// Name returns the display name of the category at index.
func (t *Table) Name(index int) string {
	if !t.Valid(index) {
		return ""
	}
	return t.categories[index].Name
}

// Values returns a copy of the series at index.
func (t *Table) Values(index int) []int {
	if !t.Valid(index) {
		return nil
	}
	out := make([]int, len(t.categories[index].Values))
	copy(out, t.categories[index].Values)
	return out
}

// Category returns a copy of the category at index.
func (t *Table) Category(index int) (Category, bool) {
	if !t.Valid(index) {
		return Category{}, false
	}
	return Category{Name: t.categories[index].Name, Values: t.Values(index)}, true
}

// Categories returns a copy of every category in table order.
func (t *Table) Categories() []Category {
	out := make([]Category, t.Len())
	for i := range out {
		out[i], _ = t.Category(i)
	}
	return out
}

// IndexOf finds a category by case-insensitive name. Returns -1 when absent.
func (t *Table) IndexOf(name string) int {
	name = strings.TrimSpace(name)
	for i := 0; i < t.Len(); i++ {
		if strings.EqualFold(t.categories[i].Name, name) {
			return i
		}
	}
	return -1
}

// Code returns the selection code for the category at index.
func (t *Table) Code(index int) string {
	if !t.Valid(index) {
		return ""
	}
	return SelectionCode(index)
}

// SelectionCode derives the letter code for a table position:
// 0 -> "A", 25 -> "Z", 26 -> "AA", 27 -> "AB", and so on.
func SelectionCode(position int) string {
	if position < 0 {
		return ""
	}
	var buf []byte
	for n := position + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}
