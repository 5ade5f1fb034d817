// Package selection turns raw terminal input into menu commands and category
// choices, and tracks where the interactive loop is between prompts.
package selection

import (
	"strings"

	"github.com/ludo-technologies/xingstat/domain"
)

var menuTokens = map[string]domain.MenuCommand{
	"A":    domain.MenuListing,
	"1":    domain.MenuListing,
	"B":    domain.MenuWindowStats,
	"2":    domain.MenuWindowStats,
	"C":    domain.MenuYearOverYear,
	"3":    domain.MenuYearOverYear,
	"D":    domain.MenuChart,
	"4":    domain.MenuChart,
	"Q":    domain.MenuQuit,
	"QUIT": domain.MenuQuit,
}

// ResolveMenuChoice maps a main menu answer to a command. Matching ignores case
// and surrounding whitespace; anything unrecognised is domain.MenuInvalid.
func ResolveMenuChoice(raw string) domain.MenuCommand {
	if cmd, ok := menuTokens[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return cmd
	}
	return domain.MenuInvalid
}

// ResolveCategoryChoice maps a category prompt answer to a table position.
//
// Empty input is the back sentinel. Otherwise the first category, in table
// order, whose display name or position-derived code equals the input
// (ignoring case) is selected. Codes are derived from the table on every call.
func ResolveCategoryChoice(table *domain.Table, raw string) domain.CategoryChoice {
	input := strings.TrimSpace(raw)
	if input == "" {
		return domain.BackChoice()
	}

	for i := 0; i < table.Len(); i++ {
		if strings.EqualFold(input, table.Name(i)) || strings.EqualFold(input, table.Code(i)) {
			return domain.CategoryAt(i)
		}
	}
	return domain.InvalidChoice()
}
