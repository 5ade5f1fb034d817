package domain

// MenuCommand is a resolved main menu entry
type MenuCommand int

const (
	MenuInvalid MenuCommand = iota
	MenuListing
	MenuWindowStats
	MenuYearOverYear
	MenuChart
	MenuQuit
)

// String returns the menu letter of the command
func (c MenuCommand) String() string {
	switch c {
	case MenuListing:
		return "A"
	case MenuWindowStats:
		return "B"
	case MenuYearOverYear:
		return "C"
	case MenuChart:
		return "D"
	case MenuQuit:
		return "QUIT"
	default:
		return "invalid"
	}
}

// ReportKind maps a report command to its report; ok is false for quit and invalid
func (c MenuCommand) ReportKind() (ReportKind, bool) {
	switch c {
	case MenuListing:
		return ReportKindListing, true
	case MenuWindowStats:
		return ReportKindWindowStats, true
	case MenuYearOverYear:
		return ReportKindYearOverYear, true
	case MenuChart:
		return ReportKindChart, true
	default:
		return "", false
	}
}

// NeedsCategory reports whether the command asks the user for a category
func (c MenuCommand) NeedsCategory() bool {
	return c == MenuWindowStats || c == MenuYearOverYear
}

// ChoiceKind tags a CategoryChoice
type ChoiceKind int

const (
	ChoiceInvalid ChoiceKind = iota
	ChoiceBack
	ChoiceCategory
)

// CategoryChoice is the resolved answer to the category prompt.
// Index is meaningful only when Kind is ChoiceCategory.
type CategoryChoice struct {
	Kind  ChoiceKind
	Index int
}

// InvalidChoice is the unresolved result
func InvalidChoice() CategoryChoice {
	return CategoryChoice{Kind: ChoiceInvalid, Index: -1}
}

// BackChoice is the cancel sentinel
func BackChoice() CategoryChoice {
	return CategoryChoice{Kind: ChoiceBack, Index: -1}
}

// CategoryAt selects the category at index
func CategoryAt(index int) CategoryChoice {
	return CategoryChoice{Kind: ChoiceCategory, Index: index}
}

// SessionState is a state of the interactive selection loop
type SessionState int

const (
	StateAwaitingMenuChoice SessionState = iota
	StateAwaitingCategoryChoice
	StateDispatching
	StateDone
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingMenuChoice:
		return "awaiting_menu_choice"
	case StateAwaitingCategoryChoice:
		return "awaiting_category_choice"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
