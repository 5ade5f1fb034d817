package selection

import (
	"fmt"

	"github.com/ludo-technologies/xingstat/domain"
)

// Step is the outcome of feeding one line of input to the Machine
type Step struct {
	// Invalid is set when the input was not recognised; the state is unchanged.
	Invalid bool

	// Command is the menu command being handled
	Command domain.MenuCommand

	// Choice is the category answer for commands that ask for one
	Choice domain.CategoryChoice

	// Dispatch is set when the machine entered StateDispatching and the
	// caller must run Command and then call Complete.
	Dispatch bool
}

// Cancelled reports whether the user backed out of the category prompt
func (s Step) Cancelled() bool {
	return s.Dispatch && s.Choice.Kind == domain.ChoiceBack
}

// Machine drives the menu and category prompts
type Machine struct {
	table   *domain.Table
	state   domain.SessionState
	command domain.MenuCommand
}

// NewMachine creates a machine awaiting a menu choice
func NewMachine(table *domain.Table) *Machine {
	return &Machine{
		table:   table,
		state:   domain.StateAwaitingMenuChoice,
		command: domain.MenuInvalid,
	}
}

// State returns the current state
func (m *Machine) State() domain.SessionState {
	return m.state
}

// Pending returns the command awaiting a category or dispatch
func (m *Machine) Pending() domain.MenuCommand {
	return m.command
}

// Feed consumes one line of input in the current state
func (m *Machine) Feed(raw string) (Step, error) {
	switch m.state {
	case domain.StateAwaitingMenuChoice:
		cmd := ResolveMenuChoice(raw)
		if cmd == domain.MenuInvalid {
			return Step{Invalid: true, Command: cmd, Choice: domain.InvalidChoice()}, nil
		}
		m.command = cmd
		if cmd.NeedsCategory() {
			m.state = domain.StateAwaitingCategoryChoice
			return Step{Command: cmd, Choice: domain.InvalidChoice()}, nil
		}
		m.state = domain.StateDispatching
		return Step{Command: cmd, Choice: domain.InvalidChoice(), Dispatch: true}, nil

	case domain.StateAwaitingCategoryChoice:
		choice := ResolveCategoryChoice(m.table, raw)
		if choice.Kind == domain.ChoiceInvalid {
			return Step{Invalid: true, Command: m.command, Choice: choice}, nil
		}
		m.state = domain.StateDispatching
		return Step{Command: m.command, Choice: choice, Dispatch: true}, nil

	default:
		return Step{}, fmt.Errorf("cannot accept input in state %s", m.state)
	}
}

// Complete finishes a dispatch: quit moves to StateDone, everything else
// returns to the main menu.
func (m *Machine) Complete() error {
	if m.state != domain.StateDispatching {
		return fmt.Errorf("nothing to complete in state %s", m.state)
	}
	if m.command == domain.MenuQuit {
		m.state = domain.StateDone
	} else {
		m.state = domain.StateAwaitingMenuChoice
	}
	m.command = domain.MenuInvalid
	return nil
}

// Done reports whether the loop has terminated
func (m *Machine) Done() bool {
	return m.state == domain.StateDone
}
