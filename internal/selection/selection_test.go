package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/xingstat/domain"
)

func borderTable(t *testing.T) *domain.Table {
	t.Helper()
	table, err := domain.NewTable([]domain.Category{
		{Name: "Bus Passengers", Values: []int{1, 2}},
		{Name: "Buses", Values: []int{1, 2}},
		{Name: "Personal Vehicles", Values: []int{1, 2}},
		{Name: "Loaded Trucks", Values: []int{1, 2}},
	})
	require.NoError(t, err)
	return table
}

func TestResolveMenuChoice(t *testing.T) {
	tests := []struct {
		input string
		want  domain.MenuCommand
	}{
		{"A", domain.MenuListing},
		{"a", domain.MenuListing},
		{"1", domain.MenuListing},
		{"B", domain.MenuWindowStats},
		{"2", domain.MenuWindowStats},
		{"c", domain.MenuYearOverYear},
		{"3", domain.MenuYearOverYear},
		{"d", domain.MenuChart},
		{"4", domain.MenuChart},
		{"quit", domain.MenuQuit},
		{"QUIT", domain.MenuQuit},
		{"Quit", domain.MenuQuit},
		{"q", domain.MenuQuit},
		{"  quit  ", domain.MenuQuit},
		{" a", domain.MenuListing},
		{"   ", domain.MenuInvalid},
		{"quitter", domain.MenuInvalid},
		{"5", domain.MenuInvalid},
		{"E", domain.MenuInvalid},
		{"", domain.MenuInvalid},
		{"AB", domain.MenuInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMenuChoice(tt.input))
		})
	}
}

func TestResolveCategoryChoice(t *testing.T) {
	table := borderTable(t)

	tests := []struct {
		name  string
		input string
		want  domain.CategoryChoice
	}{
		{"empty is back", "", domain.BackChoice()},
		{"letter code", "b", domain.CategoryAt(1)},
		{"upper letter code", "D", domain.CategoryAt(3)},
		{"full name", "personal vehicles", domain.CategoryAt(2)},
		{"shouting name", "BUS PASSENGERS", domain.CategoryAt(0)},
		{"unknown letter", "E", domain.InvalidChoice()},
		{"partial name", "bus", domain.InvalidChoice()},
		{"menu number is not a code", "1", domain.InvalidChoice()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCategoryChoice(table, tt.input))
		})
	}
}

func TestResolveCategoryChoice_EmptyIsAlwaysBack(t *testing.T) {
	single, err := domain.NewTable([]domain.Category{{Name: "Only", Values: []int{1}}})
	require.NoError(t, err)

	for _, table := range []*domain.Table{borderTable(t), single, nil} {
		assert.Equal(t, domain.ChoiceBack, ResolveCategoryChoice(table, "").Kind)
	}
}

func TestResolveCategoryChoice_CodesFollowTableSize(t *testing.T) {
	cats := make([]domain.Category, 6)
	for i := range cats {
		cats[i] = domain.Category{Name: "Series " + domain.SelectionCode(i+10), Values: []int{1}}
	}
	table, err := domain.NewTable(cats)
	require.NoError(t, err)

	assert.Equal(t, domain.CategoryAt(5), ResolveCategoryChoice(table, "f"))
	assert.Equal(t, domain.InvalidChoice(), ResolveCategoryChoice(table, "g"))
}

func TestMachine_ReportWithoutCategory(t *testing.T) {
	m := NewMachine(borderTable(t))
	assert.Equal(t, domain.StateAwaitingMenuChoice, m.State())

	step, err := m.Feed("a")
	require.NoError(t, err)
	assert.True(t, step.Dispatch)
	assert.Equal(t, domain.MenuListing, step.Command)
	assert.Equal(t, domain.StateDispatching, m.State())

	require.NoError(t, m.Complete())
	assert.Equal(t, domain.StateAwaitingMenuChoice, m.State())
}

func TestMachine_InvalidInputKeepsState(t *testing.T) {
	m := NewMachine(borderTable(t))

	step, err := m.Feed("nope")
	require.NoError(t, err)
	assert.True(t, step.Invalid)
	assert.Equal(t, domain.StateAwaitingMenuChoice, m.State())

	_, err = m.Feed("2")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingCategoryChoice, m.State())

	step, err = m.Feed("Z")
	require.NoError(t, err)
	assert.True(t, step.Invalid)
	assert.Equal(t, domain.MenuWindowStats, step.Command)
	assert.Equal(t, domain.StateAwaitingCategoryChoice, m.State())
}

func TestMachine_CategorySelection(t *testing.T) {
	m := NewMachine(borderTable(t))

	step, err := m.Feed("C")
	require.NoError(t, err)
	assert.False(t, step.Dispatch)
	assert.Equal(t, domain.MenuYearOverYear, m.Pending())

	step, err = m.Feed("loaded trucks")
	require.NoError(t, err)
	assert.True(t, step.Dispatch)
	assert.False(t, step.Cancelled())
	assert.Equal(t, domain.CategoryAt(3), step.Choice)
	assert.Equal(t, domain.MenuYearOverYear, step.Command)

	require.NoError(t, m.Complete())
	assert.Equal(t, domain.StateAwaitingMenuChoice, m.State())
}

func TestMachine_BackCancels(t *testing.T) {
	m := NewMachine(borderTable(t))

	_, err := m.Feed("b")
	require.NoError(t, err)

	step, err := m.Feed("")
	require.NoError(t, err)
	assert.True(t, step.Cancelled())
	assert.Equal(t, domain.StateDispatching, m.State())

	require.NoError(t, m.Complete())
	assert.Equal(t, domain.StateAwaitingMenuChoice, m.State())
}

func TestMachine_Quit(t *testing.T) {
	m := NewMachine(borderTable(t))

	step, err := m.Feed("Quit")
	require.NoError(t, err)
	assert.True(t, step.Dispatch)
	assert.Equal(t, domain.MenuQuit, step.Command)

	require.NoError(t, m.Complete())
	assert.True(t, m.Done())

	_, err = m.Feed("a")
	assert.Error(t, err)
	assert.Error(t, m.Complete())
}
