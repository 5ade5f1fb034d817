package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/xingstat/domain"
)

// borderTable is a four-category, four-year table with round numbers
func borderTable(t *testing.T) *domain.Table {
	t.Helper()
	table, err := domain.NewTable([]domain.Category{
		{Name: "Bus Passengers", Values: []int{3000, 3300, 2400, 2400}},
		{Name: "Buses", Values: []int{100, 110, 80, 120}},
		{Name: "Personal Vehicles", Values: []int{125000, 120000, 118000, 121000}},
		{Name: "Loaded Trucks", Values: []int{6000, 6100, 6200, 5900}},
	})
	require.NoError(t, err)
	return table
}
