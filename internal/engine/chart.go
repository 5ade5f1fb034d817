package engine

import (
	"fmt"

	"github.com/ludo-technologies/xingstat/domain"
)

// ChartSeries assembles the ratio and secondary series for the two chart
// panels. Nothing is scaled here; display units belong to the renderer.
func ChartSeries(table *domain.Table, roles domain.ChartRoles) (*domain.ChartSeries, error) {
	for _, pos := range []int{roles.Numerator, roles.Denominator, roles.Secondary} {
		if !table.Valid(pos) {
			return nil, domain.NewInvalidInputError(
				fmt.Sprintf("chart needs a category at position %d, table has %d", pos, table.Len()), nil)
		}
	}

	numerator := table.Values(roles.Numerator)
	denominator := table.Values(roles.Denominator)

	series := &domain.ChartSeries{
		Years:           make([]int, len(numerator)),
		NumeratorName:   table.Name(roles.Numerator),
		DenominatorName: table.Name(roles.Denominator),
		Ratio:           make([]float64, len(numerator)),
		SecondaryName:   table.Name(roles.Secondary),
		Secondary:       table.Values(roles.Secondary),
	}

	for i := range numerator {
		year := domain.BaseYear + i
		if denominator[i] == 0 {
			return nil, domain.NewDivisionUndefinedError(series.DenominatorName, year)
		}
		series.Years[i] = year
		series.Ratio[i] = float64(numerator[i]) / float64(denominator[i])
	}

	return series, nil
}
