package engine

import (
	"github.com/ludo-technologies/xingstat/domain"
)

// YearOverYear computes the percentage change between every pair of
// consecutive years and flags the pairs whose change is strictly above
// thresholdPercent.
//
// An unchanged count is labelled as a decrease because only a strictly
// larger successor counts as an increase.
func YearOverYear(table *domain.Table, index int, thresholdPercent float64) (*domain.YearOverYear, error) {
	if !table.Valid(index) {
		return nil, domain.NewInvalidInputError("category index out of range", nil)
	}

	values := table.Values(index)
	result := &domain.YearOverYear{
		ThresholdPercent: thresholdPercent,
		Changes:          make([]domain.YearChange, 0, len(values)),
		Flagged:          []domain.YearPair{},
	}

	for i := 0; i+1 < len(values); i++ {
		from, to := domain.BaseYear+i, domain.BaseYear+i+1
		if values[i] == 0 {
			return nil, domain.NewDivisionUndefinedError(table.Name(index), from)
		}

		pct := float64(values[i+1]-values[i]) / float64(values[i]) * 100

		direction := domain.DirectionDecrease
		if values[i+1] > values[i] {
			direction = domain.DirectionIncrease
		}

		result.Changes = append(result.Changes, domain.YearChange{
			FromYear:      from,
			ToYear:        to,
			PercentChange: pct,
			Direction:     direction,
		})

		if pct > thresholdPercent {
			result.Flagged = append(result.Flagged, domain.YearPair{FromYear: from, ToYear: to})
		}
	}

	return result, nil
}
