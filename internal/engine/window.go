package engine

import (
	"github.com/ludo-technologies/xingstat/domain"
)

// WindowStats summarises the first windowSize values of the category at index.
// A series shorter than the window is summarised in full.
func WindowStats(table *domain.Table, index int, windowSize int) (*domain.WindowStats, error) {
	if windowSize <= 0 {
		return nil, domain.NewInvalidWindowError(windowSize)
	}
	if !table.Valid(index) {
		return nil, domain.NewInvalidInputError("category index out of range", nil)
	}

	values := table.Values(index)
	if len(values) < windowSize {
		windowSize = len(values)
	}
	window := values[:windowSize]

	sum := 0
	maxOffset := 0
	for offset, v := range window {
		sum += v
		// strict comparison keeps the earliest year on ties
		if v > window[maxOffset] {
			maxOffset = offset
		}
	}

	return &domain.WindowStats{
		WindowSize: windowSize,
		FromYear:   domain.BaseYear,
		ToYear:     domain.BaseYear + windowSize - 1,
		Mean:       sum / windowSize,
		ExactMean:  float64(sum) / float64(windowSize),
		MaxValue:   window[maxOffset],
		MaxYear:    domain.BaseYear + maxOffset,
	}, nil
}
