package engine

import (
	"github.com/ludo-technologies/xingstat/domain"
)

// YearlyListing returns (year, count) for every offset of the category at index.
// The index is expected to be validated by the caller; an out-of-range index
// yields an empty listing.
func YearlyListing(table *domain.Table, index int) []domain.YearCount {
	values := table.Values(index)
	listing := make([]domain.YearCount, len(values))
	for offset, count := range values {
		listing[offset] = domain.YearCount{
			Year:  domain.BaseYear + offset,
			Count: count,
		}
	}
	return listing
}
