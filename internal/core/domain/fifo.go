// internal/core/domain/fifo.go
package domain

import (
	"bytes"
	"sort"
)

// RankedUnit pairs a unit with its FIFO rank inside its attribute group.
// Rank 1 is the unit that should be sold next.
type RankedUnit struct {
	Unit StockUnit `json:"unit"`
	Rank int       `json:"rank"`
}

// RankUnits orders units for FIFO consumption: purchase date ascending,
// ties broken by unit id ascending (UUIDv7, so intake order). Ranks are
// assigned per attribute group; the returned slice keeps the global sort
// order. The function is pure and holds no state.
//
// Rank is guidance, not enforcement: any available unit may still be
// chosen for a sale, but selling out of order is a visible policy
// deviation, not a structural error.
func RankUnits(units []StockUnit) []RankedUnit {
	sorted := make([]StockUnit, len(units))
	copy(sorted, units)

	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := sorted[i].PurchaseDate, sorted[j].PurchaseDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return bytes.Compare(sorted[i].ID[:], sorted[j].ID[:]) < 0
	})

	ranked := make([]RankedUnit, 0, len(sorted))
	groupRank := make(map[string]int, len(sorted))
	for _, u := range sorted {
		key := u.AttributeKey()
		groupRank[key]++
		ranked = append(ranked, RankedUnit{Unit: u, Rank: groupRank[key]})
	}
	return ranked
}
