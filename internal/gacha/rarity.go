package gacha

// Rarity is one of the fixed drop tiers.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// DropRate pairs a rarity tier with its probability weight.
type DropRate struct {
	Rarity Rarity
	Weight float64
}

// DropRates is the drop table, weights summing to 100. The slice order
// defines the cumulative probability bands, so it is part of the contract:
// reordering entries moves the band boundaries.
var DropRates = []DropRate{
	{Rarity: RarityCommon, Weight: 70},
	{Rarity: RarityRare, Weight: 20},
	{Rarity: RarityEpic, Weight: 8},
	{Rarity: RarityLegendary, Weight: 1.8},
	{Rarity: RarityMythic, Weight: 0.2},
}

// Rarities lists the tiers in drop-table order.
func Rarities() []Rarity {
	out := make([]Rarity, len(DropRates))
	for i, e := range DropRates {
		out[i] = e.Rarity
	}
	return out
}

// Valid reports whether r is a known tier.
func (r Rarity) Valid() bool {
	for _, e := range DropRates {
		if e.Rarity == r {
			return true
		}
	}
	return false
}

// SelectRarity resolves a roll in [0, total weight) to a tier: the first
// entry whose cumulative weight reaches the roll wins. A roll past the table
// end (floating-point drift in the cumulative sum) resolves to the last
// entry rather than erroring.
func SelectRarity(table []DropRate, roll float64) Rarity {
	acc := 0.0
	for _, entry := range table {
		acc += entry.Weight
		if roll <= acc {
			return entry.Rarity
		}
	}
	return table[len(table)-1].Rarity
}
