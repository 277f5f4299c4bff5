// Package rank maps a player rating to its display rank label.
package rank

type tier struct {
	min   int
	label string
}

// Tiers ascend; ForRating picks the highest tier whose floor the rating clears.
var tiers = []tier{
	{0, "Rookie"},
	{1000, "Bronze"},
	{1100, "Silver"},
	{1200, "Gold"},
	{1300, "Platinum"},
	{1400, "Diamond"},
	{1500, "Legend"},
}

// ForRating is a total function: every rating, including negative ones,
// resolves to a label.
func ForRating(rating int) string {
	label := tiers[0].label
	for _, t := range tiers {
		if rating >= t.min {
			label = t.label
		}
	}
	return label
}
