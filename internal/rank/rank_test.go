package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForRating(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{-50, "Rookie"},
		{0, "Rookie"},
		{999, "Rookie"},
		{1000, "Bronze"},
		{1150, "Silver"},
		{1200, "Gold"},
		{1225, "Gold"},
		{1299, "Gold"},
		{1300, "Platinum"},
		{1499, "Diamond"},
		{1500, "Legend"},
		{2400, "Legend"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ForRating(c.rating), "rating %d", c.rating)
	}
}
