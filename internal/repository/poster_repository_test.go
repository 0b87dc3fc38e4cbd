package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySeatDelta(t *testing.T) {
	cases := []struct {
		name      string
		oldSeats  uint32
		newSeats  uint32
		seatsLeft uint32
		want      uint32
	}{
		{"no change", 10, 10, 4, 4},
		{"grow adds the delta to free seats", 10, 15, 4, 9},
		{"shrink removes the delta from free seats", 10, 8, 4, 2},
		{"shrink below booked clamps to zero", 10, 5, 4, 0}, // 6 booked, capacity now 5
		{"grow from sold out frees the delta", 10, 12, 0, 2},
		{"free seats never exceed capacity", 10, 3, 10, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplySeatDelta(tc.oldSeats, tc.newSeats, tc.seatsLeft))
		})
	}
}
