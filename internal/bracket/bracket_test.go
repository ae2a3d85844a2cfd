package bracket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFor(t *testing.T) {
	assert.Equal(t, Bo3, FormatFor(2))
	assert.Equal(t, Bo3, FormatFor(8))
	assert.Equal(t, Bo3, FormatFor(16))
	assert.Equal(t, Bo5, FormatFor(17))
	assert.Equal(t, Bo5, FormatFor(32))
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 8: 8, 9: 16, 16: 16, 17: 32}
	for n, want := range cases {
		assert.Equal(t, want, NextPowerOfTwo(n), "n=%d", n)
	}
}

func TestPositions_ExactPowerOfTwo(t *testing.T) {
	positions := Positions([]string{"a", "b", "c", "d"})
	assert.Len(t, positions, 4)
	for i, p := range positions {
		assert.Equal(t, i+1, p.Position)
		assert.False(t, p.Bye)
		assert.NotNil(t, p.Participant)
	}
}

func TestPositions_PadsWithByes(t *testing.T) {
	positions := Positions([]string{"a", "b", "c", "d", "e"})
	assert.Len(t, positions, 8)

	byes := 0
	for _, p := range positions {
		if p.Bye {
			byes++
			assert.Nil(t, p.Participant)
		}
	}
	assert.Equal(t, 3, byes)

	// Real participants keep their submission order.
	assert.Equal(t, "a", *positions[0].Participant)
	assert.Equal(t, "e", *positions[4].Participant)
}

func TestPositions_EmptyField(t *testing.T) {
	positions := Positions([]int{})
	assert.Empty(t, positions)
}
