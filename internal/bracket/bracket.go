// Package bracket holds the single-elimination seeding helpers: picking a
// best-of format from the field size and padding the field to a power of two
// with byes.
package bracket

import "math/bits"

// Format is the best-of length of a bracket's matches.
type Format string

const (
	Bo3 Format = "Bo3"
	Bo5 Format = "Bo5"
)

// FormatFor picks the series format for a field of the given size. Small and
// mid-size fields play Bo3; anything past sixteen plays Bo5.
func FormatFor(participantCount int) Format {
	if participantCount <= 16 {
		return Bo3
	}
	return Bo5
}

// Position is one slot in the first round. Slots past the real field are
// byes.
type Position[T any] struct {
	Position    int
	Participant *T
	Bye         bool
}

// NextPowerOfTwo returns the smallest power of two >= n (and 1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Positions pads the field up to the next power of two and assigns each
// participant a first-round slot in order; the remainder are byes.
func Positions[T any](participants []T) []Position[T] {
	count := len(participants)
	if count == 0 {
		return []Position[T]{}
	}
	size := NextPowerOfTwo(count)

	positions := make([]Position[T], 0, size)
	for i := 0; i < size; i++ {
		if i < count {
			positions = append(positions, Position[T]{
				Position:    i + 1,
				Participant: &participants[i],
			})
		} else {
			positions = append(positions, Position[T]{
				Position: i + 1,
				Bye:      true,
			})
		}
	}
	return positions
}
