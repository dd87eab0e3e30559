package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxOverlaps(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)

	testCases := []struct {
		name  string
		other *Box
		exp   bool
	}{
		{"inside", NewBox(NewPoint(2, 2), 2, 2), true},
		{"partial", NewBox(NewPoint(5, 5), 10, 10), true},
		{"shared_edge", NewBox(NewPoint(10, 0), 10, 10), false},
		{"apart", NewBox(NewPoint(20, 20), 1, 1), false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, b.Overlaps(tc.other))
			assert.Equal(t, tc.exp, tc.other.Overlaps(b))
		})
	}
}

func TestBoxContains(t *testing.T) {
	b := NewBox(NewPoint(0, 0), 10, 10)
	assert.True(t, b.Contains(NewBox(NewPoint(0, 0), 10, 10)))
	assert.True(t, b.Contains(NewBox(NewPoint(1, 1), 2, 2)))
	assert.False(t, b.Contains(NewBox(NewPoint(9, 9), 2, 2)))
}

func TestBoundingBox(t *testing.T) {
	bb := BoundingBox([]*Point{NewPoint(3, -1), NewPoint(-2, 4), NewPoint(0, 0)})
	assert.True(t, bb.Equals(NewBox(NewPoint(-2, -1), 5, 5)), bb.ToString())
	assert.Nil(t, BoundingBox(nil))
}
