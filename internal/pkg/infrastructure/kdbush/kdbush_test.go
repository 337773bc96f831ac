package kdbush

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/matryer/is"
)

func TestRangeMatchesBruteForce(t *testing.T) {
	is := is.New(t)

	points := randomPoints(2000)
	bush := New(points, 16)

	got := bush.Range(20, 30, 50, 70)
	sort.Ints(got)

	expected := []int{}
	for i, p := range points {
		if p.X >= 20 && p.X <= 50 && p.Y >= 30 && p.Y <= 70 {
			expected = append(expected, i)
		}
	}

	is.Equal(len(got), len(expected))
	is.Equal(got, expected)
}

func TestWithinMatchesBruteForce(t *testing.T) {
	is := is.New(t)

	points := randomPoints(2000)
	bush := New(points, 16)

	got := bush.Within(50, 50, 20)
	sort.Ints(got)

	expected := []int{}
	for i, p := range points {
		if sqDist(p.X, p.Y, 50, 50) <= 400 {
			expected = append(expected, i)
		}
	}

	is.Equal(got, expected)
}

func TestQueriesOnEmptyTree(t *testing.T) {
	is := is.New(t)

	bush := New([]Point[int]{}, 0)

	is.Equal(bush.Len(), 0)
	is.Equal(len(bush.Range(-1, -1, 1, 1)), 0)
	is.Equal(len(bush.Within(0, 0, 10)), 0)
}

func TestSelectionOnLargeInput(t *testing.T) {
	is := is.New(t)

	points := randomPoints(5000)
	bush := New(points, DefaultNodeSize)

	is.Equal(len(bush.Range(0, 0, 100, 100)), len(points))
}

func randomPoints(n int) []Point[int] {
	r := rand.New(rand.NewSource(42))
	points := make([]Point[int], n)
	for i := range points {
		points[i] = Point[int]{X: r.Float64() * 100, Y: r.Float64() * 100, Data: i}
	}
	return points
}
