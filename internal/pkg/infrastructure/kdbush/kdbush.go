// Package kdbush is a static two dimensional KD-tree over a fixed set of points.
// The tree is built once and answers range and radius queries with the
// indices of matching points in the slice it was built from.
package kdbush

import (
	"math"
)

const DefaultNodeSize int = 64

type Point[T any] struct {
	X, Y float64
	Data T
}

type KDBush[T any] struct {
	NodeSize int
	Points   []Point[T]

	idxs   []int
	coords []float64
}

func New[T any](points []Point[T], nodeSize int) *KDBush[T] {
	if nodeSize <= 0 {
		nodeSize = DefaultNodeSize
	}

	b := &KDBush[T]{
		NodeSize: nodeSize,
		Points:   points,
		idxs:     make([]int, len(points)),
		coords:   make([]float64, 2*len(points)),
	}

	for i, p := range points {
		b.idxs[i] = i
		b.coords[2*i] = p.X
		b.coords[2*i+1] = p.Y
	}

	b.sortKD(0, len(b.idxs)-1, 0)

	return b
}

func (b *KDBush[T]) Len() int {
	return len(b.idxs)
}

// Range returns the indices of all points inside the box, edges included.
func (b *KDBush[T]) Range(minX, minY, maxX, maxY float64) []int {
	result := []int{}
	if len(b.idxs) == 0 {
		return result
	}

	stack := []int{0, len(b.idxs) - 1, 0}

	for len(stack) > 0 {
		left, right, axis := stack[len(stack)-3], stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-3]

		if right-left <= b.NodeSize {
			for i := left; i <= right; i++ {
				x, y := b.coords[2*i], b.coords[2*i+1]
				if x >= minX && x <= maxX && y >= minY && y <= maxY {
					result = append(result, b.idxs[i])
				}
			}
			continue
		}

		m := (left + right) >> 1
		x, y := b.coords[2*m], b.coords[2*m+1]

		if x >= minX && x <= maxX && y >= minY && y <= maxY {
			result = append(result, b.idxs[m])
		}

		if (axis == 0 && minX <= x) || (axis != 0 && minY <= y) {
			stack = append(stack, left, m-1, 1-axis)
		}
		if (axis == 0 && maxX >= x) || (axis != 0 && maxY >= y) {
			stack = append(stack, m+1, right, 1-axis)
		}
	}

	return result
}

// Within returns the indices of all points at most radius away from (qx, qy).
func (b *KDBush[T]) Within(qx, qy, radius float64) []int {
	result := []int{}
	if len(b.idxs) == 0 {
		return result
	}

	stack := []int{0, len(b.idxs) - 1, 0}
	r2 := radius * radius

	for len(stack) > 0 {
		left, right, axis := stack[len(stack)-3], stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-3]

		if right-left <= b.NodeSize {
			for i := left; i <= right; i++ {
				if sqDist(b.coords[2*i], b.coords[2*i+1], qx, qy) <= r2 {
					result = append(result, b.idxs[i])
				}
			}
			continue
		}

		m := (left + right) >> 1
		x, y := b.coords[2*m], b.coords[2*m+1]

		if sqDist(x, y, qx, qy) <= r2 {
			result = append(result, b.idxs[m])
		}

		if (axis == 0 && qx-radius <= x) || (axis != 0 && qy-radius <= y) {
			stack = append(stack, left, m-1, 1-axis)
		}
		if (axis == 0 && qx+radius >= x) || (axis != 0 && qy+radius >= y) {
			stack = append(stack, m+1, right, 1-axis)
		}
	}

	return result
}

func (b *KDBush[T]) sortKD(left, right, depth int) {
	if right-left <= b.NodeSize {
		return
	}

	m := (left + right) >> 1

	b.selectKth(m, left, right, depth%2)

	b.sortKD(left, m-1, depth+1)
	b.sortKD(m+1, right, depth+1)
}

// selectKth is Floyd-Rivest selection on the given axis, rearranging items so
// that the k-th smallest ends up at position k.
func (b *KDBush[T]) selectKth(k, left, right, axis int) {
	for right > left {
		if right-left > 600 {
			n := float64(right - left + 1)
			m := float64(k - left + 1)
			z := math.Log(n)
			s := 0.5 * math.Exp(2*z/3)
			sd := 0.5 * math.Sqrt(z*s*(n-s)/n)
			if m-n/2 < 0 {
				sd = -sd
			}
			newLeft := maxInt(left, int(math.Floor(float64(k)-m*s/n+sd)))
			newRight := minInt(right, int(math.Floor(float64(k)+(n-m)*s/n+sd)))
			b.selectKth(k, newLeft, newRight, axis)
		}

		t := b.coords[2*k+axis]
		i, j := left, right

		b.swap(left, k)
		if b.coords[2*right+axis] > t {
			b.swap(left, right)
		}

		for i < j {
			b.swap(i, j)
			i++
			j--
			for b.coords[2*i+axis] < t {
				i++
			}
			for b.coords[2*j+axis] > t {
				j--
			}
		}

		if b.coords[2*left+axis] == t {
			b.swap(left, j)
		} else {
			j++
			b.swap(j, right)
		}

		if j <= k {
			left = j + 1
		}
		if k <= j {
			right = j - 1
		}
	}
}

func (b *KDBush[T]) swap(i, j int) {
	b.idxs[i], b.idxs[j] = b.idxs[j], b.idxs[i]
	b.coords[2*i], b.coords[2*j] = b.coords[2*j], b.coords[2*i]
	b.coords[2*i+1], b.coords[2*j+1] = b.coords[2*j+1], b.coords[2*i+1]
}

func sqDist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
