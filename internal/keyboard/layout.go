package keyboard

import (
	"math"
)

const (
	// DefaultGridWidth is the default number of grid columns of the spatial
	// index.
	DefaultGridWidth = 32
	// DefaultGridHeight is the default number of grid rows of the spatial
	// index.
	DefaultGridHeight = 16
	// DefaultSearchDistance is the default search distance, as a multiple of
	// the most common key width.
	DefaultSearchDistance = 1.2
)

// LayoutOptions parameterize the construction of a Layout.
// Zero values select defaults.
type LayoutOptions struct {
	// Width and Height set the layout bounds; if smaller than the union of the
	// keys' rectangles, that union is used instead.
	Width, Height int

	GridWidth, GridHeight int

	// SearchDistance is the distance (as a multiple of the most common key
	// width) within which a key is considered a neighbor of a grid cell.
	SearchDistance float64
}

// Layout is an immutable geometric index of all keys of one keyboard.
//
// Keys are kept in the order given at construction; that order is used only
// for deterministic iteration.
// A Layout is never mutated after NewLayout returns and may be shared freely.
type Layout struct {
	keys []Key

	width, height int

	gridWidth, gridHeight int
	cellWidth, cellHeight int
	cells                 [][]KeyIndex

	mostCommonKeyWidth int
	searchThreshold    int
}

// NewLayout builds a layout from the given keys and precomputes its spatial
// index.
func NewLayout(keys []Key, opts LayoutOptions) *Layout {
	l := &Layout{
		keys:       append([]Key(nil), keys...),
		width:      opts.Width,
		height:     opts.Height,
		gridWidth:  opts.GridWidth,
		gridHeight: opts.GridHeight,
	}
	if l.gridWidth <= 0 {
		l.gridWidth = DefaultGridWidth
	}
	if l.gridHeight <= 0 {
		l.gridHeight = DefaultGridHeight
	}
	searchDistance := opts.SearchDistance
	if searchDistance <= 0 {
		searchDistance = DefaultSearchDistance
	}

	for i := range l.keys {
		k := &l.keys[i]
		l.width = max(l.width, k.Right())
		l.height = max(l.height, k.Bottom())
	}

	l.mostCommonKeyWidth = mostCommonWidth(l.keys)
	threshold := int(float64(l.mostCommonKeyWidth) * searchDistance)
	l.searchThreshold = threshold * threshold

	l.computeNearestNeighbors()
	return l
}

// Len returns the number of keys.
func (l *Layout) Len() int { return len(l.keys) }

// Key returns the key at the given index.
func (l *Layout) Key(i KeyIndex) Key { return l.keys[i] }

// Lookup returns the key for a MaybeKey, if it is present and valid for this
// layout.
func (l *Layout) Lookup(m MaybeKey) (Key, bool) {
	i, ok := m.Get()
	if !ok || i < 0 || int(i) >= len(l.keys) {
		return Key{}, false
	}
	return l.keys[i], true
}

// Keys returns a copy of all keys in layout order.
func (l *Layout) Keys() []Key {
	return append([]Key(nil), l.keys...)
}

// Width returns the width of the layout bounds.
func (l *Layout) Width() int { return l.width }

// Height returns the height of the layout bounds.
func (l *Layout) Height() int { return l.height }

// MostCommonKeyWidth returns the most frequent key width of the layout.
func (l *Layout) MostCommonKeyWidth() int { return l.mostCommonKeyWidth }

// SearchThreshold returns the squared search distance used to build the
// spatial index.
func (l *Layout) SearchThreshold() int { return l.searchThreshold }

// Contains reports whether the point lies within the layout bounds.
func (l *Layout) Contains(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// Clamp returns the point moved into the layout bounds.
func (l *Layout) Clamp(x, y int) (int, int) {
	return clamp(x, 0, max(l.width-1, 0)), clamp(y, 0, max(l.height-1, 0))
}

// NearestKeys returns the indices of the keys that may be nearest to the
// given point, in layout order. Points outside the layout bounds have no
// nearest keys.
//
// The returned slice is shared and must not be modified.
func (l *Layout) NearestKeys(x, y int) []KeyIndex {
	if !l.Contains(x, y) {
		return nil
	}
	index := (y/l.cellHeight)*l.gridWidth + x/l.cellWidth
	if index >= len(l.cells) {
		return nil
	}
	return l.cells[index]
}

// computeNearestNeighbors fills every grid cell with the keys whose on-key
// region intersects the cell or whose rectangle lies within the search
// threshold of it.
func (l *Layout) computeNearestNeighbors() {
	// round up so no pixel lies outside the grid
	l.cellWidth = max((l.width+l.gridWidth-1)/l.gridWidth, 1)
	l.cellHeight = max((l.height+l.gridHeight-1)/l.gridHeight, 1)
	l.cells = make([][]KeyIndex, l.gridWidth*l.gridHeight)

	for row := 0; row < l.gridHeight; row++ {
		for col := 0; col < l.gridWidth; col++ {
			cell := rect{
				left:   col * l.cellWidth,
				top:    row * l.cellHeight,
				right:  (col+1)*l.cellWidth - 1,
				bottom: (row+1)*l.cellHeight - 1,
			}
			var neighbors []KeyIndex
			for i := range l.keys {
				k := &l.keys[i]
				if k.Width <= 0 || k.Height <= 0 {
					continue
				}
				d := cell.squaredDistanceTo(k)
				if d == 0 || d < l.searchThreshold || cell.intersectsOnKeyRegion(k) {
					neighbors = append(neighbors, KeyIndex(i))
				}
			}
			l.cells[row*l.gridWidth+col] = neighbors
		}
	}
}

// rect is an inclusive integer rectangle.
type rect struct {
	left, top, right, bottom int
}

// squaredDistanceTo returns the smallest squared distance between any point
// of the rectangle and the key's closed rectangle.
func (r rect) squaredDistanceTo(k *Key) int {
	dx := max(0, k.X-r.right, r.left-k.Right())
	dy := max(0, k.Y-r.bottom, r.top-k.Bottom())
	return dx*dx + dy*dy
}

func (r rect) intersectsOnKeyRegion(k *Key) bool {
	left, right := k.X, k.Right()-1
	top, bottom := k.Y, k.Bottom()-1
	if k.Edges.Has(EdgeLeft) {
		left = math.MinInt
	}
	if k.Edges.Has(EdgeRight) {
		right = math.MaxInt
	}
	if k.Edges.Has(EdgeTop) {
		top = math.MinInt
	}
	if k.Edges.Has(EdgeBottom) {
		bottom = math.MaxInt
	}
	return left <= r.right && right >= r.left && top <= r.bottom && bottom >= r.top
}

func mostCommonWidth(keys []Key) int {
	counts := map[int]int{}
	best, bestCount := 0, 0
	for i := range keys {
		w := keys[i].Width
		if w <= 0 {
			continue
		}
		counts[w]++
		if counts[w] > bestCount {
			best, bestCount = w, counts[w]
		}
	}
	return best
}
