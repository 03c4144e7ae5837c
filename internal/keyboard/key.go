package keyboard

// EdgeFlags mark on which outer edges of the keyboard a key lies.
type EdgeFlags uint8

const (
	EdgeLeft EdgeFlags = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// Has reports whether all of the given flags are set.
func (f EdgeFlags) Has(flags EdgeFlags) bool {
	return f&flags == flags
}

// Key is a single key of a keyboard layout.
//
// The hit region is the rectangle starting at (X, Y) with the given Width and
// Height. Left and top edges are inclusive, right and bottom edges exclusive.
type Key struct {
	X, Y          int
	Width, Height int

	Code       Code
	Label      string
	OutputText string

	Sticky     bool
	Modifier   bool
	Repeatable bool
	Disabled   bool

	Edges EdgeFlags
}

// Functional reports whether this is a functional key, i.e. a modifier that
// does not latch.
func (k *Key) Functional() bool {
	return k.Modifier && !k.Sticky
}

// Right returns the exclusive right edge of the key.
func (k *Key) Right() int { return k.X + k.Width }

// Bottom returns the exclusive bottom edge of the key.
func (k *Key) Bottom() int { return k.Y + k.Height }

// CenterX returns the horizontal center of the key.
func (k *Key) CenterX() int { return k.X + k.Width/2 }

// CenterY returns the vertical center of the key.
func (k *Key) CenterY() int { return k.Y + k.Height/2 }

// IsOnKey reports whether the point falls on the key.
//
// A key attached to an edge of the keyboard additionally owns everything
// between it and that edge, and beyond.
func (k *Key) IsOnKey(x, y int) bool {
	return (x >= k.X || k.Edges.Has(EdgeLeft)) &&
		(x < k.Right() || k.Edges.Has(EdgeRight)) &&
		(y >= k.Y || k.Edges.Has(EdgeTop)) &&
		(y < k.Bottom() || k.Edges.Has(EdgeBottom))
}

// SquaredDistanceToEdge returns the squared distance of the point from the
// nearest point of the key's rectangle, zero if the point lies within it.
func (k *Key) SquaredDistanceToEdge(x, y int) int {
	edgeX := clamp(x, k.X, k.Right())
	edgeY := clamp(y, k.Y, k.Bottom())
	dx := x - edgeX
	dy := y - edgeY
	return dx*dx + dy*dy
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
