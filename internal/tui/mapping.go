package tui

import "github.com/ja-he/touchkey/internal/keyboard"

// Area is a rectangle of terminal cells.
type Area struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies within the area.
func (a Area) Contains(cx, cy int) bool {
	return cx >= a.X && cx < a.X+a.W && cy >= a.Y && cy < a.Y+a.H
}

// cellMapping scales a layout onto an area of terminal cells.
type cellMapping struct {
	area Area

	layoutWidth, layoutHeight int
}

func newCellMapping(area Area, l *keyboard.Layout) cellMapping {
	return cellMapping{area: area, layoutWidth: max(l.Width(), 1), layoutHeight: max(l.Height(), 1)}
}

// toLayout returns the layout coordinates of the center of the given cell.
// Cells outside the area map to coordinates outside the layout bounds.
func (m cellMapping) toLayout(cx, cy int) (x, y int) {
	if m.area.W <= 0 || m.area.H <= 0 {
		return -1, -1
	}
	x = floorDiv((2*(cx-m.area.X)+1)*m.layoutWidth, 2*m.area.W)
	y = floorDiv((2*(cy-m.area.Y)+1)*m.layoutHeight, 2*m.area.H)
	return x, y
}

// keyArea returns the cells covered by the given key, at least one.
func (m cellMapping) keyArea(k *keyboard.Key) Area {
	x0 := m.area.X + k.X*m.area.W/m.layoutWidth
	x1 := m.area.X + k.Right()*m.area.W/m.layoutWidth
	y0 := m.area.Y + k.Y*m.area.H/m.layoutHeight
	y1 := m.area.Y + k.Bottom()*m.area.H/m.layoutHeight
	return Area{X: x0, Y: y0, W: max(x1-x0, 1), H: max(y1-y0, 1)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
