package text

// shelfAllocator packs glyph rectangles into horizontal shelves of an
// atlas: items go left to right on the current shelf, and a new shelf
// starts below when a row is full.
type shelfAllocator struct {
	width   int
	padding int
	shelves []shelf
}

type shelf struct {
	y      int
	height int
	x      int
}

func newShelfAllocator(width, padding int) *shelfAllocator {
	return &shelfAllocator{width: width, padding: padding}
}

// allocate returns the top-left corner for a w x h item. The atlas grows
// downward without limit; only items wider than the atlas fail.
func (a *shelfAllocator) allocate(w, h int) (x, y int, ok bool) {
	pw := w + a.padding
	if pw > a.width {
		return -1, -1, false
	}
	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+pw > a.width {
			continue
		}
		if h > s.height {
			if i != len(a.shelves)-1 {
				continue
			}
			s.height = h
		}
		x, y = s.x, s.y
		s.x += pw
		return x, y, true
	}

	newY := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		newY = last.y + last.height + a.padding
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: pw})
	return 0, newY, true
}

// height returns the total height used.
func (a *shelfAllocator) height() int {
	if len(a.shelves) == 0 {
		return 0
	}
	last := a.shelves[len(a.shelves)-1]
	return last.y + last.height
}
