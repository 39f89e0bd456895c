package scene

import "time"

// Interaction routes device pointer events to the interactive nodes under
// the pointer. It tracks the hovered and pressed node per pointer ID so
// it can synthesize over/out and upoutside events.
//
// Hit testing is front to back: later siblings are above earlier ones and
// children are above their parent. Only nodes that are visible up to the
// root, Interactive and have a HitArea are candidates.
type Interaction struct {
	root    *Node
	hovered map[int]*Node
	pressed map[int]*Node
}

// NewInteraction creates an interaction manager over root's subtree.
func NewInteraction(root *Node) *Interaction {
	return &Interaction{
		root:    root,
		hovered: make(map[int]*Node),
		pressed: make(map[int]*Node),
	}
}

// HitTest returns the topmost interactive node at root-space (x, y).
func (in *Interaction) HitTest(x, y float64) *Node {
	return hitTest(in.root, x, y)
}

func hitTest(n *Node, x, y float64) *Node {
	if n == nil || !n.Visible || n.destroyed {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	if n.Interactive && n.HitTestLocal(x, y) {
		return n
	}
	return nil
}

// Hovered returns the node currently under pointer id, if any.
func (in *Interaction) Hovered(id int) *Node { return in.hovered[id] }

// Pressed returns the node pointer id went down on, if still held.
func (in *Interaction) Pressed(id int) *Node { return in.pressed[id] }

// Dispatch delivers ev to the affected nodes and returns the node under
// the pointer (nil over empty space).
//
// Move events update hover state before the move is delivered, so a
// listener sees "over" before the first "move".
func (in *Interaction) Dispatch(ev PointerEvent) *Node {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	switch ev.Type {
	case PointerOut, PointerCancel:
		if prev := in.hovered[ev.ID]; prev != nil {
			delete(in.hovered, ev.ID)
			in.send(prev, PointerOut, ev)
		}
		if ev.Type == PointerCancel {
			if p := in.pressed[ev.ID]; p != nil {
				delete(in.pressed, ev.ID)
				in.send(p, PointerUpOutside, ev)
			}
		}
		return nil
	}

	hit := in.HitTest(ev.X, ev.Y)
	in.updateHover(ev, hit)

	switch ev.Type {
	case PointerMove:
		if hit != nil {
			in.send(hit, PointerMove, ev)
		}
	case PointerDown:
		if hit != nil {
			in.pressed[ev.ID] = hit
			in.send(hit, PointerDown, ev)
		}
	case PointerUp, PointerUpOutside:
		pressed := in.pressed[ev.ID]
		delete(in.pressed, ev.ID)
		if hit != nil {
			in.send(hit, PointerUp, ev)
		}
		if pressed != nil && pressed != hit && !pressed.destroyed {
			in.send(pressed, PointerUpOutside, ev)
		}
	case PointerWheel:
		if hit != nil {
			in.send(hit, PointerWheel, ev)
		}
	}
	return hit
}

func (in *Interaction) updateHover(ev PointerEvent, hit *Node) {
	prev := in.hovered[ev.ID]
	if prev == hit {
		return
	}
	if hit == nil {
		delete(in.hovered, ev.ID)
	} else {
		in.hovered[ev.ID] = hit
	}
	if prev != nil && !prev.destroyed {
		in.send(prev, PointerOut, ev)
	}
	if hit != nil {
		in.send(hit, PointerOver, ev)
	}
}

// Forget drops any hover or press state referring to n. Call it when a
// node leaves the tree so no out/upoutside is sent to it later.
func (in *Interaction) Forget(n *Node) {
	for id, h := range in.hovered {
		if h == n {
			delete(in.hovered, id)
		}
	}
	for id, p := range in.pressed {
		if p == n {
			delete(in.pressed, id)
		}
	}
}

func (in *Interaction) send(n *Node, t PointerType, ev PointerEvent) {
	ev.Type = t
	ev.Target = n
	n.Emit(ev)
}
