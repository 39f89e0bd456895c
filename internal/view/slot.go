package view

import "github.com/gogpu/graphview/scene"

// Slot keeps an element's position in its base layer while the element
// is shown in a front layer.
type Slot struct {
	Element     *scene.Node
	Placeholder *scene.Node
	front       bool
}

func newSlot(elem *scene.Node) Slot {
	ph := scene.NewContainer(elem.Name + "-placeholder")
	return Slot{Element: elem, Placeholder: ph}
}

// InFront reports whether the element is promoted.
func (s *Slot) InFront() bool { return s.front }

// Promote moves the element from base to the top of front, putting the
// placeholder at its index. No-op when already promoted or not in base.
func (s *Slot) Promote(base, front *scene.Node) {
	if s.front {
		return
	}
	i := base.ChildIndex(s.Element)
	if i < 0 {
		return
	}
	base.RemoveChildAt(i)
	base.AddChildAt(s.Placeholder, i)
	front.AddChild(s.Element)
	s.front = true
}

// Demote returns the element to the placeholder's index in base.
func (s *Slot) Demote(base *scene.Node) {
	if !s.front {
		return
	}
	s.front = false
	i := base.ChildIndex(s.Placeholder)
	if i < 0 {
		base.AddChild(s.Element)
		return
	}
	base.RemoveChildAt(i)
	base.AddChildAt(s.Element, i)
}

func (s *Slot) destroy() {
	s.Placeholder.Destroy()
	s.Element.Destroy()
}
