package watch

import (
	"fmt"
	"reflect"

	"github.com/gogpu/graphview/graph"
)

// Stats counts the changes made by Sync.
type Stats struct {
	NodesAdded, NodesDropped, NodesUpdated int
	EdgesAdded, EdgesDropped, EdgesUpdated int
}

// Empty reports whether nothing changed.
func (s Stats) Empty() bool {
	return s == Stats{}
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes +%d -%d ~%d, edges +%d -%d ~%d",
		s.NodesAdded, s.NodesDropped, s.NodesUpdated,
		s.EdgesAdded, s.EdgesDropped, s.EdgesUpdated)
}

// Sync makes dst equal to src through dst's mutation methods, so views
// subscribed to dst see one event per changed entity. Entities are matched
// by key; an edge whose endpoints changed is dropped and added again.
// Entities whose attributes are unchanged emit nothing.
func Sync(dst, src *graph.Graph) (Stats, error) {
	var st Stats

	for _, key := range dst.Edges() {
		s, t, _ := dst.EdgeExtremities(key)
		ns, nt, ok := src.EdgeExtremities(key)
		if ok && s == ns && t == nt {
			continue
		}
		if err := dst.DropEdge(key); err != nil {
			return st, err
		}
		st.EdgesDropped++
	}

	for _, key := range dst.Nodes() {
		if src.HasNode(key) {
			continue
		}
		if err := dst.DropNode(key); err != nil {
			return st, err
		}
		st.NodesDropped++
	}

	var err error
	src.ForEachNode(func(key string, attrs graph.Attributes) {
		if err != nil {
			return
		}
		old, ok := dst.NodeAttributes(key)
		switch {
		case !ok:
			err = dst.AddNode(key, attrs)
			st.NodesAdded++
		case !reflect.DeepEqual(old, attrs):
			err = dst.ReplaceNodeAttributes(key, attrs)
			st.NodesUpdated++
		}
	})
	if err != nil {
		return st, err
	}

	src.ForEachEdge(func(key string, attrs graph.Attributes, source, target string) {
		if err != nil {
			return
		}
		old, ok := dst.EdgeAttributes(key)
		switch {
		case !ok:
			err = dst.AddEdgeWithKey(key, source, target, attrs)
			st.EdgesAdded++
		case !reflect.DeepEqual(old, attrs):
			err = dst.ReplaceEdgeAttributes(key, attrs)
			st.EdgesUpdated++
		}
	})
	return st, err
}
