package graph

// EventType identifies a graph change.
type EventType uint8

// Graph change events.
const (
	NodeAdded EventType = iota + 1
	EdgeAdded
	NodeDropped
	EdgeDropped
	Cleared
	EdgesCleared
	NodeAttributesUpdated
	EdgeAttributesUpdated
	EachNodeAttributesUpdated
	EachEdgeAttributesUpdated
)

var eventTypeNames = map[EventType]string{
	NodeAdded:                 "nodeAdded",
	EdgeAdded:                 "edgeAdded",
	NodeDropped:               "nodeDropped",
	EdgeDropped:               "edgeDropped",
	Cleared:                   "cleared",
	EdgesCleared:              "edgesCleared",
	NodeAttributesUpdated:     "nodeAttributesUpdated",
	EdgeAttributesUpdated:     "edgeAttributesUpdated",
	EachNodeAttributesUpdated: "eachNodeAttributesUpdated",
	EachEdgeAttributesUpdated: "eachEdgeAttributesUpdated",
}

func (t EventType) String() string {
	if s, ok := eventTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// UpdateKind tells how attributes changed in an *AttributesUpdated event.
type UpdateKind uint8

// Attribute update kinds.
const (
	UpdateSet UpdateKind = iota + 1
	UpdateRemove
	UpdateMerge
	UpdateReplace
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateSet:
		return "set"
	case UpdateRemove:
		return "remove"
	case UpdateMerge:
		return "merge"
	case UpdateReplace:
		return "replace"
	}
	return "unknown"
}

// Event describes one change.
//
// Key is set for per-entity events. Attributes is a snapshot of the
// entity's attributes after the change (for drops, before removal).
// Source and Target are set for edge events. Kind and Name describe
// attribute updates; Name is the attribute for set and remove.
type Event struct {
	Type       EventType
	Key        string
	Attributes Attributes
	Source     string
	Target     string
	Kind       UpdateKind
	Name       string
}
