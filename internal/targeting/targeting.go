// Package targeting resolves which segments a remote action applies to.
package targeting

import "github.com/dokzlo13/ledremote/internal/strip"

// Scope selects the segments an action targets.
type Scope int

const (
	// FollowGlobalSetting resolves to AllSelected or MainOnly depending on
	// the apply-to-all-selected setting at iterator construction time.
	FollowGlobalSetting Scope = iota
	// MainOnly targets the main segment.
	MainOnly
	// AllSelected targets segments that are both active and selected.
	AllSelected
	// AllActive targets all active segments.
	AllActive
)

func (s Scope) String() string {
	switch s {
	case FollowGlobalSetting:
		return "follow"
	case MainOnly:
		return "main"
	case AllSelected:
		return "selected"
	case AllActive:
		return "active"
	default:
		return "unknown"
	}
}

// ParseScope parses a scope name as used in config files.
func ParseScope(name string) (Scope, bool) {
	switch name {
	case "", "follow":
		return FollowGlobalSetting, true
	case "main":
		return MainOnly, true
	case "selected":
		return AllSelected, true
	case "active":
		return AllActive, true
	}
	return FollowGlobalSetting, false
}

// Segments is the view of the strip the iterator needs.
type Segments interface {
	SegmentCount() int
	Segment(i int) *strip.Segment
	MainSegmentID() int
	FirstSelectedSegmentID() int
}

// Iterator walks the targeted segments in ascending index order, each at
// most once. It always yields at least one segment: when the scope matches
// nothing it yields the main segment. An iterator cannot be restarted.
type Iterator struct {
	src     Segments
	scope   Scope
	index   int
	count   int
	current *strip.Segment
	first   *strip.Segment
}

// New creates an iterator positioned on the first targeted segment.
func New(src Segments, scope Scope, applyToAllSelected bool) *Iterator {
	if scope == FollowGlobalSetting {
		if applyToAllSelected {
			scope = AllSelected
		} else {
			scope = MainOnly
		}
	}

	it := &Iterator{src: src, scope: scope, count: src.SegmentCount()}

	switch scope {
	case AllSelected:
		it.index = src.FirstSelectedSegmentID()
	case AllActive:
		for it.index < it.count && !src.Segment(it.index).Active {
			it.index++
		}
		if it.index >= it.count {
			it.index = src.MainSegmentID()
		}
	default:
		it.index = src.MainSegmentID()
	}

	it.current = src.Segment(it.index)
	it.first = it.current
	return it
}

// Scope returns the resolved scope.
func (it *Iterator) Scope() Scope { return it.scope }

// Valid reports whether there is a current segment.
func (it *Iterator) Valid() bool { return it.current != nil }

// Segment returns the current segment, or nil past the end.
func (it *Iterator) Segment() *strip.Segment { return it.current }

// First returns the first segment the iterator visited.
func (it *Iterator) First() *strip.Segment { return it.first }

// Next advances to the next targeted segment and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.current == nil {
		return false
	}

	var match func(*strip.Segment) bool
	switch it.scope {
	case AllSelected:
		match = func(s *strip.Segment) bool { return s.Active && s.Selected }
	case AllActive:
		match = func(s *strip.Segment) bool { return s.Active }
	default:
		it.current = nil
		return false
	}

	for {
		it.index++
		if it.index >= it.count {
			it.current = nil
			return false
		}
		seg := it.src.Segment(it.index)
		if match(seg) {
			it.current = seg
			return true
		}
	}
}

// Each calls fn for every targeted segment and returns the first one.
func Each(src Segments, scope Scope, applyToAllSelected bool, fn func(*strip.Segment)) *strip.Segment {
	it := New(src, scope, applyToAllSelected)
	for ; it.Valid(); it.Next() {
		fn(it.Segment())
	}
	return it.First()
}
