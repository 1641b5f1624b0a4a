package targeting

import (
	"testing"

	"github.com/dokzlo13/ledremote/internal/strip"
)

func newStrip(main int, segs ...strip.SegmentOptions) *strip.Strip {
	return strip.New(strip.Options{Segments: segs, MainSegment: main, Brightness: 128})
}

func collect(it *Iterator) []int {
	var ids []int
	for ; it.Valid(); it.Next() {
		ids = append(ids, it.Segment().ID)
	}
	return ids
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestIterator(t *testing.T) {
	active := strip.SegmentOptions{Active: true}
	selected := strip.SegmentOptions{Active: true, Selected: true}
	inactiveSelected := strip.SegmentOptions{Selected: true}

	tests := []struct {
		name     string
		main     int
		segs     []strip.SegmentOptions
		scope    Scope
		applyAll bool
		want     []int
	}{
		{
			name:  "main_only",
			main:  1,
			segs:  []strip.SegmentOptions{selected, selected, selected},
			scope: MainOnly,
			want:  []int{1},
		},
		{
			name:  "selected/skips_unselected_and_inactive",
			segs:  []strip.SegmentOptions{active, selected, inactiveSelected, selected},
			scope: AllSelected,
			want:  []int{1, 3},
		},
		{
			name:  "selected/none_falls_back_to_main",
			main:  2,
			segs:  []strip.SegmentOptions{active, active, active},
			scope: AllSelected,
			want:  []int{2},
		},
		{
			name:  "active/ignores_selection",
			segs:  []strip.SegmentOptions{{}, active, selected, inactiveSelected},
			scope: AllActive,
			want:  []int{1, 2},
		},
		{
			name:  "active/none_falls_back_to_main",
			main:  1,
			segs:  []strip.SegmentOptions{{}, {}, {}},
			scope: AllActive,
			want:  []int{1},
		},
		{
			name:     "follow/apply_all_enabled",
			segs:     []strip.SegmentOptions{selected, active, selected},
			scope:    FollowGlobalSetting,
			applyAll: true,
			want:     []int{0, 2},
		},
		{
			name:  "follow/apply_all_disabled",
			main:  2,
			segs:  []strip.SegmentOptions{selected, active, selected},
			scope: FollowGlobalSetting,
			want:  []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStrip(tt.main, tt.segs...)
			got := collect(New(s, tt.scope, tt.applyAll))
			if !equalIDs(got, tt.want) {
				t.Errorf("visited %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIterator_FirstIsRetained(t *testing.T) {
	s := newStrip(0,
		strip.SegmentOptions{Active: true},
		strip.SegmentOptions{Active: true, Selected: true},
		strip.SegmentOptions{Active: true, Selected: true},
	)
	it := New(s, AllSelected, false)
	for ; it.Valid(); it.Next() {
	}
	if it.First() == nil || it.First().ID != 1 {
		t.Fatalf("First() = %v, want segment 1", it.First())
	}
	if it.Next() {
		t.Error("Next() past the end should return false")
	}
	if it.Segment() != nil {
		t.Error("Segment() past the end should be nil")
	}
}

func TestIterator_FollowResolvesAtConstruction(t *testing.T) {
	s := newStrip(0, strip.SegmentOptions{Active: true, Selected: true})
	if got := New(s, FollowGlobalSetting, true).Scope(); got != AllSelected {
		t.Errorf("Scope() = %v, want %v", got, AllSelected)
	}
	if got := New(s, FollowGlobalSetting, false).Scope(); got != MainOnly {
		t.Errorf("Scope() = %v, want %v", got, MainOnly)
	}
}

func TestEach(t *testing.T) {
	s := newStrip(0,
		strip.SegmentOptions{Active: true},
		strip.SegmentOptions{Active: true},
	)
	var n int
	first := Each(s, AllActive, false, func(seg *strip.Segment) { n++ })
	if n != 2 {
		t.Errorf("visited %d segments, want 2", n)
	}
	if first.ID != 0 {
		t.Errorf("first = %d, want 0", first.ID)
	}
}

func TestParseScope(t *testing.T) {
	for name, want := range map[string]Scope{"": FollowGlobalSetting, "main": MainOnly, "selected": AllSelected, "active": AllActive} {
		got, ok := ParseScope(name)
		if !ok || got != want {
			t.Errorf("ParseScope(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := ParseScope("bogus"); ok {
		t.Error("ParseScope(bogus) should fail")
	}
}
