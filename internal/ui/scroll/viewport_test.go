// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"math"
	"testing"
	"time"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// fixedItem reports a constant height and counts state constructions so tests
// can assert on reuse.
type fixedItem struct {
	height float64
	built  *int
}

func (f fixedItem) NewState() any {
	if f.built != nil {
		*f.built++
	}
	return &struct{}{}
}

func (f fixedItem) Layout(state any, limits Limits) Size {
	return Size{Width: limits.MaxWidth, Height: f.height}
}

// items builds a child list with sequential keys starting at 1.
func items(heights ...float64) []Child[uint64] {
	cs := make([]Child[uint64], len(heights))
	for i, h := range heights {
		cs[i] = Child[uint64]{Item: fixedItem{height: h}, Key: uint64(i + 1)}
	}
	return cs
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// LAYOUT ENGINE TESTS
// =============================================================================

func TestLayout_StacksVertically(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(10, 25, 5), Size{Width: 200, Height: 100})

	regions := v.Regions()
	wantY := []float64{0, 10, 35}
	for i, r := range regions {
		if !almostEqual(r.Bounds.Y, wantY[i]) {
			t.Errorf("region %d y = %v, want %v", i, r.Bounds.Y, wantY[i])
		}
	}
	if got := v.ContentBounds().Height; !almostEqual(got, 40) {
		t.Errorf("content height = %v, want 40", got)
	}
	if got := v.Bounds(); got.Width != 200 || got.Height != 100 {
		t.Errorf("viewport bounds = %+v, want 200x100", got)
	}
}

func TestLayout_EmptyListCollapses(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50), Size{Width: 100, Height: 60})
	v.Layout(nil, Size{Width: 100, Height: 60})

	if got := v.ContentBounds().Height; got != 0 {
		t.Errorf("content height = %v, want 0", got)
	}
	if got := v.Translation(); got != 0 {
		t.Errorf("translation = %v, want 0 after empty layout", got)
	}
}

// =============================================================================
// ANCHOR TRACKER TESTS
// =============================================================================

func TestStickToBottom_OnAppend(t *testing.T) {
	v := New[uint64]()

	// 3 x 40 in a 100-high viewport: content 120, bottom offset 20.
	v.Layout(items(40, 40, 40), Size{Width: 100, Height: 100})
	if got := v.Translation(); !almostEqual(got, 20) {
		t.Fatalf("translation = %v, want 20 (at bottom)", got)
	}
	if !v.Snapshot().IsAtBottom() {
		t.Fatal("expected viewport at bottom")
	}

	// Append one more 40-high item: content 160, expect offset 60.
	v.Layout(items(40, 40, 40, 40), Size{Width: 100, Height: 100})
	if got := v.Translation(); !almostEqual(got, 60) {
		t.Errorf("translation = %v, want 60", got)
	}
	if !v.Snapshot().IsAtBottom() {
		t.Error("expected viewport still at bottom after append")
	}
}

func TestStickToBottom_RepeatedGrowth(t *testing.T) {
	v := New[uint64]()
	heights := []float64{30, 30}
	v.Layout(items(heights...), Size{Width: 100, Height: 50})

	for i := 0; i < 20; i++ {
		heights = append(heights, 30)
		v.Layout(items(heights...), Size{Width: 100, Height: 50})
		want := float64(len(heights))*30 - 50
		if got := v.Translation(); !almostEqual(got, want) {
			t.Fatalf("after %d appends: translation = %v, want %v", i+1, got, want)
		}
	}
}

func TestAnchorPreservation_InsertAbove(t *testing.T) {
	v := New[uint64]()

	// 50/50/50 in an 80-high viewport, scrolled to the top of item 2.
	v.Layout(items(50, 50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(50)

	// Insert a 50-high item between items 1 and 2 (new key 9).
	next := []Child[uint64]{
		{Item: fixedItem{height: 50}, Key: 1},
		{Item: fixedItem{height: 50}, Key: 9},
		{Item: fixedItem{height: 50}, Key: 2},
		{Item: fixedItem{height: 50}, Key: 3},
	}
	v.Layout(next, Size{Width: 100, Height: 80})

	// Item 2 moved from y=50 to y=100; the offset follows it exactly.
	if got := v.Translation(); !almostEqual(got, 100) {
		t.Errorf("translation = %v, want 100", got)
	}
}

func TestAnchorPreservation_KeepsVisualOffsetWithinItem(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(65) // 15 units into item 2

	next := append([]Child[uint64]{{Item: fixedItem{height: 35}, Key: 77}}, items(50, 50, 50, 50)...)
	v.Layout(next, Size{Width: 100, Height: 80})

	// Anchor (key 2, old y=50, new y=85): visual offset within it preserved.
	if got := v.Translation(); !almostEqual(got, 100) {
		t.Errorf("translation = %v, want 100 (85 + 15)", got)
	}
}

func TestAnchorRemoved_FallsBackToIndex(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(50) // anchored on item 2 (index 1)

	// Remove the anchor item; index 1 now holds key 3 at y=50.
	next := []Child[uint64]{
		{Item: fixedItem{height: 50}, Key: 1},
		{Item: fixedItem{height: 50}, Key: 3},
		{Item: fixedItem{height: 50}, Key: 4},
	}
	v.Layout(next, Size{Width: 100, Height: 80})

	if got := v.Translation(); !almostEqual(got, 50) {
		t.Errorf("translation = %v, want 50 (same-index fallback)", got)
	}
}

func TestClampInvariant_AfterShrink(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(120) // bottom

	v.Layout(items(50), Size{Width: 100, Height: 80})

	if got := v.Translation(); got != 0 {
		t.Errorf("translation = %v, want 0 (content smaller than viewport)", got)
	}
}

// =============================================================================
// STATE REUSE THROUGH THE VIEWPORT
// =============================================================================

func TestLayout_RetainedStateSurvivesGrowth(t *testing.T) {
	built := 0
	child := func(key uint64, h float64) Child[uint64] {
		return Child[uint64]{Item: fixedItem{height: h, built: &built}, Key: key}
	}

	v := New[uint64]()
	v.Layout([]Child[uint64]{child(1, 40), child(2, 40)}, Size{Width: 100, Height: 50})
	first := v.StateAt(0)

	v.Layout([]Child[uint64]{child(3, 40), child(1, 40), child(2, 40)}, Size{Width: 100, Height: 50})

	if built != 3 {
		t.Errorf("state constructions = %d, want 3", built)
	}
	if v.StateAt(1) != first {
		t.Error("retained state for key 1 changed instance after prepend")
	}
}

// =============================================================================
// SCROLL ANIMATOR TESTS
// =============================================================================

// wheel sends a line-based wheel tick with the pointer inside the viewport.
func wheel(v *Viewport[uint64], lines float64, now time.Time) bool {
	return v.HandleEvent(WheelLines{Y: lines}, Point{X: 10, Y: 10}, now)
}

// settle ticks the animation until it reports completion.
func settle(t *testing.T, v *Viewport[uint64], from time.Time) time.Time {
	t.Helper()
	now := from
	for i := 0; i < 1000; i++ {
		now = now.Add(10 * time.Millisecond)
		if !v.Tick(now) {
			return now
		}
	}
	t.Fatal("animation did not converge")
	return now
}

func TestAnimation_ConvergesExactly(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(100, 100, 100, 100), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(0)

	start := time.Now()
	if !wheel(v, -1, start) { // scroll down one line: +80
		t.Fatal("wheel event not consumed")
	}
	if !v.Animating() {
		t.Fatal("expected animation in flight")
	}

	settle(t, v, start)

	if v.Animating() {
		t.Error("animation still active after convergence")
	}
	if got := v.Translation(); !almostEqual(got, 80) {
		t.Errorf("translation = %v, want 80", got)
	}
}

func TestAnimation_RepeatedTicksCompose(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(200, 200, 200), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(0)

	start := time.Now()
	wheel(v, -1, start)
	mid := start.Add(5 * time.Millisecond)
	v.Tick(mid)
	wheel(v, -1, mid) // target accumulates to 160, motion does not restart

	settle(t, v, mid)

	if got := v.Translation(); !almostEqual(got, 160) {
		t.Errorf("translation = %v, want 160", got)
	}
}

func TestAnimation_TargetClampedWhenContentShrinks(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(100, 100, 100, 100, 100), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(0)

	start := time.Now()
	wheel(v, -5, start) // toward 400

	// Content shrinks mid-animation: max scroll is now 100.
	v.Layout(items(100, 100), Size{Width: 100, Height: 100})
	settle(t, v, start)

	if got := v.Translation(); got > 100+1e-9 {
		t.Errorf("translation = %v overshoots max 100", got)
	}
}

func TestAnchorShiftsInFlightAnimation(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(20)

	start := time.Now()
	wheel(v, -1, start) // toward 100

	// A 50-high item is prepended while the animation is in flight.
	next := append([]Child[uint64]{{Item: fixedItem{height: 50}, Key: 99}}, items(50, 50, 50, 50)...)
	v.Layout(next, Size{Width: 100, Height: 80})

	settle(t, v, start)

	// Both endpoints shifted by the +50 anchor delta: 100 becomes 150.
	if got := v.Translation(); !almostEqual(got, 150) {
		t.Errorf("translation = %v, want 150", got)
	}
}

func TestJumpCancelsAnimation(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(200, 200, 200, 200), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(0)

	start := time.Now()
	wheel(v, -6, start) // toward 480
	v.Tick(start.Add(5 * time.Millisecond))

	v.JumpToItem(0)

	if v.Animating() {
		t.Error("animation survived a direct jump")
	}
	if got := v.Translation(); got != 0 {
		t.Errorf("translation = %v, want 0", got)
	}

	// No further interpolation frames occur.
	if v.Tick(start.Add(100 * time.Millisecond)) {
		t.Error("tick requested continuation after jump")
	}
	if got := v.Translation(); got != 0 {
		t.Errorf("translation moved to %v after jump", got)
	}
}

// =============================================================================
// INPUT TRANSLATION TESTS
// =============================================================================

func TestInput_WheelMapping(t *testing.T) {
	tests := []struct {
		name  string
		ev    Event
		want  float64
		wantK bool
	}{
		{"wheel lines", WheelLines{Y: 2}, -160, true},
		{"wheel pixels", WheelPixels{Y: 35}, -35, true},
		{"page down", PageDown{}, 100, true},
		{"page up", PageUp{}, -100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.ev, true, 100)
			if ok != tt.wantK || !almostEqual(got, tt.want) {
				t.Errorf("translate = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantK)
			}
		})
	}
}

func TestInput_WheelRequiresPointerInside(t *testing.T) {
	if _, ok := translate(WheelLines{Y: 1}, false, 100); ok {
		t.Error("wheel consumed with pointer outside viewport")
	}
	// Page keys apply regardless of pointer position.
	if _, ok := translate(PageDown{}, false, 100); !ok {
		t.Error("page down ignored with pointer outside viewport")
	}
}

func TestInput_NaturalScrollingFlipsSign(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(100, 100, 100, 100), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(100)
	v.SetNaturalScrolling(true)

	start := time.Now()
	wheel(v, -1, start) // would be +80; natural flips to -80
	settle(t, v, start)

	if got := v.Translation(); !almostEqual(got, 20) {
		t.Errorf("translation = %v, want 20", got)
	}
}

func TestInput_UnrelatedEventNotConsumed(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(100, 100), Size{Width: 100, Height: 100})

	if v.HandleEvent(WheelLines{Y: 1}, Point{X: -5, Y: -5}, time.Now()) {
		t.Error("event outside the viewport was consumed")
	}
	if v.Animating() {
		t.Error("unconsumed event started an animation")
	}
}

// =============================================================================
// EXTERNAL OPERATION GATEWAY TESTS
// =============================================================================

func TestGateway_RegisterLookup(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80})

	id := NewID()
	Register(id, v)
	defer Unregister(id)

	h, ok := Lookup(id)
	if !ok {
		t.Fatal("registered viewport not found")
	}

	h.JumpToItem(2)
	if got := v.Translation(); !almostEqual(got, 100) {
		t.Errorf("translation = %v, want 100", got)
	}

	Unregister(id)
	if _, ok := Lookup(id); ok {
		t.Error("viewport still addressable after unregister")
	}
}

func TestGateway_Operations(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50, 50, 50), Size{Width: 100, Height: 80}) // content 200, max 120

	v.ScrollToAbsolute(500)
	if got := v.Translation(); !almostEqual(got, 120) {
		t.Errorf("absolute: translation = %v, want 120 (clamped)", got)
	}

	v.ScrollToRelative(0.5)
	if got := v.Translation(); !almostEqual(got, 100) {
		t.Errorf("relative: translation = %v, want 100", got)
	}

	v.ScrollBy(-30)
	if got := v.Translation(); !almostEqual(got, 70) {
		t.Errorf("by: translation = %v, want 70", got)
	}

	v.ScrollBy(-500)
	if got := v.Translation(); got != 0 {
		t.Errorf("by: translation = %v, want 0 (clamped)", got)
	}
}

func TestGateway_JumpOutOfRangeIsNoOp(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(50, 50), Size{Width: 100, Height: 80})
	v.ScrollToAbsolute(20)

	v.JumpToItem(-1)
	v.JumpToItem(2)

	if got := v.Translation(); !almostEqual(got, 20) {
		t.Errorf("translation = %v, want 20 (unchanged)", got)
	}
}

// =============================================================================
// VIEWPORT NOTIFIER TESTS
// =============================================================================

func TestNotifier_FiresOncePerChangedPass(t *testing.T) {
	v := New[uint64]()
	var fired []Snapshot
	v.OnScroll(func(s Snapshot) { fired = append(fired, s) })

	v.Layout(items(40, 40, 40), Size{Width: 100, Height: 100}) // sticks to bottom: 0 -> 20
	if len(fired) != 1 {
		t.Fatalf("notifications = %d, want 1", len(fired))
	}
	if got := fired[0].Translation; !almostEqual(got, 20) {
		t.Errorf("notified translation = %v, want 20", got)
	}
	if !fired[0].IsAtBottom() {
		t.Error("snapshot should derive at-bottom")
	}

	// Same content again: nothing moved, nothing fires.
	v.Layout(items(40, 40, 40), Size{Width: 100, Height: 100})
	if len(fired) != 1 {
		t.Errorf("notifications = %d after no-op layout, want 1", len(fired))
	}

	v.ScrollToAbsolute(0)
	if len(fired) != 2 {
		t.Fatalf("notifications = %d after jump, want 2", len(fired))
	}
	if !fired[1].IsAtTop() {
		t.Error("snapshot should derive at-top")
	}
}

func TestNotifier_AnimationTicksNotify(t *testing.T) {
	v := New[uint64]()
	v.Layout(items(100, 100, 100), Size{Width: 100, Height: 100})
	v.ScrollToAbsolute(0)

	count := 0
	v.OnScroll(func(Snapshot) { count++ })

	start := time.Now()
	wheel(v, -1, start)
	v.Tick(start.Add(10 * time.Millisecond))
	if count != 1 {
		t.Errorf("notifications = %d after one moving tick, want 1", count)
	}

	// A tick with no animation in flight stays silent.
	v2 := New[uint64]()
	v2.OnScroll(func(Snapshot) { t.Error("idle tick notified") })
	v2.Tick(time.Now())
}
