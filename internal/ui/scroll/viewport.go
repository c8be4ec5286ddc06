// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "time"

// atEdgeTolerance is the tolerance used for "at top" / "at bottom" tests.
// Inherited as-is; treat as a tunable, not as something with derived meaning.
const atEdgeTolerance = 0.01

// =============================================================================
// ITEMS
// =============================================================================

// Item is one renderable entry in the viewport. The viewport never inspects
// the content; it only measures it.
type Item interface {
	// NewState builds the retained state for an item whose key has not been
	// seen before. The viewport carries it across frames by key and hands it
	// back on every Layout call, so expensive per-item work (wrapping, decode
	// progress, animation sub-state) survives list growth and reordering.
	NewState() any

	// Layout measures the item against loosened limits: the width limit
	// applies, the height is unbounded.
	Layout(state any, limits Limits) Size
}

// Child pairs an item with its stable key for one frame.
//
// Keys must be unique within a frame and stable across frames; equality is
// the only requirement on K.
type Child[K comparable] struct {
	Item Item
	Key  K
}

// Region is one item's placement after a layout pass.
type Region[K comparable] struct {
	Bounds Rectangle
	Key    K
}

// =============================================================================
// VIEWPORT
// =============================================================================

// Snapshot is the externally visible scroll state, carried by the change
// notification and sufficient to derive edge proximity.
type Snapshot struct {
	Translation   float64
	Bounds        Rectangle
	ContentBounds Rectangle
}

// IsAtTop reports whether the viewport shows the very start of the content.
func (s Snapshot) IsAtTop() bool {
	return s.Translation < atEdgeTolerance && s.Translation > -atEdgeTolerance
}

// IsAtBottom reports whether the viewport is pinned to the newest content.
func (s Snapshot) IsAtBottom() bool {
	edge := s.Translation + s.Bounds.Height
	return edge < s.ContentBounds.Height+atEdgeTolerance &&
		edge > s.ContentBounds.Height-atEdgeTolerance
}

// Viewport owns the scroll state for one transcript view. It is single
// threaded by contract: Layout, HandleEvent, Tick and the gateway operations
// must all be called from the hosting UI loop, never concurrently.
type Viewport[K comparable] struct {
	bounds        Rectangle
	contentBounds Rectangle
	layouts       []Region[K]
	states        []Entry[K, any]
	translation   float64
	anim          animation
	lastFrame     time.Time
	natural       bool
	dirtyScrolled bool
	onScroll      func(Snapshot)
}

// New creates an empty viewport with the offset at the top.
func New[K comparable]() *Viewport[K] {
	return &Viewport[K]{lastFrame: time.Now()}
}

// OnScroll registers the change notification. After any pass (layout, tick,
// input, gateway operation) that moved the effective offset, cb is invoked
// once with the resulting state.
func (v *Viewport[K]) OnScroll(cb func(Snapshot)) {
	v.onScroll = cb
}

// SetNaturalScrolling flips the sign of translated input deltas.
func (v *Viewport[K]) SetNaturalScrolling(natural bool) {
	v.natural = natural
}

// Translation returns the current scroll offset: the vertical distance from
// the content top to the viewport top.
func (v *Viewport[K]) Translation() float64 { return v.translation }

// Bounds returns the last laid-out viewport rectangle.
func (v *Viewport[K]) Bounds() Rectangle { return v.bounds }

// ContentBounds returns the union of all item bounds from the last layout.
func (v *Viewport[K]) ContentBounds() Rectangle { return v.contentBounds }

// Regions returns the current layout table in item order. The slice is owned
// by the viewport and valid until the next Layout call.
func (v *Viewport[K]) Regions() []Region[K] { return v.layouts }

// StateAt returns the retained state of the i-th item from the last layout
// pass. Index i corresponds to Regions()[i].
func (v *Viewport[K]) StateAt(i int) any {
	if i < 0 || i >= len(v.states) {
		return nil
	}
	return v.states[i].State
}

// Snapshot returns the current externally visible scroll state.
func (v *Viewport[K]) Snapshot() Snapshot {
	return Snapshot{
		Translation:   v.translation,
		Bounds:        v.bounds,
		ContentBounds: v.contentBounds,
	}
}

// =============================================================================
// LAYOUT PASS
// =============================================================================

// Layout runs one full layout pass: reconcile retained state with the new
// item list, stack the items vertically, then re-derive the offset so that
// either the bottom stays pinned or the previously visible anchor item stays
// visually stationary.
//
// size is the visible size of the viewport itself; items are measured against
// its width with unbounded height. Every item is laid out, including ones far
// off screen; windowed virtualization is deliberately not implemented.
func (v *Viewport[K]) Layout(children []Child[K], size Size) {
	start := v.translation

	keys := make([]K, len(children))
	itemOf := make(map[K]Item, len(children))
	for i, c := range children {
		keys[i] = c.Key
		itemOf[c.Key] = c.Item
	}
	v.states = DiffKeyed(v.states, keys, func(k K) any {
		return itemOf[k].NewState()
	})

	limits := Limits{MaxWidth: size.Width, MaxHeight: size.Height}.Loose()
	layouts := make([]Region[K], 0, len(children))
	var content Rectangle
	for i, c := range children {
		childSize := c.Item.Layout(v.states[i].State, limits)
		b := Rectangle{Y: content.Height, Width: childSize.Width, Height: childSize.Height}
		content = content.Union(b)
		layouts = append(layouts, Region[K]{Bounds: b, Key: c.Key})
	}
	bounds := RectWithSize(size)

	// Decide how the offset follows the content change. Stick-to-bottom is
	// evaluated against the previous frame's geometry: the question is where
	// the user was, not where the new content puts them.
	if v.wasAtBottom() {
		v.translation = content.Height - bounds.Height
	} else if idx, ok := v.anchorIndex(); ok {
		old := v.layouts[idx]
		newIdx := idx
		for i, r := range layouts {
			if r.Key == old.Key {
				newIdx = i
				break
			}
		}
		// The anchor may have been removed; falling back to the same numeric
		// index keeps this best-effort rather than a hard failure.
		if newIdx < len(layouts) {
			prev := v.translation
			v.translation = layouts[newIdx].Bounds.Y + (v.translation - old.Bounds.Y)
			v.anim.shift(v.translation - prev)
		}
	}

	v.layouts = layouts
	v.contentBounds = content
	v.bounds = bounds
	v.clampAll()
	if v.translation != start {
		v.dirtyScrolled = true
	}
	v.notify()
}

// wasAtBottom evaluates stick-to-bottom using the previous frame's bounds.
func (v *Viewport[K]) wasAtBottom() bool {
	edge := v.translation + v.bounds.Height
	return edge < v.contentBounds.Height+atEdgeTolerance &&
		edge > v.contentBounds.Height-atEdgeTolerance
}

// anchorIndex finds the item in the previous layout table whose vertical span
// contains the current offset.
func (v *Viewport[K]) anchorIndex() (int, bool) {
	for i, r := range v.layouts {
		if r.Bounds.Y <= v.translation && v.translation < r.Bounds.Y+r.Bounds.Height {
			return i, true
		}
	}
	return 0, false
}

// maxScroll is the largest valid offset for the current geometry.
func (v *Viewport[K]) maxScroll() float64 {
	m := v.contentBounds.Height - v.bounds.Height
	if m < 0 {
		return 0
	}
	return m
}

// clampAll enforces the translation invariant and keeps an in-flight
// animation from overshooting into invalid territory after content shrinks.
func (v *Viewport[K]) clampAll() {
	max := v.maxScroll()
	v.translation = clamp(v.translation, 0, max)
	v.anim.clampTo(0, max)
}

// setTranslation applies a direct, non-animated jump.
func (v *Viewport[K]) setTranslation(t float64) {
	v.anim = animation{}
	prev := v.translation
	v.translation = clamp(t, 0, v.maxScroll())
	if v.translation != prev {
		v.dirtyScrolled = true
	}
}

// notify fires the change notification if the offset moved this pass.
func (v *Viewport[K]) notify() {
	if !v.dirtyScrolled {
		return
	}
	v.dirtyScrolled = false
	if v.onScroll != nil {
		v.onScroll(v.Snapshot())
	}
}

// =============================================================================
// EXTERNAL OPERATIONS
// =============================================================================

// JumpToItem scrolls immediately so that the item at index sits at the top of
// the viewport. Out-of-range indices are a no-op: there is nothing to anchor
// to. Cancels any in-flight animation.
func (v *Viewport[K]) JumpToItem(index int) {
	if index < 0 || index >= len(v.layouts) {
		return
	}
	v.setTranslation(v.layouts[index].Bounds.Y)
	v.notify()
}

// ScrollToRelative scrolls immediately to a fraction in [0, 1] of the content
// height. Cancels any in-flight animation.
func (v *Viewport[K]) ScrollToRelative(fraction float64) {
	v.setTranslation(clamp(v.contentBounds.Height*fraction, 0, v.contentBounds.Height))
	v.notify()
}

// ScrollToAbsolute scrolls immediately to the given offset. Cancels any
// in-flight animation.
func (v *Viewport[K]) ScrollToAbsolute(offset float64) {
	v.setTranslation(offset)
	v.notify()
}

// ScrollBy scrolls immediately by delta relative to the current offset,
// re-clamped against the current bounds. Cancels any in-flight animation.
func (v *Viewport[K]) ScrollBy(delta float64) {
	v.setTranslation(v.translation + delta)
	v.notify()
}
