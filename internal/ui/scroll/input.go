// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "time"

// wheelLineHeight converts a line-based wheel tick into layout units.
const wheelLineHeight = 80.0

// =============================================================================
// INPUT TRANSLATION
// =============================================================================

// Event is a raw input event relevant to scrolling. The host maps its
// framework's events into these; anything else simply never reaches the
// viewport.
type Event interface{ isScrollEvent() }

// WheelLines is a line-based wheel tick. Y follows the device convention:
// positive means scrolling the content up (wheel away from the user).
type WheelLines struct{ Y float64 }

// WheelPixels is a pixel-based (high resolution) wheel movement.
type WheelPixels struct{ Y float64 }

// PageDown is the page-down key press.
type PageDown struct{}

// PageUp is the page-up key press.
type PageUp struct{}

func (WheelLines) isScrollEvent()  {}
func (WheelPixels) isScrollEvent() {}
func (PageDown) isScrollEvent()    {}
func (PageUp) isScrollEvent()      {}

// translate maps one event to a scroll delta. Wheel events only apply when
// the pointer is inside the viewport; page keys apply regardless.
func translate(ev Event, pointerInside bool, viewportHeight float64) (float64, bool) {
	switch e := ev.(type) {
	case WheelLines:
		if !pointerInside {
			return 0, false
		}
		return -e.Y * wheelLineHeight, true
	case WheelPixels:
		if !pointerInside {
			return 0, false
		}
		return -e.Y, true
	case PageDown:
		return viewportHeight, true
	case PageUp:
		return -viewportHeight, true
	}
	return 0, false
}

// HandleEvent feeds one raw input event into the viewport. pointer is in
// viewport-local coordinates. Returns true if the event produced a scroll
// delta and was consumed; unmatched events are left for other handlers.
func (v *Viewport[K]) HandleEvent(ev Event, pointer Point, now time.Time) bool {
	delta, ok := translate(ev, v.bounds.Contains(pointer), v.bounds.Height)
	if !ok {
		return false
	}
	if v.natural {
		delta = -delta
	}
	v.applyDelta(delta, now)
	return true
}
