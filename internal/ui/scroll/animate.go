// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "time"

// animationRate is the progress gained per second of wall time. At 30 a
// scroll settles in roughly 33ms worth of progress per frame at 60fps.
const animationRate = 30.0

// =============================================================================
// SCROLL ANIMATOR
// =============================================================================

// animation interpolates the offset from start toward target as progress
// walks from 0 to 1. The zero value means no animation in flight.
type animation struct {
	active   bool
	start    float64
	target   float64
	progress float64
}

// shift moves both endpoints by delta so a scroll-in-progress is not
// disrupted by concurrent content growth elsewhere in the list.
func (a *animation) shift(delta float64) {
	if !a.active {
		return
	}
	a.start += delta
	a.target += delta
}

// clampTo re-clamps both endpoints to the valid translation range so the
// animation never renders overshoot after the content shrank.
func (a *animation) clampTo(lo, hi float64) {
	if !a.active {
		return
	}
	a.start = clamp(a.start, lo, hi)
	a.target = clamp(a.target, lo, hi)
}

// applyDelta starts or extends an animation toward translation+delta. Rapid
// repeated deltas compose: an in-flight animation keeps scrolling from the
// current offset and only its target accumulates, so wheel ticks chain into
// one continuous motion instead of restarting.
func (v *Viewport[K]) applyDelta(delta float64, now time.Time) {
	target := v.translation + delta
	if v.anim.active {
		target = v.anim.target + delta
	}
	v.anim = animation{active: true, start: v.translation, target: target}
	v.lastFrame = now
}

// Animating reports whether an animation is in flight. While true the host
// should keep requesting redraw ticks; the animation drives its own
// continuation without polling.
func (v *Viewport[K]) Animating() bool { return v.anim.active }

// Tick advances an in-flight animation by the wall time elapsed since the
// previous tick and returns true while further redraw ticks are needed.
func (v *Viewport[K]) Tick(now time.Time) bool {
	if v.anim.active {
		start := v.translation

		v.anim.progress += now.Sub(v.lastFrame).Seconds() * animationRate
		v.anim.progress = clamp(v.anim.progress, 0, 1)
		v.translation = v.anim.start + v.anim.progress*(v.anim.target-v.anim.start)
		v.translation = clamp(v.translation, 0, v.maxScroll())
		if v.anim.progress >= 1 {
			v.anim = animation{}
		}

		if v.translation != start {
			v.dirtyScrolled = true
		}
	}
	v.lastFrame = now
	v.notify()
	return v.anim.active
}
