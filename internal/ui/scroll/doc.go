// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scroll implements the anchored, animated scroll viewport that hosts
// the chat transcript.
//
// The viewport lays out a dynamically growing list of variable-height items
// every frame and preserves exactly one of two guarantees across content
// changes: if the user was reading history, their reading position does not
// jump when items are appended or resize elsewhere; if the user was at the
// live tail, the view keeps sticking to the bottom.
//
// The package is framework-agnostic: it works in abstract float64 layout
// units and knows nothing about terminals or cells. The hosting view decides
// the unit scale, feeds the per-frame (item, key) list into Layout, forwards
// input through HandleEvent, and drives the animator with Tick.
//
// Per-item retained state survives insertions, removals and reordering of the
// item list because it is matched by a caller-supplied stable key rather than
// by position. See DiffKeyed.
package scroll
