// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat renders one channel transcript inside the scroll viewport.
//
// The viewport works in abstract layout units; this package maps one terminal
// row to rowHeight units and one terminal column to one horizontal unit. All
// message heights are whole rows, so unit offsets divide cleanly back into
// screen rows when rendering.
package chat
