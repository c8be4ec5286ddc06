// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// EXTERNAL OPERATION GATEWAY
// =============================================================================

// ID is the stable identity of one viewport instance. Code that holds only an
// ID, not a reference into the view tree, can still address the viewport
// through Lookup.
type ID string

// NewID allocates a fresh viewport identity.
func NewID() ID {
	return ID(uuid.NewString())
}

// Handle is the set of operations addressable from outside the view tree.
// All four are immediate (no animation), re-clamp against current bounds, and
// cancel an in-flight animation.
type Handle interface {
	JumpToItem(index int)
	ScrollToRelative(fraction float64)
	ScrollToAbsolute(offset float64)
	ScrollBy(delta float64)
}

var (
	registryMu sync.Mutex
	registry   = make(map[ID]Handle)
)

// Register makes the viewport addressable by id. Call when the hosting view
// attaches, paired with Unregister on teardown.
func Register(id ID, h Handle) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = h
}

// Unregister removes the viewport from the registry.
func Unregister(id ID) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, id)
}

// Lookup resolves a viewport identity to its operation handle.
func Lookup(id ID) (Handle, bool) {
	registryMu.Lock()
	defer registryMu.Unlock()
	h, ok := registry[id]
	return h, ok
}
