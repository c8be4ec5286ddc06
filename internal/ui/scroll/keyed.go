// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

// =============================================================================
// KEYED STATE STORE
// =============================================================================

// Entry pairs a retained state value with the key it belongs to.
type Entry[K comparable, S any] struct {
	Key   K
	State S
}

// DiffKeyed reconciles the previous frame's retained state with the current
// frame's key list. State for a key present in both frames is carried over
// unchanged (the same value, not a copy of equal shape); state for a new key
// is built with fresh. State whose key is absent from keys is dropped.
//
// Matching is by key identity, not position, so the result is correct under
// insertion in the middle, removal from the middle, and arbitrary reordering.
// The old list is consumed into a map first, which makes the whole pass O(n)
// amortized instead of the O(n^2) a positional diff degrades to.
//
// Keys must be unique within one frame; this is a caller obligation. If the
// caller violates it, map construction silently keeps the last state for the
// duplicated key and every occurrence in the output shares it.
func DiffKeyed[K comparable, S any](old []Entry[K, S], keys []K, fresh func(K) S) []Entry[K, S] {
	prev := make(map[K]S, len(old))
	for _, e := range old {
		prev[e.Key] = e.State
	}

	next := make([]Entry[K, S], 0, len(keys))
	for _, k := range keys {
		if s, ok := prev[k]; ok {
			delete(prev, k)
			next = append(next, Entry[K, S]{Key: k, State: s})
			continue
		}
		next = append(next, Entry[K, S]{Key: k, State: fresh(k)})
	}
	return next
}
