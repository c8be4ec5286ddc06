// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
