// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package platform talks to the third-party chat services that augment the
// raw IRC stream: emote providers (BetterTTV, FrankerFaceZ, SevenTV) and the
// recent-messages history service. Responses are cached with a TTL so joining
// the same channel twice does not re-fetch everything.
package platform
