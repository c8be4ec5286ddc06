// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// =============================================================================
// EMOTE TYPES
// =============================================================================

// Provider identifies which service an emote came from.
type Provider string

const (
	ProviderBTTV    Provider = "bttv"
	ProviderFFZ     Provider = "ffz"
	ProviderSevenTV Provider = "7tv"
)

// Emote is a single third-party emote, keyed by the code users type in chat.
type Emote struct {
	Code     string
	Provider Provider
	URL      string
}

// EmoteSet maps emote code to emote. Codes are case-sensitive, matching how
// the providers themselves treat them.
type EmoteSet map[string]Emote

// Merge copies every emote from other into the set, overwriting on collision.
func (s EmoteSet) Merge(other EmoteSet) {
	for code, e := range other {
		s[code] = e
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// EmoteConfig holds the provider endpoints. Overridable for tests.
type EmoteConfig struct {
	BTTVBaseURL    string
	FFZBaseURL     string
	SevenTVBaseURL string
	Timeout        time.Duration
}

// DefaultEmoteConfig returns the production endpoints.
func DefaultEmoteConfig() EmoteConfig {
	return EmoteConfig{
		BTTVBaseURL:    "https://api.betterttv.net/3",
		FFZBaseURL:     "https://api.frankerfacez.com/v1",
		SevenTVBaseURL: "https://7tv.io/v3",
		Timeout:        10 * time.Second,
	}
}

// EmoteClient fetches and caches third-party emote sets. Channel sets are
// keyed by Twitch room ID (from the ROOMSTATE room-id tag), globals by a
// fixed key.
type EmoteClient struct {
	config EmoteConfig
	http   *http.Client
	cache  *ttlCache[EmoteSet]
}

// NewEmoteClient builds a client with the given config. Zero fields fall back
// to defaults.
func NewEmoteClient(config EmoteConfig) *EmoteClient {
	def := DefaultEmoteConfig()
	if config.BTTVBaseURL == "" {
		config.BTTVBaseURL = def.BTTVBaseURL
	}
	if config.FFZBaseURL == "" {
		config.FFZBaseURL = def.FFZBaseURL
	}
	if config.SevenTVBaseURL == "" {
		config.SevenTVBaseURL = def.SevenTVBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = def.Timeout
	}
	return &EmoteClient{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		cache:  newTTLCache[EmoteSet](),
	}
}

// Globals returns the merged global emote sets of all three providers.
// Provider failures are logged and skipped; the result holds whatever the
// reachable providers returned.
func (c *EmoteClient) Globals(ctx context.Context) EmoteSet {
	if cached, ok := c.cache.get("globals"); ok {
		return cached
	}

	set := make(EmoteSet)
	if bttv, err := c.bttvGlobals(ctx); err != nil {
		slog.Warn("bttv global emotes unavailable", "error", err)
	} else {
		set.Merge(bttv)
	}
	if ffz, err := c.ffzGlobals(ctx); err != nil {
		slog.Warn("ffz global emotes unavailable", "error", err)
	} else {
		set.Merge(ffz)
	}
	if stv, err := c.sevenTVGlobals(ctx); err != nil {
		slog.Warn("7tv global emotes unavailable", "error", err)
	} else {
		set.Merge(stv)
	}

	c.cache.put("globals", set)
	return set
}

// Channel returns the merged channel emote sets for a Twitch room ID.
func (c *EmoteClient) Channel(ctx context.Context, roomID string) EmoteSet {
	if roomID == "" {
		return make(EmoteSet)
	}
	if cached, ok := c.cache.get("room:" + roomID); ok {
		return cached
	}

	set := make(EmoteSet)
	if bttv, err := c.bttvChannel(ctx, roomID); err != nil {
		slog.Warn("bttv channel emotes unavailable", "room_id", roomID, "error", err)
	} else {
		set.Merge(bttv)
	}
	if ffz, err := c.ffzChannel(ctx, roomID); err != nil {
		slog.Warn("ffz channel emotes unavailable", "room_id", roomID, "error", err)
	} else {
		set.Merge(ffz)
	}
	if stv, err := c.sevenTVChannel(ctx, roomID); err != nil {
		slog.Warn("7tv channel emotes unavailable", "room_id", roomID, "error", err)
	} else {
		set.Merge(stv)
	}

	c.cache.put("room:"+roomID, set)
	return set
}

// =============================================================================
// BETTERTTV
// =============================================================================

type bttvEmote struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

type bttvUserResponse struct {
	ChannelEmotes []bttvEmote `json:"channelEmotes"`
	SharedEmotes  []bttvEmote `json:"sharedEmotes"`
}

func bttvEmoteURL(id string) string {
	return "https://cdn.betterttv.net/emote/" + id + "/1x"
}

func (c *EmoteClient) bttvGlobals(ctx context.Context) (EmoteSet, error) {
	var emotes []bttvEmote
	if err := c.getJSON(ctx, c.config.BTTVBaseURL+"/cached/emotes/global", &emotes); err != nil {
		return nil, err
	}
	set := make(EmoteSet, len(emotes))
	for _, e := range emotes {
		set[e.Code] = Emote{Code: e.Code, Provider: ProviderBTTV, URL: bttvEmoteURL(e.ID)}
	}
	return set, nil
}

func (c *EmoteClient) bttvChannel(ctx context.Context, roomID string) (EmoteSet, error) {
	var resp bttvUserResponse
	if err := c.getJSON(ctx, c.config.BTTVBaseURL+"/cached/users/twitch/"+roomID, &resp); err != nil {
		return nil, err
	}
	set := make(EmoteSet, len(resp.ChannelEmotes)+len(resp.SharedEmotes))
	for _, e := range resp.ChannelEmotes {
		set[e.Code] = Emote{Code: e.Code, Provider: ProviderBTTV, URL: bttvEmoteURL(e.ID)}
	}
	for _, e := range resp.SharedEmotes {
		set[e.Code] = Emote{Code: e.Code, Provider: ProviderBTTV, URL: bttvEmoteURL(e.ID)}
	}
	return set, nil
}

// =============================================================================
// FRANKERFACEZ
// =============================================================================

type ffzEmote struct {
	Name string            `json:"name"`
	URLs map[string]string `json:"urls"`
}

type ffzSet struct {
	Emoticons []ffzEmote `json:"emoticons"`
}

type ffzRoomResponse struct {
	Sets map[string]ffzSet `json:"sets"`
}

func (c *EmoteClient) ffzGlobals(ctx context.Context) (EmoteSet, error) {
	var resp ffzRoomResponse
	if err := c.getJSON(ctx, c.config.FFZBaseURL+"/set/global", &resp); err != nil {
		return nil, err
	}
	return ffzCollect(resp.Sets), nil
}

func (c *EmoteClient) ffzChannel(ctx context.Context, roomID string) (EmoteSet, error) {
	var resp ffzRoomResponse
	if err := c.getJSON(ctx, c.config.FFZBaseURL+"/room/id/"+roomID, &resp); err != nil {
		return nil, err
	}
	return ffzCollect(resp.Sets), nil
}

func ffzCollect(sets map[string]ffzSet) EmoteSet {
	out := make(EmoteSet)
	for _, s := range sets {
		for _, e := range s.Emoticons {
			out[e.Name] = Emote{Code: e.Name, Provider: ProviderFFZ, URL: e.URLs["1"]}
		}
	}
	return out
}

// =============================================================================
// SEVENTV
// =============================================================================

type sevenTVEmote struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sevenTVEmoteSet struct {
	Emotes []sevenTVEmote `json:"emotes"`
}

type sevenTVUserResponse struct {
	EmoteSet sevenTVEmoteSet `json:"emote_set"`
}

func sevenTVEmoteURL(id string) string {
	return "https://cdn.7tv.app/emote/" + id + "/1x.webp"
}

func (c *EmoteClient) sevenTVGlobals(ctx context.Context) (EmoteSet, error) {
	var resp sevenTVEmoteSet
	if err := c.getJSON(ctx, c.config.SevenTVBaseURL+"/emote-sets/global", &resp); err != nil {
		return nil, err
	}
	set := make(EmoteSet, len(resp.Emotes))
	for _, e := range resp.Emotes {
		set[e.Name] = Emote{Code: e.Name, Provider: ProviderSevenTV, URL: sevenTVEmoteURL(e.ID)}
	}
	return set, nil
}

func (c *EmoteClient) sevenTVChannel(ctx context.Context, roomID string) (EmoteSet, error) {
	var resp sevenTVUserResponse
	if err := c.getJSON(ctx, c.config.SevenTVBaseURL+"/users/twitch/"+roomID, &resp); err != nil {
		return nil, err
	}
	set := make(EmoteSet, len(resp.EmoteSet.Emotes))
	for _, e := range resp.EmoteSet.Emotes {
		set[e.Name] = Emote{Code: e.Name, Provider: ProviderSevenTV, URL: sevenTVEmoteURL(e.ID)}
	}
	return set, nil
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

func (c *EmoteClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
