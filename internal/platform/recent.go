// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	twitchirc "github.com/gempir/go-twitch-irc/v4"

	"github.com/jeranaias/streamchat-tui/internal/model"
)

// =============================================================================
// RECENT MESSAGES
// =============================================================================

const (
	defaultRecentMessagesURL = "https://recent-messages.robotty.de"
	recentMessagesLimit      = 250
)

type recentResponse struct {
	Messages []string `json:"messages"`
	Error    *string  `json:"error"`
}

// HistoryClient fetches chat history for a channel from the recent-messages
// service, so a freshly joined channel is not empty.
type HistoryClient struct {
	baseURL string
	http    *http.Client
}

// NewHistoryClient builds a client. The RECENT_MESSAGES_URL environment
// variable overrides the default service, and an empty baseURL argument means
// "use the default".
func NewHistoryClient(baseURL string) *HistoryClient {
	if baseURL == "" {
		baseURL = os.Getenv("RECENT_MESSAGES_URL")
	}
	if baseURL == "" {
		baseURL = defaultRecentMessagesURL
	}
	return &HistoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch returns up to recentMessagesLimit historical messages for the channel,
// oldest first. Only PRIVMSG lines become messages; other line types in the
// history (clears, notices) are skipped.
func (c *HistoryClient) Fetch(ctx context.Context, channel string) ([]*model.ChatMessage, error) {
	channel = strings.ToLower(strings.TrimPrefix(channel, "#"))

	endpoint := fmt.Sprintf("%s/api/v2/recent-messages/%s?limit=%s",
		c.baseURL, url.PathEscape(channel), strconv.Itoa(recentMessagesLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recent-messages returned %s", resp.Status)
	}

	var body recentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if body.Error != nil && *body.Error != "" {
		return nil, fmt.Errorf("recent-messages: %s", *body.Error)
	}

	messages := make([]*model.ChatMessage, 0, len(body.Messages))
	for _, raw := range body.Messages {
		// Unparseable lines come back as *RawMessage and fall out here
		// along with clears and notices.
		pm, ok := twitchirc.ParseMessage(raw).(*twitchirc.PrivateMessage)
		if !ok {
			continue
		}
		m := model.FromPrivateMessage(*pm)
		m.Historical = true
		messages = append(messages, m)
	}
	return messages, nil
}
