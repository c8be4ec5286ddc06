// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/streamchat-tui/internal/config"
	"github.com/jeranaias/streamchat-tui/internal/model"
	"github.com/jeranaias/streamchat-tui/internal/platform"
	"github.com/jeranaias/streamchat-tui/internal/storage"
	"github.com/jeranaias/streamchat-tui/internal/twitch"
	"github.com/jeranaias/streamchat-tui/internal/ui/chat"
	"github.com/jeranaias/streamchat-tui/internal/ui/components"
	"github.com/jeranaias/streamchat-tui/internal/ui/styles"
)

// chrome is the number of terminal rows not available to the transcript:
// the tab bar, the input box with its border, and the status bar.
const chrome = 5

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	cfg     *config.Config
	cfgPath string
	theme   *styles.Theme

	client *twitch.Client
	events chan twitch.Event

	emotes        *platform.EmoteClient
	history       *platform.HistoryClient
	globalEmotes  platform.EmoteSet
	channelEmotes map[string]platform.EmoteSet

	// store is nil when scrollback persistence is disabled.
	store *storage.Store

	panes  []*chat.Pane
	active int

	tabs   *components.TabBar
	status *components.StatusBar
	join   *components.JoinPrompt
	help   *components.Help
	input  textinput.Model

	inputFocused bool
	persisted    int // appended rows since the last prune
	width        int
	height       int
}

// Options carries the constructed dependencies into the model.
type Options struct {
	Config     *config.Config
	ConfigPath string
	Store      *storage.Store
	HistoryURL string
}

// New builds the application model and its IRC client. The connection does
// not start here; run RunIRC on its own goroutine.
func New(opts Options) *Model {
	theme := styles.New()

	m := &Model{
		cfg:           opts.Config,
		cfgPath:       opts.ConfigPath,
		theme:         theme,
		events:        make(chan twitch.Event, 256),
		emotes:        platform.NewEmoteClient(platform.DefaultEmoteConfig()),
		history:       platform.NewHistoryClient(opts.HistoryURL),
		globalEmotes:  make(platform.EmoteSet),
		channelEmotes: make(map[string]platform.EmoteSet),
		store:         opts.Store,
		tabs:          components.NewTabBar(theme),
		status:        components.NewStatusBar(theme),
		join:          components.NewJoinPrompt(theme),
		help:          components.NewHelp(theme),
	}

	acct, _ := opts.Config.PrimaryAccount()
	m.client = twitch.New(acct, func(ev twitch.Event) {
		select {
		case m.events <- ev:
		default:
			slog.Warn("event channel saturated, dropping event")
		}
	})
	m.status.Username = m.client.Username
	m.status.Anonymous = m.client.Anonymous()

	ti := textinput.New()
	ti.Placeholder = "send a message (i to focus)"
	ti.Prompt = "> "
	ti.CharLimit = 500 // platform message length limit
	m.input = ti

	return m
}

// RunIRC connects to chat and blocks until ctx is canceled. Run it on its
// own goroutine; events arrive through the model's event channel.
func (m *Model) RunIRC(ctx context.Context) error {
	return m.client.Run(ctx)
}

// ApplyConfig applies live-reloadable settings from a fresh config.
func (m *Model) ApplyConfig(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		return configMsg{cfg: &configSnapshot{
			naturalScrolling: cfg.UI.NaturalScrolling,
		}}
	}
}

// Init joins the configured channels and starts the event pump.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForEvent(m.events),
		fetchGlobalEmotes(m.emotes),
		m.status.Tick(),
	}
	for _, name := range m.cfg.Chats {
		cmds = append(cmds, m.joinChannel(name))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// CHANNEL MANAGEMENT
// =============================================================================

// paneFor returns the pane for a channel login, or nil.
func (m *Model) paneFor(channel string) *chat.Pane {
	channel = strings.ToLower(strings.TrimPrefix(channel, "#"))
	for _, p := range m.panes {
		if p.Channel.Name == channel {
			return p
		}
	}
	return nil
}

// activePane returns the currently selected pane, or nil with no channels.
func (m *Model) activePane() *chat.Pane {
	if m.active < 0 || m.active >= len(m.panes) {
		return nil
	}
	return m.panes[m.active]
}

// joinChannel creates the pane, joins over IRC, and kicks off the backfill.
// Joining an already-joined channel just selects its tab.
func (m *Model) joinChannel(name string) tea.Cmd {
	name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "#")))
	if name == "" {
		return nil
	}
	if p := m.paneFor(name); p != nil {
		for i, q := range m.panes {
			if q == p {
				m.selectTab(i)
			}
		}
		return nil
	}

	ch := model.NewChannel(name)
	ch.MaxScrollback = m.cfg.Scrollback.Limit
	p := chat.NewPane(ch, m.theme, m.client.Username)
	p.SetNaturalScrolling(m.cfg.UI.NaturalScrolling)
	p.SetEmotes(m.globalEmotes)
	m.panes = append(m.panes, p)
	m.tabs.Tabs = append(m.tabs.Tabs, components.Tab{Name: name})
	m.selectTab(len(m.panes) - 1)
	m.layout()

	m.client.Join(name)
	ch.Append(model.NewSystemMessage(name, "joined #"+name))
	p.Relayout()
	m.syncConfigChats()

	cmds := []tea.Cmd{fetchHistory(m.history, name)}
	if m.store != nil {
		if stored, err := m.store.Recent(context.Background(), name, m.cfg.Scrollback.Limit); err == nil && len(stored) > 0 {
			ch.PrependHistory(stored)
			p.Relayout()
		}
	}
	return tea.Batch(cmds...)
}

// closeChannel departs and removes the active tab.
func (m *Model) closeChannel() {
	p := m.activePane()
	if p == nil {
		return
	}
	name := p.Channel.Name
	m.client.Depart(name)
	p.Close()

	m.panes = append(m.panes[:m.active], m.panes[m.active+1:]...)
	m.tabs.Tabs = append(m.tabs.Tabs[:m.active], m.tabs.Tabs[m.active+1:]...)
	if m.active >= len(m.panes) {
		m.active = len(m.panes) - 1
	}
	if m.active < 0 {
		m.active = 0
	}
	m.tabs.Active = m.active
	m.syncConfigChats()
}

// selectTab activates tab i and clears its unread counters.
func (m *Model) selectTab(i int) {
	if i < 0 || i >= len(m.panes) {
		return
	}
	m.active = i
	m.tabs.Active = i
	m.tabs.Tabs[i].Unread = 0
	m.tabs.Tabs[i].Mention = false
}

// syncConfigChats persists the joined channel list when it changed.
func (m *Model) syncConfigChats() {
	chats := make([]string, len(m.panes))
	for i, p := range m.panes {
		chats[i] = p.Channel.Name
	}
	if equalStrings(chats, m.cfg.Chats) {
		return
	}
	m.cfg.Chats = chats
	if m.cfgPath != "" {
		if err := m.cfg.Save(m.cfgPath); err != nil {
			slog.Warn("failed to save config", "err", err)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// layout pushes the current size into every pane and component.
func (m *Model) layout() {
	rows := m.height - chrome
	if rows < 1 {
		rows = 1
	}
	for _, p := range m.panes {
		p.SetSize(m.width, rows)
	}
	m.tabs.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.input.Width = m.width - 6
}
