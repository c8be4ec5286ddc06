// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package twitch

import (
	"context"
	"testing"
	"time"

	"github.com/jeranaias/streamchat-tui/internal/config"
)

func TestNew_AnonymousWhenNoAccount(t *testing.T) {
	c := New(config.Account{}, func(Event) {})
	if !c.Anonymous() {
		t.Error("expected anonymous client")
	}
	if c.Say("somechannel", "hi") {
		t.Error("anonymous client must not send")
	}
	if c.Username != anonymousUser {
		t.Errorf("username = %q, want the shared anonymous login", c.Username)
	}
}

func TestRun_ReturnsOnCancel(t *testing.T) {
	c := New(config.Account{}, func(Event) {})
	// Point at a closed local port so the connect attempt fails immediately
	// instead of reaching the real network.
	c.irc.IrcAddress = "127.0.0.1:1"
	c.irc.TLS = false
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected a cancellation error from Run")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestNew_Authenticated(t *testing.T) {
	c := New(config.Account{Username: "SomeUser", Token: "abc"}, func(Event) {})
	if c.Anonymous() {
		t.Error("expected authenticated client")
	}
	if c.Username != "someuser" {
		t.Errorf("username = %q, want lowercase login", c.Username)
	}
}

func TestSay_QueueSaturation(t *testing.T) {
	c := New(config.Account{Username: "u", Token: "t"}, func(Event) {})

	// The queue holds 64 messages; nothing drains it without a connection.
	for i := 0; i < 64; i++ {
		if !c.Say("chan", "msg") {
			t.Fatalf("send %d rejected before the queue filled", i)
		}
	}
	if c.Say("chan", "overflow") {
		t.Error("saturated queue accepted a message")
	}
}
