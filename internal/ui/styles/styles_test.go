// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestUserColor_KeepsBrightTagColor(t *testing.T) {
	got := UserColor("#FF0000", "someuser")
	if !strings.EqualFold(got, "#FF0000") {
		t.Errorf("UserColor(#FF0000) = %s, want unchanged", got)
	}
}

func TestUserColor_BrightensDarkColor(t *testing.T) {
	got := UserColor("#000080", "someuser") // navy, far below the floor
	c, err := colorful.Hex(got)
	if err != nil {
		t.Fatalf("result %q is not a color: %v", got, err)
	}
	_, _, l := c.Hsl()
	if l < minUserLightness-0.01 {
		t.Errorf("lightness %f below floor %f", l, minUserLightness)
	}
	if strings.EqualFold(got, "#000080") {
		t.Error("dark color was not adjusted")
	}
}

func TestUserColor_FallbackIsStable(t *testing.T) {
	a := UserColor("", "someuser")
	b := UserColor("", "someuser")
	if a != b {
		t.Errorf("fallback color changed between calls: %s vs %s", a, b)
	}
	if a == "" {
		t.Error("fallback produced empty color")
	}
}

func TestUserColor_InvalidTagFallsBack(t *testing.T) {
	got := UserColor("notacolor", "someuser")
	want := UserColor("", "someuser")
	if got != want {
		t.Errorf("invalid tag color: got %s, want fallback %s", got, want)
	}
}

func TestNewTheme(t *testing.T) {
	theme := New()
	if theme.TabActive.GetBold() != true {
		t.Error("active tab should be bold")
	}
	if theme.Deleted.GetStrikethrough() != true {
		t.Error("deleted messages should be struck through")
	}
}
