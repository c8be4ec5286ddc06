// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"hash/fnv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// minUserLightness keeps Twitch-supplied name colors readable on a dark
// background. Colors below the floor get their HSL lightness raised to it.
const minUserLightness = 0.3

// defaultUserColors is the palette Twitch itself assigns when a user never
// picked a color. Used here for the same fallback.
var defaultUserColors = []string{
	"#FF0000", "#0000FF", "#008000", "#B22222", "#FF7F50",
	"#9ACD32", "#FF4500", "#2E8B57", "#DAA520", "#D2691E",
	"#5F9EA0", "#1E90FF", "#FF69B4", "#8A2BE2", "#00FF7F",
}

// UserColor returns the terminal color for a chat author. A color tag from
// the message wins when parseable; otherwise the login hashes into the
// default palette so every user keeps a stable color.
func UserColor(tagColor, login string) string {
	if tagColor != "" {
		if c, err := colorful.Hex(tagColor); err == nil {
			return brighten(c).Hex()
		}
	}
	h := fnv.New32a()
	h.Write([]byte(login))
	picked := defaultUserColors[h.Sum32()%uint32(len(defaultUserColors))]
	c, err := colorful.Hex(picked)
	if err != nil {
		return picked
	}
	return brighten(c).Hex()
}

func brighten(c colorful.Color) colorful.Color {
	h, s, l := c.Hsl()
	if l >= minUserLightness {
		return c
	}
	return colorful.Hsl(h, s, minUserLightness)
}
