// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package theme

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/velocityonboard/onboard-service/internal/types"
)

func TestNormalizeDefaults(t *testing.T) {
	for _, raw := range []types.ThemeTokens{nil, {}, {"unknown": "x"}} {
		if got := Normalize(raw); got != Default() {
			t.Errorf("expected defaults for %v, got %+v", raw, got)
		}
	}
}

func TestNormalizeDerivesContrast(t *testing.T) {
	tests := []struct {
		name    string
		raw     types.ThemeTokens
		primary string
		accent  string
	}{
		{name: "black primary", raw: types.ThemeTokens{"primary": "#000000"}, primary: "#ffffff", accent: "#ffffff"},
		{name: "white primary", raw: types.ThemeTokens{"primary": "#ffffff"}, primary: "#0b1220", accent: "#ffffff"},
		{name: "light accent", raw: types.ThemeTokens{"accent": "#fde047"}, primary: "#ffffff", accent: "#0b1220"},
		{name: "malformed hex", raw: types.ThemeTokens{"primary": "blue", "accent": "#12"}, primary: "#ffffff", accent: "#ffffff"},
		{name: "explicit contrast kept", raw: types.ThemeTokens{"primary": "#000000", "primaryContrast": "#ff0000"}, primary: "#ff0000", accent: "#ffffff"},
		{name: "empty contrast derived", raw: types.ThemeTokens{"primary": "#ffffff", "primaryContrast": ""}, primary: "#0b1220", accent: "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.PrimaryContrast != tt.primary {
				t.Errorf("expected primary contrast %s, got %s", tt.primary, got.PrimaryContrast)
			}
			if got.AccentContrast != tt.accent {
				t.Errorf("expected accent contrast %s, got %s", tt.accent, got.AccentContrast)
			}
		})
	}
}

func TestNormalizeClamps(t *testing.T) {
	tests := []struct {
		name     string
		raw      types.ThemeTokens
		heroTint float64
		radius   int
	}{
		{name: "within range", raw: types.ThemeTokens{"heroTint": 0.35, "radius": 16.0}, heroTint: 0.35, radius: 16},
		{name: "above range", raw: types.ThemeTokens{"heroTint": 2.0, "radius": 99}, heroTint: 0.6, radius: 24},
		{name: "below range", raw: types.ThemeTokens{"heroTint": -1, "radius": 2}, heroTint: 0, radius: 6},
		{name: "numeric strings", raw: types.ThemeTokens{"heroTint": "0.5", "radius": "20"}, heroTint: 0.5, radius: 20},
		{name: "fractional radius truncated", raw: types.ThemeTokens{"radius": 13.9}, heroTint: 0.20, radius: 13},
		{name: "zero radius", raw: types.ThemeTokens{"radius": 0}, heroTint: 0.20, radius: 12},
		{name: "garbage", raw: types.ThemeTokens{"heroTint": "lots", "radius": "round"}, heroTint: 0.20, radius: 12},
		{name: "zero tint kept", raw: types.ThemeTokens{"heroTint": 0}, heroTint: 0, radius: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.HeroTint != tt.heroTint {
				t.Errorf("expected heroTint %v, got %v", tt.heroTint, got.HeroTint)
			}
			if got.Radius != tt.radius {
				t.Errorf("expected radius %d, got %d", tt.radius, got.Radius)
			}
		})
	}
}

func TestNormalizeEnums(t *testing.T) {
	got := Normalize(types.ThemeTokens{"mode": "dark", "elev": "lifted", "heroPattern": "dots"})
	if got.Mode != ModeDark || got.Elev != ElevationLifted || got.HeroPattern != HeroPatternDots {
		t.Errorf("expected valid enums to be kept, got %+v", got)
	}

	got = Normalize(types.ThemeTokens{"mode": "neon", "elev": 3, "heroPattern": "stripes"})
	if got.Mode != ModeLight || got.Elev != ElevationSoft || got.HeroPattern != HeroPatternGrid {
		t.Errorf("expected invalid enums to fall back, got %+v", got)
	}
}

func TestNormalizeLegacyShape(t *testing.T) {
	got := Normalize(types.ThemeTokens{"primary": "#aa0000", "ink": "#111111"})

	want := Default()
	want.Primary = "#aa0000"
	want.PrimaryContrast = "#ffffff"
	want.Ink = "#111111"

	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []types.ThemeTokens{
		nil,
		{"primary": "#ffffff", "heroTint": 5, "radius": "3"},
		{"mode": "dark", "accent": "#000000", "elev": "none", "heroPattern": "gradient", "radius": 30.7},
		{"primary": "", "heroTint": "", "extra": true},
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once.Tokens())
		if once != twice {
			t.Errorf("normalize not idempotent for %v: %+v != %+v", in, once, twice)
		}
	}
}

func TestNormalizeAfterJSONRoundTrip(t *testing.T) {
	once := Normalize(types.ThemeTokens{"primary": "#123456", "radius": 18, "heroTint": 0.4})

	b, err := json.Marshal(once.Tokens())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stored types.ThemeTokens
	if err := json.Unmarshal(b, &stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := Normalize(stored); got != once {
		t.Errorf("expected stored theme to normalise to itself, got %+v", got)
	}
}

func TestCSSVariables(t *testing.T) {
	vars := Normalize(types.ThemeTokens{"elev": "lifted", "radius": 8}).CSSVariables()

	want := map[string]string{
		"--vo-radius":      "8px",
		"--vo-elev-shadow": "0 12px 24px rgba(0,0,0,0.15)",
		"--vo-primary":     "#1e63f0",
		"--vo-mode":        "light",
	}
	for k, v := range want {
		if vars[k] != v {
			t.Errorf("expected %s=%q, got %q", k, v, vars[k])
		}
	}

	if none := Normalize(types.ThemeTokens{"elev": "none"}).CSSVariables()["--vo-elev-shadow"]; none != "none" {
		t.Errorf("expected no shadow, got %q", none)
	}
}

func TestTokensCoverEveryField(t *testing.T) {
	tokens := Default().Tokens()
	if n := reflect.TypeOf(Theme{}).NumField(); len(tokens) != n {
		t.Errorf("expected %d tokens, got %d", n, len(tokens))
	}
}
