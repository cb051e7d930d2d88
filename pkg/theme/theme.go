// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package theme turns a partial or legacy agency branding record into a complete theme.
package theme

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/velocityonboard/onboard-service/internal/types"
)

const (
	darkInk = "#0b1220"
	white   = "#ffffff"

	// contrastThreshold is the relative luminance above which dark text is used.
	contrastThreshold = 0.54

	minHeroTint = 0.0
	maxHeroTint = 0.6
	minRadius   = 6
	maxRadius   = 24
)

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type Elevation string

const (
	ElevationNone   Elevation = "none"
	ElevationSoft   Elevation = "soft"
	ElevationLifted Elevation = "lifted"
)

type HeroPattern string

const (
	HeroPatternNone     HeroPattern = "none"
	HeroPatternGrid     HeroPattern = "grid"
	HeroPatternDots     HeroPattern = "dots"
	HeroPatternGradient HeroPattern = "gradient"
)

// Theme is a fully populated branding token set.
type Theme struct {
	Mode            Mode        `json:"mode"`
	Primary         string      `json:"primary"`
	PrimaryContrast string      `json:"primaryContrast"`
	Accent          string      `json:"accent"`
	AccentContrast  string      `json:"accentContrast"`
	Ink             string      `json:"ink"`
	Muted           string      `json:"muted"`
	Bg              string      `json:"bg"`
	Surface         string      `json:"surface"`
	Card            string      `json:"card"`
	Border          string      `json:"border"`
	HeroPattern     HeroPattern `json:"heroPattern"`
	HeroTint        float64     `json:"heroTint"`
	Radius          int         `json:"radius"`
	Elev            Elevation   `json:"elev"`
}

// Default is the theme used for agencies that never customised their branding.
func Default() Theme {
	return Theme{
		Mode:            ModeLight,
		Primary:         "#1e63f0",
		PrimaryContrast: white,
		Accent:          "#22c55e",
		AccentContrast:  white,
		Ink:             darkInk,
		Muted:           "#6b7280",
		Bg:              white,
		Surface:         white,
		Card:            white,
		Border:          "#e5e7eb",
		HeroPattern:     HeroPatternGrid,
		HeroTint:        0.20,
		Radius:          12,
		Elev:            ElevationSoft,
	}
}

var hexColor = regexp.MustCompile(`^[0-9a-fA-F]{6}$`)

// Luminance returns the WCAG relative luminance of a #rrggbb color.
// Malformed input has luminance 0.
func Luminance(hex string) float64 {
	h := strings.TrimPrefix(hex, "#")
	if !hexColor.MatchString(h) {
		return 0
	}

	channel := func(s string) float64 {
		v, _ := strconv.ParseUint(s, 16, 8)
		c := float64(v) / 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}

	return 0.2126*channel(h[0:2]) + 0.7152*channel(h[2:4]) + 0.0722*channel(h[4:6])
}

// ContrastOn picks the text color readable on top of color.
func ContrastOn(color string) string {
	if Luminance(color) > contrastThreshold {
		return darkInk
	}
	return white
}

func str(raw types.ThemeTokens, key string) (string, bool) {
	s, ok := raw[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func number(raw types.ThemeTokens, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return 0, false
}

func oneOf[T ~string](raw types.ThemeTokens, key string, fallback T, allowed ...T) T {
	s, ok := str(raw, key)
	if !ok {
		return fallback
	}
	for _, a := range allowed {
		if T(s) == a {
			return a
		}
	}
	return fallback
}

// Normalize fills every missing token, derives contrast colors and clamps
// numeric tokens. It never fails and Normalize(n.Tokens()) == n.
func Normalize(raw types.ThemeTokens) Theme {
	t := Default()

	colors := []struct {
		key string
		dst *string
	}{
		{"primary", &t.Primary},
		{"accent", &t.Accent},
		{"ink", &t.Ink},
		{"muted", &t.Muted},
		{"bg", &t.Bg},
		{"surface", &t.Surface},
		{"card", &t.Card},
		{"border", &t.Border},
	}
	for _, c := range colors {
		if v, ok := str(raw, c.key); ok {
			*c.dst = v
		}
	}

	t.PrimaryContrast = ContrastOn(t.Primary)
	if v, ok := str(raw, "primaryContrast"); ok {
		t.PrimaryContrast = v
	}
	t.AccentContrast = ContrastOn(t.Accent)
	if v, ok := str(raw, "accentContrast"); ok {
		t.AccentContrast = v
	}

	if v, ok := number(raw, "heroTint"); ok {
		t.HeroTint = min(max(v, minHeroTint), maxHeroTint)
	}

	if v, ok := number(raw, "radius"); ok && math.Trunc(v) != 0 {
		t.Radius = int(min(max(math.Trunc(v), minRadius), maxRadius))
	}

	t.Mode = oneOf(raw, "mode", t.Mode, ModeLight, ModeDark)
	t.Elev = oneOf(raw, "elev", t.Elev, ElevationNone, ElevationSoft, ElevationLifted)
	t.HeroPattern = oneOf(raw, "heroPattern", t.HeroPattern, HeroPatternNone, HeroPatternGrid, HeroPatternDots, HeroPatternGradient)

	return t
}

// Tokens returns the theme as a storable token record.
func (t Theme) Tokens() types.ThemeTokens {
	return types.ThemeTokens{
		"mode":            string(t.Mode),
		"primary":         t.Primary,
		"primaryContrast": t.PrimaryContrast,
		"accent":          t.Accent,
		"accentContrast":  t.AccentContrast,
		"ink":             t.Ink,
		"muted":           t.Muted,
		"bg":              t.Bg,
		"surface":         t.Surface,
		"card":            t.Card,
		"border":          t.Border,
		"heroPattern":     string(t.HeroPattern),
		"heroTint":        t.HeroTint,
		"radius":          t.Radius,
		"elev":            string(t.Elev),
	}
}

func (e Elevation) shadow() string {
	switch e {
	case ElevationNone:
		return "none"
	case ElevationLifted:
		return "0 12px 24px rgba(0,0,0,0.15)"
	case ElevationSoft:
		return "0 6px 16px rgba(0,0,0,0.08)"
	}
	return "0 6px 16px rgba(0,0,0,0.08)"
}

// CSSVariables returns the CSS custom properties a page applies to render the theme.
func (t Theme) CSSVariables() map[string]string {
	return map[string]string{
		"--vo-bg":               t.Bg,
		"--vo-surface":          t.Surface,
		"--vo-card":             t.Card,
		"--vo-border":           t.Border,
		"--vo-ink":              t.Ink,
		"--vo-muted":            t.Muted,
		"--vo-primary":          t.Primary,
		"--vo-primary-contrast": t.PrimaryContrast,
		"--vo-accent":           t.Accent,
		"--vo-accent-contrast":  t.AccentContrast,
		"--vo-radius":           fmt.Sprintf("%dpx", t.Radius),
		"--vo-elev-shadow":      t.Elev.shadow(),
		"--vo-hero-tint":        strconv.FormatFloat(t.HeroTint, 'f', -1, 64),
		"--vo-hero-pattern":     string(t.HeroPattern),
		"--vo-mode":             string(t.Mode),
	}
}
