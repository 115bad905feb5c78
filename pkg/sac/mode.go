package sac

import "strings"

// ColorMode selects how the two arrays map onto RGBA pixels.
type ColorMode string

const (
	ModeWhite   ColorMode = "white"
	ModeRed     ColorMode = "red"
	ModeGreen   ColorMode = "green"
	ModeBlue    ColorMode = "blue"
	ModeRainbow ColorMode = "rainbow"
)

// ColorModes lists every supported mode.
var ColorModes = []ColorMode{ModeWhite, ModeRed, ModeGreen, ModeBlue, ModeRainbow}

// ParseColorMode resolves s to a ColorMode. The empty string selects white.
func ParseColorMode(s string) (ColorMode, error) {
	if s == "" {
		return ModeWhite, nil
	}
	for _, m := range ColorModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", renderErr(ErrUnknownColorMode, "%q (want one of %s)", s, modeList())
}

func modeList() string {
	names := make([]string, len(ColorModes))
	for i, m := range ColorModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func (m ColorMode) String() string {
	return string(m)
}
