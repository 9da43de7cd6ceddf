package core

import "strconv"

// Color is the foreground color of a screen cell.
type Color uint8

// Colors available to games. ColorDefault leaves the terminal's own color.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ansi256 maps each Color to its ANSI 256-color index.
var ansi256 = [...]int{
	ColorRed:           1,
	ColorGreen:         2,
	ColorYellow:        3,
	ColorBlue:          4,
	ColorMagenta:       5,
	ColorCyan:          6,
	ColorWhite:         7,
	ColorBrightRed:     9,
	ColorBrightGreen:   10,
	ColorBrightYellow:  11,
	ColorBrightBlue:    12,
	ColorBrightMagenta: 13,
	ColorBrightCyan:    14,
	ColorBrightWhite:   15,
	ColorOrange:        208,
	ColorGray:          245,
}

// ANSI returns the ANSI 256-color code as a string, or "" for ColorDefault
// and unknown values.
func (c Color) ANSI() string {
	if c == ColorDefault || int(c) >= len(ansi256) {
		return ""
	}
	return strconv.Itoa(ansi256[c])
}
