// Package visualization renders probe reports for terminals, scripts and browsers.
package visualization

import (
	"fmt"
	"math"
	"strconv"
)

// Format specifies the output format for report rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, json or html)", s)
	}
}

// CandidateName is the display name of a zero-based candidate index,
// one-based and zero-padded to two digits: 2 -> "Candidate 03".
func CandidateName(i int) string {
	return fmt.Sprintf("Candidate %02d", i+1)
}

// FormatFixed rounds x half-up to digits decimals and formats it with
// exactly that many digits. Negative zero prints as zero.
func FormatFixed(x float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	scale := math.Pow(10, float64(digits))
	r := math.Floor(x*scale+0.5) / scale
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', digits, 64)
}
