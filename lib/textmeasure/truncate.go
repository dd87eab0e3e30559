package textmeasure

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

const Ellipsis = "..."

// Truncate returns s unchanged when it fits in maxWidth, and otherwise the
// longest grapheme prefix of s followed by Ellipsis that does. When not even the
// ellipsis fits, the ellipsis alone is returned.
func Truncate(m Measurer, fontSize float64, s string, maxWidth float64) string {
	s = norm.NFC.String(s)
	if w, _ := m.Measure(fontSize, s); w <= maxWidth {
		return s
	}

	// byte offsets of grapheme cluster ends
	var ends []int
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		_, to := gr.Positions()
		ends = append(ends, to)
	}

	fits := func(n int) bool {
		prefix := ""
		if n > 0 {
			prefix = s[:ends[n-1]]
		}
		w, _ := m.Measure(fontSize, prefix+Ellipsis)
		return w <= maxWidth
	}

	lo, hi := 0, len(ends)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return Ellipsis
	}
	return s[:ends[lo-1]] + Ellipsis
}

// IsTruncated reports whether Truncate shortened original into s.
func IsTruncated(original, s string) bool {
	return norm.NFC.String(original) != s
}
