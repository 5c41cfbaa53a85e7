// Package numeric extracts numeric bounds from annotation values such as
// "300" or "From 6 to 66".
package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

var rangePattern = regexp.MustCompile(`(?i)from\s*([-\d.]+)\s*to\s*([-\d.]+)`)

// ParseRange returns the numbers carried by one item. A plain number yields
// one value; a "From X to Y" phrase yields both bounds. Items that carry no
// number yield nil.
func ParseRange(item string) []float64 {
	item = strings.TrimSpace(item)
	if item == "" {
		return nil
	}

	if m := rangePattern.FindStringSubmatch(item); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 != nil || err2 != nil {
			return nil
		}
		return []float64{lo, hi}
	}

	if v, err := strconv.ParseFloat(item, 64); err == nil {
		return []float64{v}
	}
	return nil
}

// MinMax returns the smallest and largest number found in items. ok is
// false when no item carries a number.
func MinMax(items []string) (lo, hi float64, ok bool) {
	for _, item := range items {
		for _, v := range ParseRange(item) {
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi, ok
}
