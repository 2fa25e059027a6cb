// Package percent implements a simple and straightforward type for
// percentage values.
package percent

import (
	"math"
	"strconv"
	"strings"
)

// Percent is a percentage value between 0 and 100.
type Percent uint8

// FromInt creates a percentage value from an integer, clamped to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat creates a percentage value from a float, rounded and clamped.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses strings like "50" or "50%". Values outside 0…100
// are clamped.
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return FromInt(n), nil
}

// Clamp restricts p to the interval [lo, hi].
func (p Percent) Clamp(lo, hi Percent) Percent {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// Within reports whether lo <= p <= hi.
func (p Percent) Within(lo, hi Percent) bool {
	return p >= lo && p <= hi
}

// CeilOf returns ⌈n·p/100⌉, computed in integer arithmetic.
func (p Percent) CeilOf(n int) int {
	if n <= 0 {
		return 0
	}
	return (n*int(p) + 99) / 100
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
