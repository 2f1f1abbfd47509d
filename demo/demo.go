// Package demo composes the stock scenes and drives them frame by frame.
package demo

import (
	"fmt"
	"strconv"
	"strings"
)

// ID selects one of the stock scenes.
type ID int

const (
	CubeDemo ID = iota + 1
	IcosDemo
	GearDemo
	GLXGearsDemo
)

const (
	minID = CubeDemo
	maxID = GLXGearsDemo
)

// Clamp maps any integer onto a valid scene ID.
func Clamp(n int) ID {
	switch {
	case n < int(minID):
		return minID
	case n > int(maxID):
		return maxID
	}
	return ID(n)
}

// Parse reads a scene selector the way C atoi does: optional leading blanks and sign, then
// as many digits as there are. Anything unparsable reads as 0. The result is clamped.
func Parse(s string) ID {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return Clamp(0)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range; keep the sign.
		if s[0] == '-' {
			return minID
		}
		return maxID
	}
	return Clamp(n)
}

func (id ID) String() string {
	switch id {
	case CubeDemo:
		return "cube"
	case IcosDemo:
		return "icos"
	case GearDemo:
		return "gear"
	case GLXGearsDemo:
		return "glxgears"
	}
	return fmt.Sprintf("demo(%d)", int(id))
}

// Usage is printed when no scene was selected.
const Usage = "need argument <1...4>"
