// Package types contains the enumerations shared by every evaluation stage.
package types

import (
	"fmt"
	"strings"
)

// Category groups metrics for scoring.
type Category string

const (
	Physical      Category = "physical"
	Technical     Category = "technical"
	Tactical      Category = "tactical"
	Psychological Category = "psychological"
)

// Categories lists every category in reporting order.
var Categories = []Category{Physical, Technical, Tactical, Psychological}

// Label returns the human-readable name used in program focus lists.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Direction tells whether smaller or larger raw values are better.
type Direction int

const (
	HigherIsBetter Direction = iota
	LowerIsBetter
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower"
	}
	return "higher"
}

// Better reports whether a is strictly better than b in direction d.
func (d Direction) Better(a, b float64) bool {
	if d == LowerIsBetter {
		return a < b
	}
	return a > b
}

// Tier is a discrete performance judgment. The zero value means no tier.
type Tier int

const (
	Poor Tier = iota + 1
	Average
	Good
	Excellent
)

// Tiers lists the tiers best first.
var Tiers = []Tier{Excellent, Good, Average, Poor}

// Score maps the tier onto the single 2..5 scoring scale.
func (t Tier) Score() float64 {
	switch t {
	case Excellent:
		return 5
	case Good:
		return 4
	case Average:
		return 3
	case Poor:
		return 2
	}
	return 0
}

// Valid reports whether t is one of the four tiers.
func (t Tier) Valid() bool { return t >= Poor && t <= Excellent }

// Weak reports whether the tier counts as a weakness.
func (t Tier) Weak() bool { return t == Poor || t == Average }

func (t Tier) String() string {
	switch t {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Average:
		return "average"
	case Poor:
		return "poor"
	}
	return "none"
}

// MarshalText renders the tier name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTier parses a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excellent":
		return Excellent, nil
	case "good":
		return Good, nil
	case "average":
		return Average, nil
	case "poor":
		return Poor, nil
	}
	return 0, fmt.Errorf("unknown tier %q", s)
}

// AgeBand selects the standards row for an athlete.
type AgeBand string

const (
	U14   AgeBand = "12-14"
	U16   AgeBand = "15-16"
	U18   AgeBand = "17-18"
	Elite AgeBand = "elite"
)

// AgeBands lists every band youngest first.
var AgeBands = []AgeBand{U14, U16, U18, Elite}

// MinAge is the youngest age covered by a band.
const MinAge = 12

// AgeBandFor maps an age onto its band using inclusive ranges.
// Ages above 18 are elite. Ages below MinAge have no band of their own;
// they resolve to Elite and ok is false so callers can flag the fallback.
func AgeBandFor(age int) (band AgeBand, ok bool) {
	switch {
	case age < MinAge:
		return Elite, false
	case age <= 14:
		return U14, true
	case age <= 16:
		return U16, true
	case age <= 18:
		return U18, true
	}
	return Elite, true
}

// ParseAgeBand validates a band name.
func ParseAgeBand(s string) (AgeBand, bool) {
	for _, b := range AgeBands {
		if string(b) == s {
			return b, true
		}
	}
	return "", false
}
