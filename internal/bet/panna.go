package bet

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PannaClass partitions 3-digit numbers by digit repetition.
type PannaClass string

const (
	PannaSingle PannaClass = "single"
	PannaDouble PannaClass = "double"
	PannaTriple PannaClass = "triple"
)

var pannaRe = regexp.MustCompile(`^\d{3}$`)

// ClassifyPanna classifies a 3-digit string as single/double/triple panna.
// The comparison runs over the sorted digits so a repeated pair is adjacent
// regardless of input order ("212" sorts to "122").
func ClassifyPanna(s string) (PannaClass, error) {
	if !pannaRe.MatchString(s) {
		return "", fmt.Errorf("panna must be exactly 3 digits, got %q", s)
	}

	digits := strings.Split(s, "")
	sort.Strings(digits)

	switch {
	case digits[0] == digits[2]:
		return PannaTriple, nil
	case digits[0] == digits[1] || digits[1] == digits[2]:
		return PannaDouble, nil
	default:
		return PannaSingle, nil
	}
}
