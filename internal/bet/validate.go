package bet

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	singleRe = regexp.MustCompile(`^\d$`)
	jodiRe   = regexp.MustCompile(`^\d{2}$`)
	sixRe    = regexp.MustCompile(`^\d{6}$`)
)

// ValidateNumber decides whether number is an acceptable bet number for t.
// The returned error message is shown to the user as-is. Normalization
// (NormalizeNumber) is the caller's job; a 6-digit full sangam without its
// dash is rejected here.
func ValidateNumber(t Type, number string) error {
	switch t {
	case TypeSingle:
		if !singleRe.MatchString(number) {
			return fmt.Errorf("enter a single digit (0-9)")
		}
		return nil

	case TypeJodi:
		if !jodiRe.MatchString(number) {
			return fmt.Errorf("jodi must be exactly 2 digits")
		}
		return nil

	case TypeSinglePanna:
		return validatePannaClass(number, PannaSingle)
	case TypeDoublePanna:
		return validatePannaClass(number, PannaDouble)
	case TypeTriplePanna:
		return validatePannaClass(number, PannaTriple)

	case TypeHalfSangamOpen, TypeHalfSangamClose:
		parts := strings.Split(number, "-")
		if len(parts) != 2 {
			return fmt.Errorf("half sangam must be in digit-panna format (e.g. 5-123)")
		}
		if !singleRe.MatchString(parts[0]) {
			return fmt.Errorf("half sangam digit part must be a single digit (0-9)")
		}
		if !pannaRe.MatchString(parts[1]) {
			return fmt.Errorf("half sangam panna part must be exactly 3 digits")
		}
		return nil

	case TypeFullSangam:
		parts := strings.Split(number, "-")
		if len(parts) != 2 {
			return fmt.Errorf("full sangam must be in panna-panna format (e.g. 123-456)")
		}
		if !pannaRe.MatchString(parts[0]) || !pannaRe.MatchString(parts[1]) {
			return fmt.Errorf("full sangam parts must each be exactly 3 digits")
		}
		return nil

	default:
		return fmt.Errorf("unknown bet type %q", string(t))
	}
}

func validatePannaClass(number string, want PannaClass) error {
	class, err := ClassifyPanna(number)
	if err != nil {
		return fmt.Errorf("panna must be exactly 3 digits")
	}
	if class != want {
		return fmt.Errorf("not a %s panna: this is a %s panna", want, class)
	}
	return nil
}

// NormalizeNumber applies the per-type input conveniences the betting form
// grants before validation: surrounding whitespace is dropped everywhere,
// and a 6-digit full sangam entered without a dash gets one inserted after
// the third digit.
func NormalizeNumber(t Type, number string) string {
	number = strings.TrimSpace(number)
	if t == TypeFullSangam && sixRe.MatchString(number) {
		return number[:3] + "-" + number[3:]
	}
	return number
}
