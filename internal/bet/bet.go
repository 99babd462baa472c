// Package bet holds the matka betting domain model: bet types, panna
// classification, bet-number validation, payout estimation and the
// session-window rules. Everything here is pure; the server remains the
// authority on settlement.
package bet

import "fmt"

// Type is the closed set of bet kinds the client can place.
type Type string

const (
	TypeSingle          Type = "single"
	TypeJodi            Type = "jodi"
	TypeSinglePanna     Type = "single_panna"
	TypeDoublePanna     Type = "double_panna"
	TypeTriplePanna     Type = "triple_panna"
	TypeHalfSangamOpen  Type = "half_sangam_open"
	TypeHalfSangamClose Type = "half_sangam_close"
	TypeFullSangam      Type = "full_sangam"
)

// Session is the half of a game's daily betting window a bet belongs to.
type Session string

const (
	SessionOpen  Session = "open"
	SessionClose Session = "close"
)

// ParseType accepts both the snake_case client spellings and the camelCase
// server spellings. The generic "half_sangam"/"halfSangam" tag resolves to
// the open-session variant; callers qualify it with the selected session via
// HalfSangam().
func ParseType(tag string) (Type, bool) {
	switch tag {
	case "single":
		return TypeSingle, true
	case "jodi":
		return TypeJodi, true
	case "single_panna", "singlePanna":
		return TypeSinglePanna, true
	case "double_panna", "doublePanna":
		return TypeDoublePanna, true
	case "triple_panna", "triplePanna":
		return TypeTriplePanna, true
	case "half_sangam", "halfSangam", "half_sangam_open":
		return TypeHalfSangamOpen, true
	case "half_sangam_close":
		return TypeHalfSangamClose, true
	case "full_sangam", "fullSangam":
		return TypeFullSangam, true
	default:
		return "", false
	}
}

// HalfSangam returns the session-qualified half-sangam type.
func HalfSangam(session Session) Type {
	if session == SessionClose {
		return TypeHalfSangamClose
	}
	return TypeHalfSangamOpen
}

// IsHalfSangam reports whether t is either half-sangam variant.
func (t Type) IsHalfSangam() bool {
	return t == TypeHalfSangamOpen || t == TypeHalfSangamClose
}

// BackendName maps a client bet type onto the server's vocabulary used in
// the bet-submission body.
func (t Type) BackendName() string {
	switch t {
	case TypeSingle:
		return "single"
	case TypeJodi:
		return "jodi"
	case TypeSinglePanna:
		return "singlePanna"
	case TypeDoublePanna:
		return "doublePanna"
	case TypeTriplePanna:
		return "triplePanna"
	case TypeHalfSangamOpen, TypeHalfSangamClose:
		return "halfSangam"
	case TypeFullSangam:
		return "fullSangam"
	default:
		return string(t)
	}
}

// RateCategory names an entry of the server's game-rate table. The "Pana"
// spelling is the server's, not a typo.
type RateCategory string

const (
	RateSingleDigit RateCategory = "singleDigit"
	RateJodiDigit   RateCategory = "jodiDigit"
	RateSinglePana  RateCategory = "singlePana"
	RateDoublePana  RateCategory = "doublePana"
	RateTriplePana  RateCategory = "triplePana"
	RateHalfSangam  RateCategory = "halfSangam"
	RateFullSangam  RateCategory = "fullSangam"
)

// RateCategory maps a bet type onto its rate-table category.
func (t Type) RateCategory() (RateCategory, error) {
	switch t {
	case TypeSingle:
		return RateSingleDigit, nil
	case TypeJodi:
		return RateJodiDigit, nil
	case TypeSinglePanna:
		return RateSinglePana, nil
	case TypeDoublePanna:
		return RateDoublePana, nil
	case TypeTriplePanna:
		return RateTriplePana, nil
	case TypeHalfSangamOpen, TypeHalfSangamClose:
		return RateHalfSangam, nil
	case TypeFullSangam:
		return RateFullSangam, nil
	default:
		return "", fmt.Errorf("unknown bet type %q", string(t))
	}
}

// Display returns the human-readable name used in tables and toasts.
func (t Type) Display() string {
	switch t {
	case TypeSingle:
		return "Single Digit"
	case TypeJodi:
		return "Jodi"
	case TypeSinglePanna:
		return "Single Panna"
	case TypeDoublePanna:
		return "Double Panna"
	case TypeTriplePanna:
		return "Triple Panna"
	case TypeHalfSangamOpen:
		return "Half Sangam (Open)"
	case TypeHalfSangamClose:
		return "Half Sangam (Close)"
	case TypeFullSangam:
		return "Full Sangam"
	default:
		return string(t)
	}
}
