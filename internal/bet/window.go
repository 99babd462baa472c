package bet

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var hhmmRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// MinutesOfDay converts an "HH:MM" 24-hour string to minutes since
// midnight.
func MinutesOfDay(hhmm string) (int, error) {
	m := hhmmRe.FindStringSubmatch(hhmm)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	return hours*60 + minutes, nil
}

// IsBettingAllowed is the pure clock half of the session-window rule. Open
// bets are taken strictly before the open time; close bets up to and
// including the close minute. The asymmetry is deliberate: the last-minute
// close bet at exactly closeTime is accepted.
func IsBettingAllowed(openTime, closeTime string, session Session, now time.Time) bool {
	nowMin := now.Hour()*60 + now.Minute()

	switch session {
	case SessionOpen:
		openMin, err := MinutesOfDay(openTime)
		if err != nil {
			return false
		}
		return nowMin < openMin
	case SessionClose:
		closeMin, err := MinutesOfDay(closeTime)
		if err != nil {
			return false
		}
		return nowMin <= closeMin
	default:
		return false
	}
}

// Window carries the per-game fields the availability rules read. It is
// rebuilt from the server's game row on every poll tick; the answer changes
// with wall-clock time without any push from the server.
type Window struct {
	OpenTime  string
	CloseTime string

	// A declared result component closes its session regardless of the
	// clock.
	OpenResultDeclared  bool
	CloseResultDeclared bool

	// Starline games have a single daily result and no open/close split.
	Starline bool
}

// CanBet reports whether a bet may be placed for the given session now.
func (w Window) CanBet(session Session, now time.Time) bool {
	if w.Starline {
		// One window only: strictly before the game's time, until its
		// result lands.
		return !w.OpenResultDeclared && IsBettingAllowed(w.OpenTime, w.CloseTime, SessionOpen, now)
	}

	switch session {
	case SessionOpen:
		if w.OpenResultDeclared {
			return false
		}
	case SessionClose:
		if w.CloseResultDeclared {
			return false
		}
	default:
		return false
	}
	return IsBettingAllowed(w.OpenTime, w.CloseTime, session, now)
}

// CanBetFullSangam reports whether a full sangam may be placed now. Full
// sangam spans both halves of the day, so both sessions must still be open.
func (w Window) CanBetFullSangam(now time.Time) bool {
	if w.Starline {
		return false
	}
	return w.CanBet(SessionOpen, now) && w.CanBet(SessionClose, now)
}
