// Package betform is the submit-time gate between user input and the bet
// endpoint: it composes number validation, amount bounds and the session
// window into one pass, and only a clean pass produces a network call.
package betform

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/pkg/events"
	"github.com/matkahub/matka-client/pkg/logger"
)

// State is the submission lifecycle. There is no automatic retry; a failed
// submission returns to idle and the user resubmits.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// Limits is the global stake floor/ceiling, from configuration.
type Limits struct {
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal
}

// Input is everything the form knows at submit time.
type Input struct {
	Game    *api.Game
	TypeTag string // client bet-type tag; generic "half_sangam" allowed
	Session bet.Session
	Number  string
	Amount  decimal.Decimal
	Balance decimal.Decimal
	Now     time.Time
}

type submitter interface {
	PlaceBet(ctx context.Context, req api.BetRequest) (*api.Bet, error)
}

type Form struct {
	client  submitter
	emitter events.Emitter
	limits  Limits

	mu         sync.Mutex
	state      State
	submitting bool
}

func New(client *api.Client, emitter events.Emitter, limits Limits) *Form {
	return newForm(client, emitter, limits)
}

func newForm(client submitter, emitter events.Emitter, limits Limits) *Form {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Form{
		client:  client,
		emitter: emitter,
		limits:  limits,
		state:   StateIdle,
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Validate runs the whole gate and returns the resolved type, the
// normalized number, and every collected message. It never touches the
// network.
func (f *Form) Validate(in Input) (bet.Type, string, bet.FieldErrors) {
	errs := bet.FieldErrors{}

	if in.Game == nil {
		errs["game"] = "select a game first"
	}

	typ, ok := bet.ParseType(in.TypeTag)
	if !ok {
		errs["number"] = "unknown bet type " + in.TypeTag
		return "", "", errs
	}
	// the generic half-sangam tag follows the selected session toggle
	if typ.IsHalfSangam() {
		typ = bet.HalfSangam(in.Session)
	}

	number := bet.NormalizeNumber(typ, in.Number)
	if err := bet.ValidateNumber(typ, number); err != nil {
		errs["number"] = err.Error()
	}

	switch {
	case in.Amount.Sign() <= 0:
		errs["amount"] = "enter a bet amount"
	case in.Amount.LessThan(f.limits.MinAmount):
		errs["amount"] = "minimum bet amount is " + f.limits.MinAmount.StringFixed(0)
	case in.Amount.GreaterThan(f.limits.MaxAmount):
		errs["amount"] = "maximum bet amount is " + f.limits.MaxAmount.StringFixed(0)
	case in.Amount.GreaterThan(in.Balance):
		errs["amount"] = "insufficient balance"
	}

	// full sangam bypasses session selection; the games list gates it
	if typ != bet.TypeFullSangam && in.Game != nil {
		if !in.Game.Window().CanBet(in.Session, in.Now) {
			errs["timing"] = "betting is closed for the " + string(in.Session) + " session"
		}
	}

	return typ, number, errs
}

// Submit runs Validate and, on a clean pass, posts the bet. Overlapping
// submits are rejected by a boolean in-flight guard, not a queue.
func (f *Form) Submit(ctx context.Context, in Input) (*api.Bet, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, bet.FieldErrors{"amount": "a submission is already in progress"}
	}
	f.submitting = true
	f.state = StateValidating
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.state = StateIdle
		f.mu.Unlock()
	}()

	typ, number, errs := f.Validate(in)
	if !errs.IsEmpty() {
		return nil, errs
	}

	var session *string
	if typ != bet.TypeFullSangam {
		s := string(in.Session)
		session = &s
	}

	req := api.BetRequest{
		GameID:    in.Game.ID,
		BetType:   typ.BackendName(),
		Session:   session,
		BetNumber: number,
		BetAmount: in.Amount,
		GameDate:  api.GameDate(in.Now),
	}

	f.setState(StateSubmitting)
	placed, err := f.client.PlaceBet(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info("Bet placed", "game", in.Game.Name, "type", typ.Display(), "number", number, "amount", in.Amount)
	_ = f.emitter.EmitBetPlaced(in.Game.Name, placed)
	return placed, nil
}
