package betform

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/pkg/events"
)

type fakeSubmitter struct {
	calls   []api.BetRequest
	err     error
	release chan struct{} // when non-nil, PlaceBet blocks until closed
}

func (f *fakeSubmitter) PlaceBet(ctx context.Context, req api.BetRequest) (*api.Bet, error) {
	if f.release != nil {
		<-f.release
	}
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Bet{
		GameID:    req.GameID,
		BetType:   req.BetType,
		Session:   req.Session,
		BetNumber: req.BetNumber,
		BetAmount: req.BetAmount,
		Status:    "pending",
	}, nil
}

func testLimits() Limits {
	return Limits{
		MinAmount: decimal.NewFromInt(10),
		MaxAmount: decimal.NewFromInt(10000),
	}
}

func testGame() *api.Game {
	return &api.Game{ID: "g1", Name: "Kalyan", OpenTime: "15:00", CloseTime: "17:00"}
}

func atClock(hhmm string) time.Time {
	tm, _ := time.Parse("15:04", hhmm)
	return time.Date(2025, 6, 1, tm.Hour(), tm.Minute(), 0, 0, time.Local)
}

func TestSubmitHappyPath(t *testing.T) {
	sub := &fakeSubmitter{}
	form := newForm(sub, events.NoopEmitter{}, testLimits())

	placed, err := form.Submit(context.Background(), Input{
		Game:    testGame(),
		TypeTag: "single",
		Session: bet.SessionOpen,
		Number:  "7",
		Amount:  decimal.NewFromInt(50),
		Balance: decimal.NewFromInt(1000),
		Now:     atClock("14:00"),
	})
	require.NoError(t, err)
	require.NotNil(t, placed)

	require.Len(t, sub.calls, 1)
	req := sub.calls[0]
	assert.Equal(t, "g1", req.GameID)
	assert.Equal(t, "single", req.BetType)
	require.NotNil(t, req.Session)
	assert.Equal(t, "open", *req.Session)
	assert.Equal(t, "7", req.BetNumber)
	assert.True(t, req.BetAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, api.GameDate(atClock("14:00")), req.GameDate)

	assert.Equal(t, StateIdle, form.State())
}

func TestSubmitInvalidNeverCallsNetwork(t *testing.T) {
	sub := &fakeSubmitter{}
	form := newForm(sub, events.NoopEmitter{}, testLimits())

	_, err := form.Submit(context.Background(), Input{
		Game:    nil,
		TypeTag: "single",
		Session: bet.SessionOpen,
		Number:  "77",                    // not a single digit
		Amount:  decimal.NewFromInt(5),   // below floor
		Balance: decimal.NewFromInt(100),
		Now:     atClock("14:00"),
	})
	require.Error(t, err)

	errs, ok := err.(bet.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, errs, "game")
	assert.Contains(t, errs, "number")
	assert.Contains(t, errs, "amount")
	assert.Empty(t, sub.calls, "invalid submission must not reach the network")
}

func TestSubmitFullSangam(t *testing.T) {
	sub := &fakeSubmitter{}
	form := newForm(sub, events.NoopEmitter{}, testLimits())

	// undashed 6-digit input, after the open window has shut: full sangam
	// skips the session timing check and sends a null session
	_, err := form.Submit(context.Background(), Input{
		Game:    testGame(),
		TypeTag: "full_sangam",
		Session: bet.SessionOpen,
		Number:  "123456",
		Amount:  decimal.NewFromInt(100),
		Balance: decimal.NewFromInt(1000),
		Now:     atClock("16:00"),
	})
	require.NoError(t, err)

	require.Len(t, sub.calls, 1)
	req := sub.calls[0]
	assert.Equal(t, "fullSangam", req.BetType)
	assert.Nil(t, req.Session)
	assert.Equal(t, "123-456", req.BetNumber)
}

func TestSubmitHalfSangamFollowsSessionToggle(t *testing.T) {
	form := newForm(&fakeSubmitter{}, events.NoopEmitter{}, testLimits())

	typ, _, errs := form.Validate(Input{
		Game:    testGame(),
		TypeTag: "half_sangam",
		Session: bet.SessionClose,
		Number:  "5-123",
		Amount:  decimal.NewFromInt(100),
		Balance: decimal.NewFromInt(1000),
		Now:     atClock("14:00"),
	})
	require.True(t, errs.IsEmpty(), "%v", errs)
	assert.Equal(t, bet.TypeHalfSangamClose, typ)
	assert.Equal(t, "halfSangam", typ.BackendName())
}

func TestValidateTiming(t *testing.T) {
	form := newForm(&fakeSubmitter{}, events.NoopEmitter{}, testLimits())

	in := Input{
		Game:    testGame(), // opens 15:00
		TypeTag: "single",
		Session: bet.SessionOpen,
		Number:  "7",
		Amount:  decimal.NewFromInt(50),
		Balance: decimal.NewFromInt(1000),
		Now:     atClock("15:00"), // open window shuts strictly at openTime
	}
	_, _, errs := form.Validate(in)
	assert.Contains(t, errs, "timing")

	in.Session = bet.SessionClose
	_, _, errs = form.Validate(in)
	assert.True(t, errs.IsEmpty(), "%v", errs)
}

func TestValidateAmountBounds(t *testing.T) {
	form := newForm(&fakeSubmitter{}, events.NoopEmitter{}, testLimits())

	base := Input{
		Game:    testGame(),
		TypeTag: "single",
		Session: bet.SessionOpen,
		Number:  "7",
		Balance: decimal.NewFromInt(500),
		Now:     atClock("14:00"),
	}

	base.Amount = decimal.NewFromInt(10001)
	_, _, errs := form.Validate(base)
	assert.Contains(t, errs["amount"], "maximum")

	base.Amount = decimal.NewFromInt(9)
	_, _, errs = form.Validate(base)
	assert.Contains(t, errs["amount"], "minimum")

	base.Amount = decimal.NewFromInt(600) // above balance
	_, _, errs = form.Validate(base)
	assert.Equal(t, "insufficient balance", errs["amount"])

	base.Amount = decimal.Zero
	_, _, errs = form.Validate(base)
	assert.Contains(t, errs["amount"], "enter")
}

func TestSubmitInFlightGuard(t *testing.T) {
	sub := &fakeSubmitter{release: make(chan struct{})}
	form := newForm(sub, events.NoopEmitter{}, testLimits())

	in := Input{
		Game:    testGame(),
		TypeTag: "single",
		Session: bet.SessionOpen,
		Number:  "7",
		Amount:  decimal.NewFromInt(50),
		Balance: decimal.NewFromInt(1000),
		Now:     atClock("14:00"),
	}

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background(), in)
		done <- err
	}()

	// wait until the first submit is holding the guard
	require.Eventually(t, func() bool {
		return form.State() != StateIdle
	}, time.Second, 5*time.Millisecond)

	_, err := form.Submit(context.Background(), in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")

	close(sub.release)
	require.NoError(t, <-done)
	assert.Len(t, sub.calls, 1)
}
