package history

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matkahub/matka-client/internal/api"
)

func strPtr(s string) *string { return &s }

func day(d int) time.Time {
	return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)
}

func sampleBets() []api.Bet {
	return []api.Bet{
		{ID: "b1", GameID: "g1", BetType: "single", Session: strPtr("open"), BetAmount: decimal.NewFromInt(50), Status: "pending", CreatedAt: day(1)},
		{ID: "b2", GameID: "g2", BetType: "jodi", Session: strPtr("close"), BetAmount: decimal.NewFromInt(100), WinAmount: decimal.NewFromInt(950), Status: "won", CreatedAt: day(3)},
		{ID: "b3", GameID: "g1", BetType: "fullSangam", Session: nil, BetAmount: decimal.NewFromInt(20), Status: "lost", CreatedAt: day(2)},
	}
}

func TestApplySortsNewestFirst(t *testing.T) {
	got := Apply(sampleBets(), Filter{})
	require.Len(t, got, 3)
	assert.Equal(t, "b2", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)
	assert.Equal(t, "b1", got[2].ID)
}

func TestApplyFilters(t *testing.T) {
	bets := sampleBets()

	got := Apply(bets, Filter{GameID: "g1"})
	require.Len(t, got, 2)

	got = Apply(bets, Filter{BetType: "jodi"})
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)

	got = Apply(bets, Filter{Session: "open"})
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	// nil session never matches a session filter
	got = Apply(bets, Filter{Session: "close"})
	require.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)

	got = Apply(bets, Filter{Status: "won"})
	require.Len(t, got, 1)

	got = Apply(bets, Filter{From: day(2), To: day(3)})
	require.Len(t, got, 2)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 7, p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, p.Items)

	// out-of-range renders empty, not an error
	p = Paginate(items, 4, 3)
	assert.Empty(t, p.Items)

	// defaults for nonsense inputs
	p = Paginate(items, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Len(t, p.Items, 7)
}

func TestTotals(t *testing.T) {
	bets := sampleBets()
	assert.True(t, TotalStaked(bets).Equal(decimal.NewFromInt(170)))
	assert.True(t, TotalWon(bets).Equal(decimal.NewFromInt(950)))
}
