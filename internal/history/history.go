// Package history shapes server-fetched bet listings for display: filter,
// sort, paginate. The server owns the data; everything here is pure.
package history

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matkahub/matka-client/internal/api"
)

// Filter narrows a fetched bet list client-side. Zero fields match
// everything.
type Filter struct {
	GameID  string
	BetType string // server vocabulary
	Session string
	Status  string // pending | won | lost
	From    time.Time
	To      time.Time
}

func (f Filter) matches(b api.Bet) bool {
	if f.GameID != "" && b.GameID != f.GameID {
		return false
	}
	if f.BetType != "" && b.BetType != f.BetType {
		return false
	}
	if f.Session != "" {
		if b.Session == nil || *b.Session != f.Session {
			return false
		}
	}
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && b.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && b.CreatedAt.After(f.To) {
		return false
	}
	return true
}

// Apply filters and sorts newest-first.
func Apply(bets []api.Bet, f Filter) []api.Bet {
	out := make([]api.Bet, 0, len(bets))
	for _, b := range bets {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Paginate slices items into 1-based pages. Out-of-range pages come back
// empty rather than failing; the view just renders nothing.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// TotalStaked sums the stakes of bets.
func TotalStaked(bets []api.Bet) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bets {
		sum = sum.Add(b.BetAmount)
	}
	return sum
}

// TotalWon sums the win amounts of settled winning bets.
func TotalWon(bets []api.Bet) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bets {
		if b.Status == "won" {
			sum = sum.Add(b.WinAmount)
		}
	}
	return sum
}
