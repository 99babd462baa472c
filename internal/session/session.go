// Package session owns the client-side persisted state: the auth token,
// the install-prompt dismissal stamp and a cached rate table. The token has
// an explicit lifecycle (set at login, cleared at logout) instead of a
// mutable global slot.
package session

import (
	"errors"
	"time"

	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/pkg/kvstore"
)

const (
	keyToken            = "auth_token"
	keyInstallDismissed = "install_prompt_dismissed_at"
	keyCachedRates      = "cached_game_rates"

	// InstallPromptSuppression is how long a dismissed install prompt
	// stays hidden.
	InstallPromptSuppression = 24 * time.Hour
)

var ErrNotLoggedIn = errors.New("not logged in")

type Store struct {
	kv kvstore.Store
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Token implements api.TokenSource. An absent token yields "" so public
// endpoints still work before login.
func (s *Store) Token() (string, error) {
	token, err := s.kv.Get(keyToken)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

func (s *Store) SetToken(token string) error {
	return s.kv.Set(keyToken, token)
}

// Clear drops the token at logout or expiry.
func (s *Store) Clear() error {
	return s.kv.Delete(keyToken)
}

func (s *Store) LoggedIn() bool {
	token, err := s.Token()
	return err == nil && token != ""
}

// RequireToken returns the token or ErrNotLoggedIn, for commands that make
// no sense unauthenticated.
func (s *Store) RequireToken() (string, error) {
	token, err := s.Token()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// DismissInstallPrompt records the moment the user waved the PWA install
// banner away.
func (s *Store) DismissInstallPrompt(now time.Time) error {
	return s.kv.SetAny(keyInstallDismissed, now)
}

// InstallPromptSuppressed reports whether the banner is still inside its
// 24-hour suppression window.
func (s *Store) InstallPromptSuppressed(now time.Time) bool {
	var dismissedAt time.Time
	found, err := s.kv.GetAny(keyInstallDismissed, &dismissedAt)
	if err != nil || !found {
		return false
	}
	return now.Sub(dismissedAt) < InstallPromptSuppression
}

type cachedRates struct {
	Rates     bet.RateTable `json:"rates"`
	FetchedAt time.Time     `json:"fetchedAt"`
}

// CacheRates keeps the last good rate table so payout estimates survive a
// failed public content fetch.
func (s *Store) CacheRates(rates bet.RateTable, fetchedAt time.Time) error {
	return s.kv.SetAny(keyCachedRates, cachedRates{Rates: rates, FetchedAt: fetchedAt})
}

func (s *Store) CachedRates() (bet.RateTable, time.Time, bool) {
	var cached cachedRates
	found, err := s.kv.GetAny(keyCachedRates, &cached)
	if err != nil || !found {
		return nil, time.Time{}, false
	}
	return cached.Rates, cached.FetchedAt, true
}
