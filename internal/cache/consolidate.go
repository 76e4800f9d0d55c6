package cache

import (
	"errors"
	"fmt"

	"github.com/chanops/stationctl/internal/station"
)

// ErrNoStations is returned when neither store holds any records.
// Callers should point the operator at the cache command, not retry.
var ErrNoStations = errors.New("no station data available — run 'stationctl cache' first")

// Token is the freshness token: the store timestamps (unix nanos) the
// combined view was last built from. The zero Token never matches and
// so always forces a rebuild.
type Token struct {
	Combined int64
	Base     int64
	User     int64
}

// TokenStore persists the freshness token between runs.
type TokenStore interface {
	Token() Token
	SetToken(Token) error
}

// Resolve returns the path of the store that should answer queries.
// With only one non-empty store it is returned directly; with two, the
// combined view is rebuilt unless it is still fresh. Base and user
// stores are never mutated.
func (m *Manager) Resolve() (string, error) {
	base, err := station.Load(m.BasePath())
	if err != nil {
		return "", err
	}
	user, err := station.Load(m.UserPath())
	if err != nil {
		return "", err
	}

	switch {
	case len(base) == 0 && len(user) == 0:
		return "", ErrNoStations
	case len(user) == 0:
		return m.BasePath(), nil
	case len(base) == 0:
		return m.UserPath(), nil
	}

	if m.fresh() {
		return m.CombinedPath(), nil
	}

	// User records override base records with the same station ID.
	combined := station.Merge(base, user)
	if err := station.Save(m.CombinedPath(), combined); err != nil {
		return "", fmt.Errorf("writing combined view: %w", err)
	}

	if m.tokens != nil {
		tok := Token{
			Combined: mtime(m.CombinedPath()),
			Base:     mtime(m.BasePath()),
			User:     mtime(m.UserPath()),
		}
		if err := m.tokens.SetToken(tok); err != nil {
			return "", fmt.Errorf("saving freshness token: %w", err)
		}
	}
	return m.CombinedPath(), nil
}

// Invalidate clears the freshness token so the next Resolve rebuilds
// the combined view.
func (m *Manager) Invalidate() error {
	if m.tokens == nil {
		return nil
	}
	return m.tokens.SetToken(Token{})
}

// fresh reports whether the on-disk combined view can be trusted:
// either it is newer than both source stores, or the persisted token
// matches the current store timestamps exactly.
func (m *Manager) fresh() bool {
	combined := mtime(m.CombinedPath())
	if combined == 0 {
		return false
	}
	baseT := mtime(m.BasePath())
	userT := mtime(m.UserPath())
	if combined > baseT && combined > userT {
		return true
	}
	if m.tokens == nil {
		return false
	}
	tok := m.tokens.Token()
	return tok.Base != 0 && tok.Base == baseT && tok.User == userT
}
