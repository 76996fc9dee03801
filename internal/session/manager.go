package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/homestylefoods/storefront-backend/pkg/auth"
	"github.com/homestylefoods/storefront-backend/pkg/config"
	"github.com/homestylefoods/storefront-backend/pkg/logger"
)

// Handle pairs a loaded session with its store key for later saves.
type Handle struct {
	ID      string
	Session Session

	isNew bool
}

// IsNew reports whether the session was created on this request.
func (h *Handle) IsNew() bool {
	return h.isNew
}

// Manager resolves the visitor cookie into a session and writes it back.
type Manager struct {
	cfg   config.SessionConfig
	store Store
	logg  *logger.Logger
}

// NewManager validates dependencies and returns a session manager.
func NewManager(cfg config.SessionConfig, store Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &Manager{cfg: cfg, store: store, logg: logg}, nil
}

// Resolve loads the session named by the request cookie, or starts a fresh
// one when the cookie is absent, invalid or expired.
func (m *Manager) Resolve(r *http.Request) *Handle {
	ctx := r.Context()

	cookie, err := r.Cookie(m.cfg.CookieName)
	if err == nil && cookie.Value != "" {
		sessionID, parseErr := auth.ParseSessionToken(m.cfg, cookie.Value)
		if parseErr == nil {
			sess, loadErr := m.store.Get(ctx, sessionID)
			if loadErr == nil {
				return &Handle{ID: sessionID, Session: sess}
			}
			if !errors.Is(loadErr, ErrNotFound) {
				m.logg.Warn(ctx, "session load failed, starting fresh")
			}
		}
	}

	return &Handle{ID: auth.NewSessionID(), isNew: true}
}

// Save persists the session and, for new sessions, sets the signed cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, handle *Handle) error {
	if handle == nil {
		return errors.New("session handle is required")
	}

	if err := m.store.Set(ctx, handle.ID, handle.Session); err != nil {
		return err
	}

	if handle.isNew {
		token, err := auth.MintSessionToken(m.cfg, time.Now().UTC(), handle.ID)
		if err != nil {
			return err
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.cfg.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(m.cfg.TTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		handle.isNew = false
	}

	return nil
}

// Destroy removes the stored record and expires the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, handle *Handle) error {
	if handle == nil {
		return errors.New("session handle is required")
	}

	if err := m.store.Del(ctx, handle.ID); err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
