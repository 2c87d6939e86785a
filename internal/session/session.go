// Package session owns the authenticated session: the persisted token and
// profile snapshot, and the auth endpoints that produce them.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/localstore"
	"github.com/mediguide/storefront-client/pkg/logger"
	"go.uber.org/multierr"
)

type slotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Profile is the locally persisted user snapshot.
type Profile struct {
	ID                     int64  `json:"id"`
	Username               string `json:"username"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone,omitempty"`
	Address                string `json:"address,omitempty"`
	City                   string `json:"city,omitempty"`
	State                  string `json:"state,omitempty"`
	ZipCode                string `json:"zip_code,omitempty"`
	NewsletterSubscription bool   `json:"newsletter_subscription"`
}

// Tokens reads the persisted session credential. It satisfies the api
// package's token source.
type Tokens struct {
	slots slotStore
}

func NewTokens(slots slotStore) *Tokens {
	return &Tokens{slots: slots}
}

// Token returns the stored credential, or empty when signed out. Read
// failures yield an anonymous session rather than an error.
func (t *Tokens) Token(ctx context.Context) string {
	raw, ok, err := t.slots.Get(ctx, localstore.KeyToken)
	if err != nil || !ok {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// Manager performs the auth flows against the storefront API and keeps the
// token and profile slots in sync.
type Manager struct {
	client *api.Client
	slots  slotStore
	log    *logger.Logger
}

func NewManager(client *api.Client, slots slotStore, log *logger.Logger) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("api client required")
	}
	if slots == nil {
		return nil, fmt.Errorf("slot store required")
	}
	return &Manager{client: client, slots: slots, log: log}, nil
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Login exchanges credentials for a token and persists the session.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*Profile, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	var resp authResponse
	if err := m.client.Post(ctx, "/api/auth/login/", creds, &resp); err != nil {
		return nil, err
	}
	if err := m.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	if m.log != nil {
		m.log.Info(m.log.WithUserID(ctx, resp.User.Username), "signed in")
	}
	return &resp.User, nil
}

// Register creates an account and persists the resulting session.
func (m *Manager) Register(ctx context.Context, input RegisterInput) (*Profile, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username, email and password are required")
	}

	var resp authResponse
	if err := m.client.Post(ctx, "/api/auth/register/", input, &resp); err != nil {
		return nil, err
	}
	if err := m.persistSession(ctx, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout tells the server to revoke the token, then clears every
// session-scoped slot. Slot clearing proceeds even when the server call
// fails; errors are aggregated.
func (m *Manager) Logout(ctx context.Context) error {
	var errs error
	if err := m.client.Post(ctx, "/api/auth/logout/", struct{}{}, nil); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, key := range []string{localstore.KeyToken, localstore.KeyUser, localstore.KeyCart} {
		if err := m.slots.Delete(ctx, key); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// ChangePassword updates the account password using the current session.
func (m *Manager) ChangePassword(ctx context.Context, current, updated string) error {
	if current == "" || updated == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "current and new passwords are required")
	}
	payload := map[string]string{
		"current_password": current,
		"new_password":     updated,
	}
	return m.client.Post(ctx, "/api/auth/change-password/", payload, nil)
}

// CurrentUser returns the persisted profile snapshot, if any. A corrupt
// snapshot reads as signed-out.
func (m *Manager) CurrentUser(ctx context.Context) (*Profile, bool) {
	raw, ok, err := m.slots.Get(ctx, localstore.KeyUser)
	if err != nil || !ok {
		return nil, false
	}
	var profile Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		if m.log != nil {
			m.log.Warn(ctx, fmt.Sprintf("persisted profile is malformed: %v", err))
		}
		return nil, false
	}
	return &profile, true
}

func (m *Manager) persistSession(ctx context.Context, resp authResponse) error {
	if resp.Token == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "auth response missing token")
	}
	if err := m.slots.Put(ctx, localstore.KeyToken, []byte(resp.Token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session token")
	}
	profile, err := json.Marshal(resp.User)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode profile snapshot")
	}
	if err := m.slots.Put(ctx, localstore.KeyUser, profile); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist profile snapshot")
	}
	return nil
}
