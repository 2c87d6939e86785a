package session

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/localstore"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type fakeSlots struct {
	values map[string][]byte
}

func newFakeSlots() *fakeSlots { return &fakeSlots{values: map[string][]byte{}} }

func (f *fakeSlots) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := f.values[key]
	return value, ok, nil
}

func (f *fakeSlots) Put(_ context.Context, key string, value []byte) error {
	f.values[key] = value
	return nil
}

func (f *fakeSlots) Delete(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func newManager(t *testing.T, slots *fakeSlots, rt roundTripFunc) *Manager {
	t.Helper()
	client, err := api.NewClient("http://store.test",
		api.WithHTTPClient(&http.Client{Transport: rt}),
		api.WithTokenSource(NewTokens(slots)),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	manager, err := NewManager(client, slots, nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestLoginPersistsTokenAndProfile(t *testing.T) {
	slots := newFakeSlots()
	manager := newManager(t, slots, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/auth/login/" {
			t.Fatalf("unexpected path %q", req.URL.Path)
		}
		return jsonResponse(http.StatusOK,
			`{"token":"tok-1","user":{"id":7,"username":"ana","email":"ana@example.com"}}`), nil
	})

	profile, err := manager.Login(context.Background(), Credentials{Username: "ana", Password: "pw"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if profile.Username != "ana" {
		t.Fatalf("unexpected profile %+v", profile)
	}
	if string(slots.values[localstore.KeyToken]) != "tok-1" {
		t.Fatalf("token not persisted")
	}

	tokens := NewTokens(slots)
	if got := tokens.Token(context.Background()); got != "tok-1" {
		t.Fatalf("token source returned %q", got)
	}

	current, ok := manager.CurrentUser(context.Background())
	if !ok || current.ID != 7 {
		t.Fatalf("current user not restored: %+v ok=%v", current, ok)
	}
}

func TestLoginRejectsBadCredentialsLocally(t *testing.T) {
	manager := newManager(t, newFakeSlots(), func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	_, err := manager.Login(context.Background(), Credentials{Username: "ana"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginSurfacesUnauthorized(t *testing.T) {
	slots := newFakeSlots()
	manager := newManager(t, slots, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"detail":"invalid credentials"}`), nil
	})

	_, err := manager.Login(context.Background(), Credentials{Username: "ana", Password: "bad"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, ok := slots.values[localstore.KeyToken]; ok {
		t.Fatalf("failed login must not persist a token")
	}
}

func TestLogoutClearsSessionSlots(t *testing.T) {
	slots := newFakeSlots()
	slots.values[localstore.KeyToken] = []byte("tok-1")
	slots.values[localstore.KeyUser] = []byte(`{"id":7}`)
	slots.values[localstore.KeyCart] = []byte(`[{"id":1,"quantity":2}]`)

	manager := newManager(t, slots, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if err := manager.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	for _, key := range []string{localstore.KeyToken, localstore.KeyUser, localstore.KeyCart} {
		if _, ok := slots.values[key]; ok {
			t.Fatalf("slot %q should be cleared", key)
		}
	}
}

func TestLogoutClearsSlotsEvenWhenServerFails(t *testing.T) {
	slots := newFakeSlots()
	slots.values[localstore.KeyToken] = []byte("tok-1")

	manager := newManager(t, slots, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `{}`), nil
	})

	err := manager.Logout(context.Background())
	if err == nil {
		t.Fatalf("expected aggregated error from server failure")
	}
	if _, ok := slots.values[localstore.KeyToken]; ok {
		t.Fatalf("token must be cleared despite server failure")
	}
}

func TestCurrentUserWithCorruptSnapshot(t *testing.T) {
	slots := newFakeSlots()
	slots.values[localstore.KeyUser] = []byte("{broken")

	manager := newManager(t, slots, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	if _, ok := manager.CurrentUser(context.Background()); ok {
		t.Fatalf("corrupt profile must read as signed out")
	}
}
