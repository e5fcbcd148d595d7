// SPDX-License-Identifier: MIT

package theme

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ManuGH/folio/internal/prefs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Theme{"dark": Dark, "Light": Light, " DARK ": Dark} {
		got, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "blue", "no-preference"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidTheme, in)
	}
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, Icon{Class: "fas fa-sun", Color: "#f59e0b"}, IconFor(Dark))
	assert.Equal(t, Icon{Class: "fas fa-moon", Color: "#0f172a"}, IconFor(Light))
}

func TestFromHint(t *testing.T) {
	got, ok := FromHint(`"light"`)
	assert.True(t, ok)
	assert.Equal(t, Light, got)

	_, ok = FromHint("")
	assert.False(t, ok)
}

func newManager(t *testing.T) (*Manager, prefs.Store) {
	t.Helper()
	store := prefs.NewMemoryStore()
	m, err := NewManager(store, Dark)
	require.NoError(t, err)
	return m, store
}

func TestNewManager_RejectsInvalidDefault(t *testing.T) {
	_, err := NewManager(prefs.NewMemoryStore(), Theme("sepia"))
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestManager_CurrentResolution(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	assert.Equal(t, Dark, m.Current(ctx, "v1", ""))
	assert.Equal(t, Light, m.Current(ctx, "v1", "light"))

	require.NoError(t, store.Set(ctx, "v1", prefs.KeyTheme, "dark"))
	assert.Equal(t, Dark, m.Current(ctx, "v1", "light"), "saved choice wins over the hint")

	require.NoError(t, store.Set(ctx, "v2", prefs.KeyTheme, "garbage"))
	assert.Equal(t, Light, m.Current(ctx, "v2", "light"))
}

func TestManager_ToggleBroadcasts(t *testing.T) {
	ctx := context.Background()
	m, store := newManager(t)

	ch := make(chan Change, 2)
	m.Subscribe(ch)
	full := make(chan Change) // unbuffered and never read
	m.Subscribe(full)

	got, err := m.Toggle(ctx, "v1", "")
	require.NoError(t, err)
	assert.Equal(t, Light, got)
	assert.Equal(t, Change{Visitor: "v1", Theme: Light}, <-ch)

	raw, err := store.Get(ctx, "v1", prefs.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", raw)

	got, err = m.Toggle(ctx, "v1", "")
	require.NoError(t, err)
	assert.Equal(t, Dark, got)
	assert.Equal(t, Change{Visitor: "v1", Theme: Dark}, <-ch)
}

func TestManager_SetDoesNotBroadcast(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	ch := make(chan Change, 1)
	m.Subscribe(ch)

	require.NoError(t, m.Set(ctx, "v1", Light))
	assert.Equal(t, Light, m.Current(ctx, "v1", ""))
	assert.Len(t, ch, 0)

	assert.ErrorIs(t, m.Set(ctx, "v1", Theme("blue")), ErrInvalidTheme)
	assert.Equal(t, Light, m.Current(ctx, "v1", ""))
}

type failingStore struct{ prefs.Store }

func (failingStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string, string) error {
	return errors.New("disk on fire")
}

func TestManager_StoreFailures(t *testing.T) {
	ctx := context.Background()
	m, err := NewManager(failingStore{}, Light)
	require.NoError(t, err)

	assert.Equal(t, Light, m.Current(ctx, "v1", ""))
	_, err = m.Toggle(ctx, "v1", "")
	assert.Error(t, err)
	assert.Error(t, m.Set(ctx, "", Dark))
}

func TestVisitorID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := VisitorID(rec, req, "folio_visitor")
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, id, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// an existing cookie is reused
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "folio_visitor", Value: id})
	assert.Equal(t, id, VisitorID(rec, req, "folio_visitor"))
	assert.Empty(t, rec.Result().Cookies())

	// a tampered cookie is replaced
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "folio_visitor", Value: "../../etc"})
	assert.NotEqual(t, "../../etc", VisitorID(rec, req, "folio_visitor"))
}
