package navigator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkd-dev/parkd/internal/guard"
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/roles"
	"github.com/parkd-dev/parkd/internal/routes"
	"github.com/parkd-dev/parkd/internal/session"
)

type memoryRecorder struct {
	records []Record
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, rec Record) error {
	m.records = append(m.records, rec)
	return m.err
}

func newNavigator(t *testing.T, opts ...Option) (*Navigator, *pages.Registry) {
	t.Helper()
	table := routes.Default()
	reg := pages.NewRegistry()
	require.NoError(t, RegisterPages(reg, table))
	return New(table, reg, opts...), reg
}

func TestNavigate_AllowedPage(t *testing.T) {
	nav, _ := newNavigator(t)
	s := session.Session{Username: "alice", Role: roles.Admin}

	out, err := nav.Navigate(context.Background(), "/admin/search", "/admin/dashboard", s)
	require.NoError(t, err)
	assert.Equal(t, "/admin/search", out.Path)
	assert.Equal(t, pages.AdminSearchID, out.Page.ID)
	assert.Equal(t, "admin", out.Page.Section)
	assert.False(t, out.Redirected)
	assert.Equal(t, []string{"/admin/search"}, out.Trail)
}

func TestNavigate_RootRedirectsToLogin(t *testing.T) {
	nav, _ := newNavigator(t)

	out, err := nav.Navigate(context.Background(), "/", "", session.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, "/login", out.Path)
	assert.True(t, out.Redirected)
	assert.Equal(t, []string{"/", "/login"}, out.Trail)
}

func TestNavigate_GuardRedirect(t *testing.T) {
	rec := &memoryRecorder{}
	nav, _ := newNavigator(t, WithRecorder(rec))
	s := session.Session{Username: "bob", Role: roles.User}

	out, err := nav.Navigate(context.Background(), "/admin/dashboard", "/user/dashboard", s)
	require.NoError(t, err)
	assert.Equal(t, "/login", out.Path)
	assert.Equal(t, pages.LoginID, out.Page.ID)
	assert.True(t, out.Redirected)
	assert.Equal(t, []string{"/admin/dashboard", "/login"}, out.Trail)

	require.Len(t, rec.records, 2)
	assert.Equal(t, "/admin/dashboard", rec.records[0].Target)
	assert.Equal(t, "/user/dashboard", rec.records[0].From)
	assert.Equal(t, guard.Redirect, rec.records[0].Decision.Action)
	assert.Equal(t, guard.Continue, rec.records[1].Decision.Action)
}

func TestNavigate_RecorderFailureDoesNotChangeOutcome(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	nav, _ := newNavigator(t, WithRecorder(rec))

	out, err := nav.Navigate(context.Background(), "/register", "/login", session.Anonymous)
	require.NoError(t, err)
	assert.Equal(t, "/register", out.Path)
}

func TestNavigate_LazyPaymentPage(t *testing.T) {
	nav, reg := newNavigator(t)
	assert.False(t, reg.Resolved(pages.PaymentID))

	out, err := nav.Navigate(context.Background(), "/payment", "/user/parking", session.Session{Username: "bob", Role: roles.User})
	require.NoError(t, err)
	assert.Equal(t, pages.PaymentID, out.Page.ID)
	assert.True(t, reg.Resolved(pages.PaymentID))
}

func TestNavigate_UnknownPath(t *testing.T) {
	nav, _ := newNavigator(t)

	_, err := nav.Navigate(context.Background(), "/nowhere", "/login", session.Anonymous)
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestNavigate_RedirectLoop(t *testing.T) {
	table, err := routes.New(
		routes.Descriptor{Path: "/login", Page: pages.LoginID},
		routes.Descriptor{Path: "/a", RedirectTo: "/b"},
		routes.Descriptor{Path: "/b", RedirectTo: "/a"},
	)
	require.NoError(t, err)

	reg := pages.NewRegistry()
	require.NoError(t, RegisterPages(reg, table))

	_, err = New(table, reg).Navigate(context.Background(), "/a", "", session.Anonymous)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
}

func TestNavigate_MissingPage(t *testing.T) {
	nav := New(routes.Default(), pages.NewRegistry())

	_, err := nav.Navigate(context.Background(), "/login", "", session.Anonymous)
	assert.ErrorIs(t, err, pages.ErrUnknownPage)
}

func TestRegisterPages_Sections(t *testing.T) {
	table, err := routes.New(
		routes.Descriptor{Path: "/login", Page: pages.LoginID},
		routes.Descriptor{Path: "/account", Page: "account", Access: &routes.Access{}},
		routes.Descriptor{Path: "/user/summary", Page: pages.UserSummaryID, Access: &routes.Access{Role: roles.User}},
	)
	require.NoError(t, err)

	reg := pages.NewRegistry()
	require.NoError(t, RegisterPages(reg, table))

	for id, section := range map[pages.ID]string{
		pages.LoginID:       "public",
		"account":           "account",
		pages.UserSummaryID: "user",
	} {
		page, err := reg.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, section, page.Section, id)
	}
}
