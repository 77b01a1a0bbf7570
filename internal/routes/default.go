package routes

import (
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/roles"
)

func requires(role roles.Role) *Access {
	return &Access{Role: role}
}

// DefaultDescriptors is the built-in navigation surface of the booking app
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{Path: "/", RedirectTo: LoginPath},
		{Path: LoginPath, Page: pages.LoginID},
		{Path: "/register", Page: pages.RegisterID},

		// Admin
		{Path: "/admin/dashboard", Page: pages.AdminDashboardID, Access: requires(roles.Admin)},
		{Path: "/admin/view-user", Page: pages.AdminViewUserID, Access: requires(roles.Admin)},
		{Path: "/admin/search", Page: pages.AdminSearchID, Access: requires(roles.Admin)},
		{Path: "/admin/summary", Page: pages.AdminSummaryID, Access: requires(roles.Admin)},

		// User
		{Path: "/user/dashboard", Page: pages.UserDashboardID, Access: requires(roles.User)},
		{Path: "/user/parking", Page: pages.UserParkingID, Access: requires(roles.User)},
		{Path: "/user/summary", Page: pages.UserSummaryID, Access: requires(roles.User)},
		{Path: "/payment", Page: pages.PaymentID, Lazy: true},
	}
}

// Default returns the built-in table
func Default() *Table {
	t, err := New(DefaultDescriptors()...)
	if err != nil {
		panic("routes: invalid default table: " + err.Error())
	}
	return t
}
