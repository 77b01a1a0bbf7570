package pages

// ID identifies a renderable page unit
type ID string

// Page identifiers served by the navigation table
const (
	LoginID          ID = "login"
	RegisterID       ID = "register"
	AdminDashboardID ID = "admin-dashboard"
	AdminViewUserID  ID = "admin-view-user"
	AdminSearchID    ID = "admin-search"
	AdminSummaryID   ID = "admin-summary"
	UserDashboardID  ID = "user-dashboard"
	UserParkingID    ID = "user-book-parking"
	UserSummaryID    ID = "user-summary"
	PaymentID        ID = "dummy-payment"
)

// Page titles
var titles = map[ID]string{
	LoginID:          "Login",
	RegisterID:       "Register",
	AdminDashboardID: "Admin Dashboard",
	AdminViewUserID:  "Registered Users",
	AdminSearchID:    "Search Parking",
	AdminSummaryID:   "Admin Summary",
	UserDashboardID:  "User Dashboard",
	UserParkingID:    "Book Parking",
	UserSummaryID:    "User Summary",
	PaymentID:        "Payment",
}

// Page is the resolved render unit handed to the host
type Page struct {
	ID      ID     `json:"page"`
	Title   string `json:"title"`
	Section string `json:"section"`
}

// Factory builds a page on demand
type Factory func() (Page, error)

// Title returns the display title for id, falling back to the id itself
func Title(id ID) string {
	if title, ok := titles[id]; ok {
		return title
	}
	return string(id)
}

// Static returns a factory producing a page with the default title for id
func Static(id ID, section string) Factory {
	return func() (Page, error) {
		return Page{ID: id, Title: Title(id), Section: section}, nil
	}
}
