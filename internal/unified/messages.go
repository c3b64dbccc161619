package unified

import (
	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/dashboard"
	"github.com/blackwell-systems/libdesk/internal/session"
	"github.com/blackwell-systems/libdesk/internal/state"
)

// NavigateMsg is emitted when a view wants to navigate to another view
type NavigateMsg struct {
	Target View
}

// QuitAppMsg is emitted when the entire application should quit
type QuitAppMsg struct{}

// storeChangedMsg carries the newest store snapshot to the model.
type storeChangedMsg struct {
	snap state.Snapshot
}

// Requests from child views, carried out by the Model through the service.
type (
	refreshMsg    struct{ target View }
	logoutMsg     struct{}
	borrowMsg     struct{ bookID int64 }
	returnMsg     struct{ borrowingID int64 }
	deleteBookMsg struct{ id int64 }
	editBookMsg   struct{ book *catalog.Book } // nil adds a new book
	saveBookMsg   struct {
		id int64 // 0 creates
		in catalog.BookInput
	}
)

// Results of service calls.
type (
	loginDoneMsg struct {
		sess session.Session
		err  error
	}
	dashboardDoneMsg struct {
		d   dashboard.Dashboard
		err error
	}
	opDoneMsg struct {
		status string
		err    error
		next   View // view to show on success; empty stays put
	}
	loggedOutMsg struct{ err error }
)
