package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/blackwell-systems/libdesk/internal/catalog"
	"github.com/blackwell-systems/libdesk/internal/session"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type borrowRequest struct {
	BookID int64 `json:"book_id"`
}

// Login exchanges credentials for {message, user, access_token, token_type}.
func (c *Client) Login(ctx context.Context, email, password string) (any, error) {
	return c.do(ctx, http.MethodPost, "/login", nil, "", credentials{Email: email, Password: password})
}

// Register creates an account and signs it in, answering like Login.
func (c *Client) Register(ctx context.Context, reg session.Registration) (any, error) {
	return c.do(ctx, http.MethodPost, "/register", nil, "", reg)
}

// Me returns {user} for the token's owner.
func (c *Client) Me(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodGet, "/me", nil, token, nil)
}

// Logout revokes the token server-side.
func (c *Client) Logout(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodPost, "/logout", nil, token, nil)
}

// Books lists the catalog, filtered server-side when search is non-empty.
func (c *Client) Books(ctx context.Context, token, search string) (any, error) {
	var q url.Values
	if search != "" {
		q = url.Values{"search": {search}}
	}
	return c.do(ctx, http.MethodGet, "/books", q, token, nil)
}

func (c *Client) Book(ctx context.Context, token string, id int64) (any, error) {
	return c.do(ctx, http.MethodGet, "/books/"+itoa(id), nil, token, nil)
}

func (c *Client) CreateBook(ctx context.Context, token string, in catalog.BookInput) (any, error) {
	return c.do(ctx, http.MethodPost, "/books", nil, token, in)
}

func (c *Client) UpdateBook(ctx context.Context, token string, id int64, in catalog.BookInput) (any, error) {
	return c.do(ctx, http.MethodPut, "/books/"+itoa(id), nil, token, in)
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int64) (any, error) {
	return c.do(ctx, http.MethodDelete, "/books/"+itoa(id), nil, token, nil)
}

// Borrowings lists loans visible to the token's owner: all loans for a
// librarian, their own for a member.
func (c *Client) Borrowings(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodGet, "/borrowings", nil, token, nil)
}

func (c *Client) Borrowing(ctx context.Context, token string, id int64) (any, error) {
	return c.do(ctx, http.MethodGet, "/borrowings/"+itoa(id), nil, token, nil)
}

// Borrow checks out bookID to the token's owner.
func (c *Client) Borrow(ctx context.Context, token string, bookID int64) (any, error) {
	return c.do(ctx, http.MethodPost, "/borrowings", nil, token, borrowRequest{BookID: bookID})
}

// Return marks a loan as returned.
func (c *Client) Return(ctx context.Context, token string, id int64) (any, error) {
	return c.do(ctx, http.MethodPatch, "/borrowings/"+itoa(id)+"/return", nil, token, nil)
}

func (c *Client) LibrarianDashboard(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodGet, "/dashboard/librarian", nil, token, nil)
}

func (c *Client) MemberDashboard(ctx context.Context, token string) (any, error) {
	return c.do(ctx, http.MethodGet, "/dashboard/member", nil, token, nil)
}

// Dashboard fetches the dashboard endpoint matching role.
func (c *Client) Dashboard(ctx context.Context, token string, role session.Role) (any, error) {
	if role == session.RoleLibrarian {
		return c.LibrarianDashboard(ctx, token)
	}
	return c.MemberDashboard(ctx, token)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
