// Package auth adapts Supabase GoTrue into the session handles the rest of
// the application works with. Every sign-in builds its own Supabase client
// so one user's token can never leak into another user's queries.
package auth

import (
	"fmt"

	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/gasto_efectivo/internal/config"
)

// Error reports a credential operation rejected by the identity provider.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Session is a per-user handle on the backend. Its client carries the
// user's access token, so every table query runs under that user's
// row-level security. Dispose of it with SignOut.
type Session struct {
	client    *supabase.Client
	user      types.User
	confirmed bool
}

func newClient(cfg *config.Config) (*supabase.Client, error) {
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, &supabase.ClientOptions{})
}

// SignIn authenticates with email and password and returns a live session.
func SignIn(cfg *config.Config, email, password string) (*Session, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, &Error{Op: "sign in", Err: err}
	}
	session, err := client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, &Error{Op: "sign in", Err: err}
	}
	return &Session{client: client, user: session.User, confirmed: true}, nil
}

// SignUp registers a new account. When email confirmation is enabled on
// the project the returned session is not confirmed and cannot query the
// store yet; the user signs in after confirming.
func SignUp(cfg *config.Config, email, password string) (*Session, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, &Error{Op: "sign up", Err: err}
	}
	resp, err := client.Auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, &Error{Op: "sign up", Err: err}
	}

	s := &Session{client: client, user: resp.User}
	if resp.Session.AccessToken != "" {
		client.UpdateAuthSession(resp.Session)
		s.user = resp.Session.User
		s.confirmed = true
	}
	return s, nil
}

// SignOut revokes the session's token. Unconfirmed sessions have no token
// to revoke.
func (s *Session) SignOut() error {
	if !s.confirmed {
		return nil
	}
	if err := s.client.Auth.Logout(); err != nil {
		return &Error{Op: "sign out", Err: err}
	}
	return nil
}

// Client exposes the session-scoped Supabase client for data access.
func (s *Session) Client() *supabase.Client {
	return s.client
}

func (s *Session) Email() string {
	return s.user.Email
}

func (s *Session) UserID() string {
	return s.user.ID.String()
}

// Confirmed reports whether the session holds a usable access token.
func (s *Session) Confirmed() bool {
	return s.confirmed
}
