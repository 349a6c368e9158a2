package domain

import "time"

type Status int

const (
	StatusLoggedOut Status = iota
	StatusAuthenticating
	StatusLoggedIn
)

type Credentials struct {
	Email    string
	Password string
}

// Session is the authenticated identity. Token and UserID are always
// set together; a zero Session means logged out. A zero ExpiresAt means
// the session does not expire.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type State struct {
	Status  Status
	Session Session

	// Epoch increments whenever the signed-in identity changes (sign-in,
	// sign-out, expiry). Results of asynchronous work carry the epoch they
	// were issued under so the store can discard ones from a stale context.
	Epoch uint64

	// Attempt identifies the in-flight sign-in, empty otherwise.
	Attempt string
}

func (s State) SignedIn() bool {
	return s.Status == StatusLoggedIn
}

func (s State) UserID() string {
	return s.Session.UserID
}

func (s State) Expired(now time.Time) bool {
	return s.Status == StatusLoggedIn && s.Session.Expired(now)
}
