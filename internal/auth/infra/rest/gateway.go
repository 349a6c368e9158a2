package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dwikikusuma/shopfront/internal/auth/domain"
	"github.com/dwikikusuma/shopfront/pkg/fault"
	"github.com/dwikikusuma/shopfront/pkg/rest"
)

// Gateway signs users in against the identity endpoint. Backend error
// codes are translated to human-readable messages here and never reach
// the caller verbatim.
type Gateway struct {
	c      *rest.Client
	apiKey string
	now    func() time.Time
}

func NewGateway(c *rest.Client, apiKey string) *Gateway {
	return &Gateway{c: c, apiKey: apiKey, now: time.Now}
}

// WithClock overrides the expiry baseline, for tests.
func (g *Gateway) WithClock(now func() time.Time) *Gateway {
	g.now = now
	return g
}

type credentialsDTO struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type sessionDTO struct {
	IDToken   string `json:"idToken"`
	LocalID   string `json:"localId"`
	ExpiresIn string `json:"expiresIn"`
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return g.call(ctx, "accounts:signInWithPassword", email, password)
}

func (g *Gateway) SignUp(ctx context.Context, email, password string) (domain.Session, error) {
	return g.call(ctx, "accounts:signUp", email, password)
}

func (g *Gateway) call(ctx context.Context, endpoint, email, password string) (domain.Session, error) {
	path := fmt.Sprintf("/v1/%s?key=%s", endpoint, url.QueryEscape(g.apiKey))
	body := credentialsDTO{Email: email, Password: password, ReturnSecureToken: true}

	var out sessionDTO
	if err := g.c.Do(ctx, http.MethodPost, path, body, &out, ""); err != nil {
		return domain.Session{}, translate(err)
	}
	if out.IDToken == "" || out.LocalID == "" {
		return domain.Session{}, fault.New(fault.KindNetwork, "backend returned an incomplete session")
	}

	session := domain.Session{Token: out.IDToken, UserID: out.LocalID}
	if secs, err := strconv.Atoi(out.ExpiresIn); err == nil && secs > 0 {
		session.ExpiresAt = g.now().Add(time.Duration(secs) * time.Second)
	}
	return session, nil
}

func translate(err error) error {
	switch fault.CodeOf(err) {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return fault.New(fault.KindAuthentication, "email or password is incorrect")
	case "EMAIL_EXISTS":
		return fault.New(fault.KindConflict, "that email is already in use")
	case "USER_DISABLED":
		return fault.New(fault.KindAuthentication, "this account has been disabled")
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return fault.New(fault.KindNetwork, "too many attempts, try again later")
	}
	return err
}
