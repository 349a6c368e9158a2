package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dwikikusuma/shopfront/internal/auth/domain"
	"github.com/dwikikusuma/shopfront/internal/store"
	"github.com/dwikikusuma/shopfront/pkg/fault"
)

var (
	// ErrLoginInFlight: a second sign-in while one is authenticating is
	// rejected, never superseded, so the outcome is deterministic.
	ErrLoginInFlight = fault.New(fault.KindConflict, "another sign-in is already in progress")

	ErrAlreadySignedIn = fault.New(fault.KindConflict, "already signed in, sign out first")
)

type Service struct {
	store *store.Store
	gw    Gateway
	log   *slog.Logger
}

func NewService(st *store.Store, gw Gateway, log *slog.Logger) *Service {
	return &Service{store: st, gw: gw, log: log}
}

func (s *Service) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.gw.SignIn)
}

func (s *Service) Signup(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, email, password, s.gw.SignUp)
}

// Logout is synchronous and has no network effect. Cart and user-scoped
// views reset in the same committed transition, their reducers react to
// the logout action directly.
func (s *Service) Logout() error {
	return s.store.Dispatch(domain.LoggedOut{})
}

func (s *Service) authenticate(ctx context.Context, email, password string, call func(context.Context, string, string) (domain.Session, error)) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fault.New(fault.KindValidation, "email and password are required")
	}

	attempt := uuid.NewString()
	if err := s.store.Dispatch(domain.LoginStarted{Attempt: attempt}); err != nil {
		return err
	}

	// the reducer only admits one attempt; ours lost if another id is held
	st := s.store.State().Auth
	if st.SignedIn() {
		return ErrAlreadySignedIn
	}
	if st.Attempt != attempt {
		return ErrLoginInFlight
	}
	epoch := st.Epoch

	session, err := call(ctx, email, password)
	if err != nil {
		if derr := s.store.Dispatch(domain.LoginFailed{Attempt: attempt, Epoch: epoch}); derr != nil && !errors.Is(derr, store.ErrStaleAction) {
			s.log.Warn("could not roll back sign-in state", slog.Any("err", derr))
		}
		return err
	}

	if err := s.store.Dispatch(domain.LoggedIn{Attempt: attempt, Epoch: epoch, Session: session}); err != nil {
		return err
	}
	s.log.Info("signed in", slog.String("user_id", session.UserID))
	return nil
}
