// Package authclient performs the credential exchange and profile fetch
// against the dashboard API and populates the session store.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"
	"github.com/hasan-mia/the-x-tribune-server/internal/session"
)

var (
	// ErrNoToken means the auth endpoint answered without a token.
	ErrNoToken = errors.New("no token received")
	// ErrInFlight rejects a login or registration started while another is
	// still running against the same session store.
	ErrInFlight = errors.New("another login or registration is in flight")
)

// Registration carries the fields of the sign-up form.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CredentialExchanger is the remote authentication endpoint: credentials in,
// opaque token out.
type CredentialExchanger interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	Register(ctx context.Context, reg Registration) (token string, err error)
}

// ProfileFetcher is the remote profile endpoint, called with the token as a
// bearer credential.
type ProfileFetcher interface {
	Fetch(ctx context.Context, token string) (*model.User, error)
}

// Service runs the two-step login: exchange credentials for a token, then —
// strictly after the token is in hand — fetch the profile, then write both
// into the session store. Failures leave the store untouched and come back
// as plain error results; nothing panics past this boundary.
type Service struct {
	store     *session.Store
	exchanger CredentialExchanger
	profiles  ProfileFetcher
	inFlight  atomic.Bool
}

// NewService wires the service to its collaborators.
func NewService(store *session.Store, exchanger CredentialExchanger, profiles ProfileFetcher) *Service {
	return &Service{store: store, exchanger: exchanger, profiles: profiles}
}

// Login authenticates and populates the session store. At most one
// Login/Register runs at a time; a concurrent call gets ErrInFlight.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer s.inFlight.Store(false)

	token, err := s.exchanger.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.completeWithToken(ctx, token)
}

// Register signs up and populates the session store, same contract as Login.
func (s *Service) Register(ctx context.Context, reg Registration) (*model.User, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer s.inFlight.Store(false)

	token, err := s.exchanger.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return s.completeWithToken(ctx, token)
}

// completeWithToken finishes the second step. The profile is only ever
// fetched with the freshly issued token, and the store is written only when
// both halves of the session are known.
func (s *Service) completeWithToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	user, err := s.profiles.Fetch(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	s.store.SetToken(token)
	s.store.SetUser(user)
	return user, nil
}

// Logout clears the session store; invalidation hooks registered on the
// store drop any cached responses keyed to the previous session.
func (s *Service) Logout() {
	s.store.Logout()
}
