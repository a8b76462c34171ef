package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/localstore"
	"github.com/bitmark-inc/community-aid/notify"
	"github.com/bitmark-inc/community-aid/schema"
)

const (
	logPrefix = "session"

	// StorageKey is where the signed in identity is kept
	StorageKey = "auth_user"
)

var (
	ErrNoAuthenticator = fmt.Errorf("session store requires an authenticator")
)

// Authenticator checks credentials with an identity provider. Rejected
// credentials are reported as auth.ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*schema.Identity, error)
}

// TokenAuthenticator is implemented by providers that also issue a session
// token on login
type TokenAuthenticator interface {
	Login(ctx context.Context, email, password string) (*schema.Identity, string, error)
}

// Verifier re-validates a restored session. Invalid tokens are reported as
// auth.ErrInvalidToken.
type Verifier interface {
	Verify(ctx context.Context, token string) (*schema.Identity, error)
}

type Config struct {
	Authenticator Authenticator

	// Verifier is optional. Without one a restored identity is trusted as is.
	Verifier Verifier

	Storage  localstore.Store
	Notifier notify.Notifier
	Messages *notify.Messages
}

// record is the persisted form of a session
type record struct {
	schema.Identity
	Token string `json:"token,omitempty"`
}

// Store tracks who is signed in
type Store struct {
	cfg Config

	mu       sync.RWMutex
	identity *schema.Identity
	token    string
}

func New(cfg Config) (*Store, error) {
	if cfg.Authenticator == nil {
		return nil, ErrNoAuthenticator
	}
	if cfg.Storage == nil {
		cfg.Storage = localstore.NewMemory()
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.Messages == nil {
		cfg.Messages = notify.NewMessages()
	}

	return &Store{cfg: cfg}, nil
}

// Login signs in. Bad credentials are a normal false result; an error is
// only returned when the identity provider could not be asked.
func (s *Store) Login(ctx context.Context, email, password string) (bool, error) {
	var identity *schema.Identity
	var token string
	var err error

	if ta, ok := s.cfg.Authenticator.(TokenAuthenticator); ok {
		identity, token, err = ta.Login(ctx, email, password)
	} else {
		identity, err = s.cfg.Authenticator.Authenticate(ctx, email, password)
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.cfg.Notifier.Notify(s.cfg.Messages.InvalidCredentials())
		return false, nil
	}
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Error("login")
		return false, err
	}

	s.set(identity, token)
	if err := s.cfg.Storage.Put(StorageKey, record{Identity: *identity, Token: token}); err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("persist identity")
	}

	log.WithField("prefix", logPrefix).WithField("account", identity.ID).Info("logged in")
	s.cfg.Notifier.Notify(s.cfg.Messages.Welcome(identity.Name))
	return true, nil
}

// Logout forgets the signed in identity, here and in storage
func (s *Store) Logout() {
	s.set(nil, "")
	if err := s.cfg.Storage.Delete(StorageKey); err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("remove identity")
	}

	s.cfg.Notifier.Notify(s.cfg.Messages.LoggedOut())
}

// Restore signs in the identity persisted by an earlier run, if any.
// Malformed records and tokens the verifier rejects are discarded. When the
// verifier cannot be reached the record is kept but not signed in.
func (s *Store) Restore(ctx context.Context) error {
	var r record
	found, err := s.cfg.Storage.Get(StorageKey, &r)
	if err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("read persisted identity")
		s.discard()
		return nil
	}
	if !found {
		return nil
	}

	if !r.Identity.WellFormed() {
		s.discard()
		return nil
	}

	identity := r.Identity
	if s.cfg.Verifier != nil {
		if r.Token == "" {
			s.discard()
			return nil
		}

		verified, err := s.cfg.Verifier.Verify(ctx, r.Token)
		if errors.Is(err, auth.ErrInvalidToken) {
			s.discard()
			return nil
		}
		if err != nil {
			// unverified identities stay signed out for this run, the record is kept
			log.WithField("prefix", logPrefix).WithError(err).Warn("verify persisted identity")
			return nil
		}
		identity = *verified

		if err := s.cfg.Storage.Put(StorageKey, record{Identity: identity, Token: r.Token}); err != nil {
			log.WithField("prefix", logPrefix).WithError(err).Warn("persist identity")
		}
	}

	s.set(&identity, r.Token)
	return nil
}

func (s *Store) discard() {
	log.WithField("prefix", logPrefix).Info("discard persisted identity")
	if err := s.cfg.Storage.Delete(StorageKey); err != nil {
		log.WithField("prefix", logPrefix).WithError(err).Warn("remove identity")
	}
}

func (s *Store) set(identity *schema.Identity, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if identity == nil {
		s.identity = nil
	} else {
		i := *identity
		s.identity = &i
	}
	s.token = token
}

// Identity returns the signed in identity
func (s *Store) Identity() (schema.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return schema.Identity{}, false
	}
	return *s.identity, true
}

// Token is the session token of the signed in identity, if the provider issued one
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity.IsAdmin()
}
