package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/community-aid/client"
	"github.com/bitmark-inc/community-aid/localstore"
	"github.com/bitmark-inc/community-aid/notify"
	"github.com/bitmark-inc/community-aid/schema"
)

const logPrefix = "listing"

var (
	ErrUnknownID = fmt.Errorf("unknown listing id")
	ErrNoBackend = fmt.Errorf("listing store requires a backend")
	ErrNoKind    = fmt.Errorf("listing store requires a kind")
)

// Backend is the remote collection a Store mirrors
type Backend[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

type Config[T any] struct {
	// Kind names the listings, "donation" or "request". It selects the
	// notification texts and the snapshot key.
	Kind     string
	Backend  Backend[T]
	Notifier notify.Notifier
	Messages *notify.Messages

	// Persist keeps a snapshot of confirmed backend state between runs
	Persist localstore.Store

	// Samples are installed when the backend cannot be loaded
	Samples []T

	// Validate checks a submission before the backend is contacted. The
	// default checks the binding tags of the schema.
	Validate func(v T) error
}

// Store is the client side mirror of one listing collection. The
// collection only changes after the backend confirms a change.
type Store[T any, PT schema.Record[T]] struct {
	cfg Config[T]
	log *log.Entry

	mu       sync.RWMutex
	items    []T
	sample   bool
	inflight int

	listenersLock sync.Mutex
	listeners     []func()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// Validate checks a listing against its schema binding tags
func Validate[T any](v T) error {
	return validate.Struct(v)
}

// New builds a store. A snapshot left by a previous run is loaded right away.
func New[T any, PT schema.Record[T]](cfg Config[T]) (*Store[T, PT], error) {
	if cfg.Backend == nil {
		return nil, ErrNoBackend
	}
	if cfg.Kind == "" {
		return nil, ErrNoKind
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.Messages == nil {
		cfg.Messages = notify.NewMessages()
	}
	if cfg.Validate == nil {
		cfg.Validate = Validate[T]
	}

	s := &Store[T, PT]{
		cfg:   cfg,
		log:   log.WithField("prefix", logPrefix).WithField("kind", cfg.Kind),
		items: []T{},
	}

	if cfg.Persist != nil {
		var items []T
		found, err := cfg.Persist.Get(s.snapshotKey(), &items)
		if err != nil {
			s.log.WithError(err).Warn("read snapshot")
		} else if found && items != nil {
			s.items = items
		}
	}

	return s, nil
}

// NewDonations is a store of donations backed by the listing service
func NewDonations(c *client.Client, cfg Config[schema.Donation]) (*Store[schema.Donation, *schema.Donation], error) {
	cfg.Kind = "donation"
	if cfg.Backend == nil {
		cfg.Backend = client.Donations(c)
	}
	if cfg.Samples == nil {
		cfg.Samples = SampleDonations
	}
	return New[schema.Donation](cfg)
}

// NewRequests is a store of help requests backed by the listing service
func NewRequests(c *client.Client, cfg Config[schema.Request]) (*Store[schema.Request, *schema.Request], error) {
	cfg.Kind = "request"
	if cfg.Backend == nil {
		cfg.Backend = client.Requests(c)
	}
	if cfg.Samples == nil {
		cfg.Samples = SampleRequests
	}
	return New[schema.Request](cfg)
}

func (s *Store[T, PT]) snapshotKey() string {
	return s.cfg.Kind + "s"
}

// Items returns a copy of the collection, newest first
func (s *Store[T, PT]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T{}, s.items...)
}

// Pending reports whether a load or a mutation is in flight
func (s *Store[T, PT]) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// IsSample reports whether the collection is the fallback sample data
func (s *Store[T, PT]) IsSample() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sample
}

// Subscribe registers fn to run after every change of the collection or
// the pending state
func (s *Store[T, PT]) Subscribe(fn func()) {
	s.listenersLock.Lock()
	defer s.listenersLock.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store[T, PT]) changed() {
	s.listenersLock.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersLock.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// begin marks an operation in flight. The returned func must be deferred.
func (s *Store[T, PT]) begin() func() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	s.changed()

	return func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
		s.changed()
	}
}

// commit installs a new collection and snapshots it
func (s *Store[T, PT]) commit(update func(items []T) []T, sample bool) {
	s.mu.Lock()
	items := update(s.items)
	s.items = items
	s.sample = sample
	s.mu.Unlock()

	if s.cfg.Persist != nil && !sample {
		if err := s.cfg.Persist.Put(s.snapshotKey(), items); err != nil {
			s.log.WithError(err).Warn("write snapshot")
		}
	}
	s.changed()
}

// settle installs a change the backend confirmed. A collection showing
// sample data is replaced by the backend's own, since the backend is
// reachable again; it stays sample data when that reload fails.
func (s *Store[T, PT]) settle(ctx context.Context, update func(items []T) []T) {
	if !s.IsSample() {
		s.commit(update, false)
		return
	}

	items, err := s.cfg.Backend.List(ctx)
	if err != nil {
		s.log.WithError(err).Warn("reload collection after confirmed change")
		s.commit(update, true)
		return
	}
	if items == nil {
		items = []T{}
	}
	s.commit(func([]T) []T { return items }, false)
}

func (s *Store[T, PT]) holds(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf[T, PT](s.items, id) >= 0
}

func indexOf[T any, PT schema.Record[T]](items []T, id string) int {
	for i := range items {
		if PT(&items[i]).Common().ID == id {
			return i
		}
	}
	return -1
}

// Load replaces the collection with the backend's. When the backend cannot
// be reached the sample collection is shown instead and nil is returned.
func (s *Store[T, PT]) Load(ctx context.Context) error {
	done := s.begin()
	defer done()

	items, err := s.cfg.Backend.List(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.log.WithError(err).Warn("load collection, fall back to sample data")
		samples := append([]T{}, s.cfg.Samples...)
		s.commit(func([]T) []T { return samples }, true)
		s.cfg.Notifier.Notify(s.cfg.Messages.ConnectionError())
		return nil
	}

	if items == nil {
		items = []T{}
	}
	s.log.Debugf("load %d listings", len(items))
	s.commit(func([]T) []T { return items }, false)
	return nil
}

// Add submits a new listing and prepends the created record
func (s *Store[T, PT]) Add(ctx context.Context, fields T) (T, error) {
	var zero T

	common := PT(&fields).Common()
	common.ID = ""
	common.PostedDate = ""
	if err := s.cfg.Validate(fields); err != nil {
		return zero, fmt.Errorf("invalid %s: %w", s.cfg.Kind, err)
	}

	done := s.begin()
	defer done()

	created, err := s.cfg.Backend.Create(ctx, fields)
	if err != nil {
		s.fail(notify.AddFailed, err)
		return zero, err
	}
	PT(&created).Common().PostedDate = schema.PostedJustNow

	s.settle(ctx, func(items []T) []T {
		next := make([]T, 0, len(items)+1)
		next = append(next, created)
		return append(next, items...)
	})

	s.cfg.Notifier.Notify(s.cfg.Messages.Listing(s.cfg.Kind, notify.Added))
	return created, nil
}

// Edit replaces a listing held by the store, keeping its position
func (s *Store[T, PT]) Edit(ctx context.Context, item T) (T, error) {
	var zero T

	id := PT(&item).Common().ID
	if id == "" || !s.holds(id) {
		return zero, ErrUnknownID
	}
	if err := s.cfg.Validate(item); err != nil {
		return zero, fmt.Errorf("invalid %s: %w", s.cfg.Kind, err)
	}

	done := s.begin()
	defer done()

	updated, err := s.cfg.Backend.Update(ctx, id, item)
	if err != nil {
		s.fail(notify.UpdateFailed, err)
		return zero, err
	}
	if PT(&updated).Common().ID == "" {
		PT(&updated).Common().ID = id
	}

	s.settle(ctx, func(items []T) []T {
		i := indexOf[T, PT](items, id)
		if i < 0 {
			return items
		}
		next := append([]T{}, items...)
		next[i] = updated
		return next
	})

	s.cfg.Notifier.Notify(s.cfg.Messages.Listing(s.cfg.Kind, notify.Updated))
	return updated, nil
}

// Remove deletes a listing held by the store
func (s *Store[T, PT]) Remove(ctx context.Context, id string) error {
	if id == "" || !s.holds(id) {
		return ErrUnknownID
	}

	done := s.begin()
	defer done()

	if err := s.cfg.Backend.Delete(ctx, id); err != nil {
		s.fail(notify.DeleteFailed, err)
		return err
	}

	s.settle(ctx, func(items []T) []T {
		i := indexOf[T, PT](items, id)
		if i < 0 {
			return items
		}
		next := make([]T, 0, len(items)-1)
		next = append(next, items[:i]...)
		return append(next, items[i+1:]...)
	})

	s.cfg.Notifier.Notify(s.cfg.Messages.Listing(s.cfg.Kind, notify.Deleted))
	return nil
}

// fail reports a failed mutation. The collection is left as it was.
func (s *Store[T, PT]) fail(outcome notify.Outcome, err error) {
	if errors.Is(err, client.ErrNotFound) {
		outcome = notify.NotFound
	}

	s.log.WithError(err).Warnf("%s %s", s.cfg.Kind, outcome)
	s.cfg.Notifier.Notify(s.cfg.Messages.Listing(s.cfg.Kind, outcome))
}
