package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bitmark-inc/community-aid/schema"
)

// memoryCollection keeps listings newest first
type memoryCollection[T any, PT schema.Record[T]] struct {
	sync.RWMutex
	items []T
}

func (c *memoryCollection[T, PT]) index(id string) int {
	for i := range c.items {
		if PT(&c.items[i]).Common().ID == id {
			return i
		}
	}
	return -1
}

func (c *memoryCollection[T, PT]) list() []T {
	c.RLock()
	defer c.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

func (c *memoryCollection[T, PT]) get(id string) (*T, error) {
	c.RLock()
	defer c.RUnlock()

	i := c.index(id)
	if i < 0 {
		return nil, ErrListingNotFound
	}
	item := c.items[i]
	return &item, nil
}

func (c *memoryCollection[T, PT]) insert(item T) *T {
	common := PT(&item).Common()
	common.ID = primitive.NewObjectID().Hex()
	common.PostedDate = schema.PostedJustNow
	common.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	c.Lock()
	defer c.Unlock()
	c.items = append([]T{item}, c.items...)
	return &item
}

func (c *memoryCollection[T, PT]) replace(id string, item T) (*T, error) {
	c.Lock()
	defer c.Unlock()

	i := c.index(id)
	if i < 0 {
		return nil, ErrListingNotFound
	}

	stored := PT(&c.items[i]).Common()
	common := PT(&item).Common()
	common.ID = stored.ID
	common.CreatedAt = stored.CreatedAt
	if common.PostedDate == "" {
		common.PostedDate = stored.PostedDate
	}

	c.items[i] = item
	return &item, nil
}

func (c *memoryCollection[T, PT]) remove(id string) error {
	c.Lock()
	defer c.Unlock()

	i := c.index(id)
	if i < 0 {
		return ErrListingNotFound
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return nil
}

type memoryStore struct {
	donations memoryCollection[schema.Donation, *schema.Donation]
	requests  memoryCollection[schema.Request, *schema.Request]
}

// NewMemoryStore is a MongoStore that keeps every listing in process. It
// serves local runs without a database and tests.
func NewMemoryStore() MongoStore {
	return &memoryStore{}
}

func (m *memoryStore) Ping() error {
	return nil
}

func (m *memoryStore) Close() {}

func (m *memoryStore) ListDonations(ctx context.Context) ([]schema.Donation, error) {
	return m.donations.list(), nil
}

func (m *memoryStore) GetDonation(ctx context.Context, id string) (*schema.Donation, error) {
	return m.donations.get(id)
}

func (m *memoryStore) CreateDonation(ctx context.Context, d schema.Donation) (*schema.Donation, error) {
	return m.donations.insert(d), nil
}

func (m *memoryStore) UpdateDonation(ctx context.Context, id string, d schema.Donation) (*schema.Donation, error) {
	return m.donations.replace(id, d)
}

func (m *memoryStore) DeleteDonation(ctx context.Context, id string) error {
	return m.donations.remove(id)
}

func (m *memoryStore) ListRequests(ctx context.Context) ([]schema.Request, error) {
	return m.requests.list(), nil
}

func (m *memoryStore) GetRequest(ctx context.Context, id string) (*schema.Request, error) {
	return m.requests.get(id)
}

func (m *memoryStore) CreateRequest(ctx context.Context, r schema.Request) (*schema.Request, error) {
	r.Urgency = r.UrgencyLevel()
	return m.requests.insert(r), nil
}

func (m *memoryStore) UpdateRequest(ctx context.Context, id string, r schema.Request) (*schema.Request, error) {
	r.Urgency = r.UrgencyLevel()
	return m.requests.replace(id, r)
}

func (m *memoryStore) DeleteRequest(ctx context.Context, id string) error {
	return m.requests.remove(id)
}
