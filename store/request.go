package store

import (
	"context"

	"github.com/bitmark-inc/community-aid/schema"
)

// Requests - persistence of help requests
type Requests interface {
	ListRequests(ctx context.Context) ([]schema.Request, error)
	GetRequest(ctx context.Context, id string) (*schema.Request, error)
	CreateRequest(ctx context.Context, r schema.Request) (*schema.Request, error)
	UpdateRequest(ctx context.Context, id string, r schema.Request) (*schema.Request, error)
	DeleteRequest(ctx context.Context, id string) error
}

// ListRequests returns all help requests, the most recent first
func (m *mongoDB) ListRequests(ctx context.Context) ([]schema.Request, error) {
	return listAll[schema.Request](ctx, m.collection(schema.RequestCollection))
}

func (m *mongoDB) GetRequest(ctx context.Context, id string) (*schema.Request, error) {
	return findByID[schema.Request](ctx, m.collection(schema.RequestCollection), id)
}

// CreateRequest stores a new help request. Requests submitted without an
// urgency are stored as medium.
func (m *mongoDB) CreateRequest(ctx context.Context, r schema.Request) (*schema.Request, error) {
	r.Urgency = r.UrgencyLevel()
	return insert(ctx, m.collection(schema.RequestCollection), r)
}

func (m *mongoDB) UpdateRequest(ctx context.Context, id string, r schema.Request) (*schema.Request, error) {
	r.Urgency = r.UrgencyLevel()
	return replace(ctx, m.collection(schema.RequestCollection), id, r)
}

func (m *mongoDB) DeleteRequest(ctx context.Context, id string) error {
	return remove(ctx, m.collection(schema.RequestCollection), id)
}
