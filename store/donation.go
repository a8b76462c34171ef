package store

import (
	"context"

	"github.com/bitmark-inc/community-aid/schema"
)

// Donations - persistence of offered items
type Donations interface {
	ListDonations(ctx context.Context) ([]schema.Donation, error)
	GetDonation(ctx context.Context, id string) (*schema.Donation, error)
	CreateDonation(ctx context.Context, d schema.Donation) (*schema.Donation, error)
	UpdateDonation(ctx context.Context, id string, d schema.Donation) (*schema.Donation, error)
	DeleteDonation(ctx context.Context, id string) error
}

// ListDonations returns all donations, the most recent first
func (m *mongoDB) ListDonations(ctx context.Context) ([]schema.Donation, error) {
	return listAll[schema.Donation](ctx, m.collection(schema.DonationCollection))
}

func (m *mongoDB) GetDonation(ctx context.Context, id string) (*schema.Donation, error) {
	return findByID[schema.Donation](ctx, m.collection(schema.DonationCollection), id)
}

func (m *mongoDB) CreateDonation(ctx context.Context, d schema.Donation) (*schema.Donation, error) {
	return insert(ctx, m.collection(schema.DonationCollection), d)
}

func (m *mongoDB) UpdateDonation(ctx context.Context, id string, d schema.Donation) (*schema.Donation, error) {
	return replace(ctx, m.collection(schema.DonationCollection), id, d)
}

func (m *mongoDB) DeleteDonation(ctx context.Context, id string) error {
	return remove(ctx, m.collection(schema.DonationCollection), id)
}
