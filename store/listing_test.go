package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/community-aid/schema"
)

type ListingTestSuite struct {
	suite.Suite
	connURI     string
	testDBName  string
	mongoClient *mongo.Client
	store       MongoStore
}

// NewListingTestSuite runs against mongodb when connURI is set and against
// the memory store otherwise
func NewListingTestSuite(connURI, dbName string) *ListingTestSuite {
	return &ListingTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ListingTestSuite) SetupSuite() {
	if s.connURI == "" {
		return
	}

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(s.connURI))
	if nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err)
	}
	s.mongoClient = mongoClient
}

func (s *ListingTestSuite) SetupTest() {
	if s.mongoClient == nil {
		s.store = NewMemoryStore()
		return
	}

	// make sure every test is run with a clean environment
	if err := s.mongoClient.Database(s.testDBName).Drop(context.Background()); err != nil {
		s.T().Fatal(err)
	}
	indexer := schema.NewMongoDBIndexer(s.connURI, s.testDBName)
	indexer.IndexAll()
	_ = indexer.Close()
	s.store = NewMongoStore(s.mongoClient, s.testDBName)
}

func (s *ListingTestSuite) TearDownSuite() {
	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(context.Background())
	}
}

func testDonation(title string) schema.Donation {
	return schema.Donation{
		Listing: schema.Listing{
			Title:       title,
			Category:    "Clothing",
			Description: "Warm clothes for the coming winter season",
			Location:    "Downtown Community Center",
		},
		DonorName: "Sarah Johnson",
		ImageURL:  "https://example.com/coat.jpg",
	}
}

func (s *ListingTestSuite) TestCreateAssignsIdentity() {
	d := testDonation("Winter coats")
	d.ID = "client-chosen"
	d.PostedDate = "last year"

	created, err := s.store.CreateDonation(context.Background(), d)
	s.Require().NoError(err)
	s.NotEmpty(created.ID)
	s.NotEqual("client-chosen", created.ID)
	s.Equal(schema.PostedJustNow, created.PostedDate)
	s.False(created.CreatedAt.IsZero())

	stored, err := s.store.GetDonation(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal("Winter coats", stored.Title)
	s.Equal("Sarah Johnson", stored.DonorName)
}

func (s *ListingTestSuite) TestListNewestFirst() {
	ctx := context.Background()

	donations, err := s.store.ListDonations(ctx)
	s.NoError(err)
	s.NotNil(donations)
	s.Empty(donations)

	first, err := s.store.CreateDonation(ctx, testDonation("First donation"))
	s.Require().NoError(err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.store.CreateDonation(ctx, testDonation("Second donation"))
	s.Require().NoError(err)

	donations, err = s.store.ListDonations(ctx)
	s.NoError(err)
	s.Require().Len(donations, 2)
	s.Equal(second.ID, donations[0].ID)
	s.Equal(first.ID, donations[1].ID)
}

func (s *ListingTestSuite) TestGetMissingListing() {
	_, err := s.store.GetDonation(context.Background(), "0123456789abcdef01234567")
	s.ErrorIs(err, ErrListingNotFound)

	_, err = s.store.GetRequest(context.Background(), "not-an-id")
	s.ErrorIs(err, ErrListingNotFound)
}

func (s *ListingTestSuite) TestUpdateKeepsIdentity() {
	ctx := context.Background()
	created, err := s.store.CreateDonation(ctx, testDonation("Winter coats"))
	s.Require().NoError(err)

	changed := *created
	changed.Title = "Winter jackets"
	changed.ID = "somewhere-else"
	changed.CreatedAt = time.Unix(0, 0)

	updated, err := s.store.UpdateDonation(ctx, created.ID, changed)
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("Winter jackets", updated.Title)
	s.True(created.CreatedAt.Equal(updated.CreatedAt))

	_, err = s.store.UpdateDonation(ctx, "0123456789abcdef01234567", changed)
	s.ErrorIs(err, ErrListingNotFound)
}

func (s *ListingTestSuite) TestUpdateWithoutPostedDate() {
	ctx := context.Background()
	created, err := s.store.CreateDonation(ctx, testDonation("Winter coats"))
	s.Require().NoError(err)

	changed := testDonation("Winter jackets")
	s.Empty(changed.PostedDate)

	updated, err := s.store.UpdateDonation(ctx, created.ID, changed)
	s.Require().NoError(err)
	s.Equal("Winter jackets", updated.Title)
	s.Equal(schema.PostedJustNow, updated.PostedDate)

	stored, err := s.store.GetDonation(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(schema.PostedJustNow, stored.PostedDate)

	changed.PostedDate = "2 days ago"
	updated, err = s.store.UpdateDonation(ctx, created.ID, changed)
	s.Require().NoError(err)
	s.Equal("2 days ago", updated.PostedDate)
}

func (s *ListingTestSuite) TestDeleteListing() {
	ctx := context.Background()
	created, err := s.store.CreateRequest(ctx, schema.Request{
		Listing: schema.Listing{
			Title:       "Need groceries",
			Category:    "Food",
			Description: "Groceries for a family of four this week",
			Location:    "Eastside",
		},
		RequesterName: "Maria Garcia",
		Urgency:       schema.UrgencyHigh,
	})
	s.Require().NoError(err)

	stored, err := s.store.GetRequest(ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(schema.UrgencyHigh, stored.Urgency)

	s.NoError(s.store.DeleteRequest(ctx, created.ID))
	s.ErrorIs(s.store.DeleteRequest(ctx, created.ID), ErrListingNotFound)

	requests, err := s.store.ListRequests(ctx)
	s.NoError(err)
	s.Empty(requests)
}

func (s *ListingTestSuite) TestRequestUrgencyDefaultsToMedium() {
	created, err := s.store.CreateRequest(context.Background(), schema.Request{
		Listing:       schema.Listing{Title: "Need a ride", Category: "Services"},
		RequesterName: "Maria Garcia",
	})
	s.Require().NoError(err)
	s.Equal(schema.UrgencyMedium, created.Urgency)

	stored, err := s.store.GetRequest(context.Background(), created.ID)
	s.Require().NoError(err)
	s.Equal(schema.UrgencyMedium, stored.Urgency)
}

func TestMemoryListingTestSuite(t *testing.T) {
	suite.Run(t, NewListingTestSuite("", ""))
}

func TestMongoListingTestSuite(t *testing.T) {
	connURI := os.Getenv("AID_TEST_MONGO")
	if connURI == "" {
		t.Skip("AID_TEST_MONGO is not set")
	}
	suite.Run(t, NewListingTestSuite(connURI, "test-community-aid"))
}
