package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/bitmark-inc/community-aid/api"
	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/listing"
	"github.com/bitmark-inc/community-aid/store"
)

type CLITestSuite struct {
	suite.Suite
	store   store.MongoStore
	server  *httptest.Server
	dataDir string
}

func (s *CLITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	directory, err := auth.NewDemoDirectory()
	s.Require().NoError(err)

	s.store = store.NewMemoryStore()
	apiServer := api.NewServer(s.store, directory, auth.NewTokenIssuer("test-secret", time.Hour), nil, nil)
	s.server = httptest.NewServer(apiServer.Handler())
	s.dataDir = s.T().TempDir()
}

func (s *CLITestSuite) TearDownTest() {
	s.server.Close()
}

func (s *CLITestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer
	args = append([]string{"--server", s.server.URL, "--data-dir", s.dataDir}, args...)
	err := Run(context.Background(), &out, args)
	return out.String(), err
}

func (s *CLITestSuite) login(email, password string) {
	_, err := s.run("login", "--email", email, "--password", password)
	s.Require().NoError(err)
}

func (s *CLITestSuite) addDonation(title string) {
	_, err := s.run("donations", "add",
		"--title", title,
		"--category", "Clothing",
		"--description", "Warm clothes for the coming winter season",
		"--location", "Downtown Community Center",
		"--donor", "Sarah Johnson",
		"--image", "https://example.com/coat.jpg")
	s.Require().NoError(err)
}

func (s *CLITestSuite) TestListWithoutServerShowsSamples() {
	s.server.Close()

	out, err := s.run("donations", "list")
	s.NoError(err)
	s.Contains(out, "Connection error")
	s.Contains(out, "Winter Clothing Package")
	s.Contains(out, "(sample data")
}

func (s *CLITestSuite) TestVerifiedSessionWithoutServer() {
	s.login("user@example.com", "user123")
	s.server.Close()

	out, err := s.run("--verify-session", "donations", "list")
	s.NoError(err)
	s.Contains(out, "(sample data")

	_, err = s.run("--verify-session", "whoami")
	s.ErrorIs(err, errNotSignedIn)
}

func (s *CLITestSuite) TestMutationRequiresLogin() {
	_, err := s.run("donations", "delete", "abc")
	s.ErrorIs(err, errNotSignedIn)

	_, err = s.run("whoami")
	s.ErrorIs(err, errNotSignedIn)
}

func (s *CLITestSuite) TestLoginWithWrongPassword() {
	out, err := s.run("login", "--email", "admin@example.com", "--password", "nope")
	s.Error(err)
	s.Contains(out, "Invalid email or password")

	_, err = s.run("whoami")
	s.ErrorIs(err, errNotSignedIn)
}

func (s *CLITestSuite) TestLoginSurvivesRestartUntilLogout() {
	s.login("ADMIN@example.com", "admin123")

	out, err := s.run("whoami")
	s.NoError(err)
	s.Contains(out, "Admin User <admin@example.com> (admin)")

	out, err = s.run("--verify-session", "whoami")
	s.NoError(err)
	s.Contains(out, "Admin User")

	out, err = s.run("logout")
	s.NoError(err)
	s.Contains(out, "You have been logged out")

	_, err = s.run("whoami")
	s.ErrorIs(err, errNotSignedIn)
}

func (s *CLITestSuite) TestDonationLifecycle() {
	s.login("user@example.com", "user123")
	s.addDonation("Winter coats for kids")

	donations, err := s.store.ListDonations(context.Background())
	s.Require().NoError(err)
	s.Require().Len(donations, 1)
	id := donations[0].ID

	out, err := s.run("donations", "list", "--search", "COATS")
	s.NoError(err)
	s.Contains(out, id)
	s.Contains(out, "Winter coats for kids")
	s.NotContains(out, "sample data")

	out, err = s.run("donations", "edit", id, "--title", "Winter coats for adults")
	s.NoError(err)
	s.Contains(out, "Donation updated successfully")

	stored, err := s.store.GetDonation(context.Background(), id)
	s.Require().NoError(err)
	s.Equal("Winter coats for adults", stored.Title)
	s.Equal("Sarah Johnson", stored.DonorName)

	out, err = s.run("donations", "delete", id)
	s.NoError(err)
	s.Contains(out, "Donation deleted successfully")

	donations, err = s.store.ListDonations(context.Background())
	s.NoError(err)
	s.Empty(donations)
}

func (s *CLITestSuite) TestInvalidDonationIsNotSubmitted() {
	s.login("user@example.com", "user123")

	_, err := s.run("donations", "add", "--title", "Hat", "--category", "Clothing")
	s.ErrorContains(err, "invalid donation")

	donations, err := s.store.ListDonations(context.Background())
	s.NoError(err)
	s.Empty(donations)
}

func (s *CLITestSuite) TestEditUnknownID() {
	s.login("user@example.com", "user123")

	_, err := s.run("requests", "edit", "0123456789abcdef01234567", "--title", "Anything at all")
	s.ErrorIs(err, listing.ErrUnknownID)
}

func (s *CLITestSuite) TestRequestFilters() {
	s.login("user@example.com", "user123")

	add := func(title, urgency, requester string) {
		_, err := s.run("requests", "add",
			"--title", title,
			"--category", "Food",
			"--description", "Groceries for a family of four this week",
			"--location", "Eastside",
			"--requester", requester,
			"--urgency", urgency)
		s.Require().NoError(err)
	}
	add("Need groceries urgently", "high", "Regular User")
	add("Looking for spare bread", "low", "Maria Garcia")

	out, err := s.run("requests", "list", "--urgency", "high")
	s.NoError(err)
	s.Contains(out, "Need groceries urgently")
	s.NotContains(out, "Looking for spare bread")

	out, err = s.run("requests", "list", "--mine")
	s.NoError(err)
	s.Contains(out, "Need groceries urgently")
	s.NotContains(out, "Looking for spare bread")

	out, err = s.run("requests", "list", "--category", "Medical")
	s.NoError(err)
	s.NotContains(out, "Need groceries urgently")
}

func (s *CLITestSuite) TestStatsIsForAdmins() {
	s.login("user@example.com", "user123")
	s.addDonation("Winter coats for kids")

	_, err := s.run("stats")
	s.ErrorIs(err, errNotAdmin)

	s.login("admin@example.com", "admin123")
	out, err := s.run("stats")
	s.NoError(err)
	s.Contains(out, "Donations: 1")
	s.Contains(out, "Requests: 0 (0 high urgency)")
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}
