package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/community-aid/schema"
)

type loginResponse struct {
	Identity schema.Identity `json:"identity"`
	Token    string          `json:"token"`
}

func TestLoginAndMe(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	w := ts.do("POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin123",
	})
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp loginResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, schema.Identity{
		ID:    "1",
		Name:  "Admin User",
		Email: "admin@example.com",
		Role:  schema.RoleAdmin,
	}, resp.Identity)
	assert.NotEmpty(t, resp.Token)

	w = ts.do("GET", "/api/auth/me", nil, "Authorization", "Bearer "+resp.Token)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var me schema.Identity
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &me), "wrong json unmarshal")
	assert.Equal(t, resp.Identity, me)
}

func TestLoginWithWrongPassword(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	w := ts.do("POST", "/api/auth/login", map[string]string{
		"email":    "user@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong status code")
	assert.Equal(t, "invalid email or password", decodeError(t, w).Message)
}

func TestLoginWithMissingFields(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	w := ts.do("POST", "/api/auth/login", map[string]string{"email": "user@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestMeWithoutToken(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	w := ts.do("GET", "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong status code")

	w = ts.do("GET", "/api/auth/me", nil, "Authorization", "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "wrong status code")
	assert.Equal(t, errorInvalidToken, decodeError(t, w))
}
