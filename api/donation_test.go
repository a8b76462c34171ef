package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/community-aid/external/broker"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

func winterJacket() schema.Donation {
	return schema.Donation{
		Listing: schema.Listing{
			Title:       "Winter Jacket",
			Category:    "Clothing",
			Description: "Warm winter jacket, size M, barely used.",
			Location:    "Downtown",
		},
		DonorName: "Alice Smith",
		ImageURL:  "https://example.com/jacket.jpg",
	}
}

func TestListDonations(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	d := winterJacket()
	d.ID = "64b7f0c2e1d3a5b6c7d8e9f0"
	d.PostedDate = schema.PostedJustNow
	ts.store.EXPECT().ListDonations(gomock.Any()).Return([]schema.Donation{d}, nil).Times(1)

	w := ts.do("GET", "/api/donations", nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp []schema.Donation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, []schema.Donation{d}, resp)
}

func TestListDonationsEmpty(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().ListDonations(gomock.Any()).Return([]schema.Donation{}, nil).Times(1)

	w := ts.do("GET", "/api/donations", nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Equal(t, "[]", w.Body.String())
}

func TestListDonationsWithStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().ListDonations(gomock.Any()).Return(nil, fmt.Errorf("connection refused")).Times(1)

	w := ts.do("GET", "/api/donations", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
}

func TestGetDonationNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().GetDonation(gomock.Any(), "unknown").Return(nil, store.ErrListingNotFound).Times(1)

	w := ts.do("GET", "/api/donations/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
	assert.Equal(t, "Donation not found", decodeError(t, w).Message)
}

func TestCreateDonation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	body := winterJacket()
	created := body
	created.ID = "64b7f0c2e1d3a5b6c7d8e9f1"
	created.PostedDate = schema.PostedJustNow

	ts.store.EXPECT().CreateDonation(gomock.Any(), body).Return(&created, nil).Times(1)
	ts.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e broker.ListingEvent) error {
			assert.Equal(t, broker.EventCreated, e.Type)
			assert.Equal(t, schema.DonationCollection, e.Collection)
			assert.Equal(t, created.ID, e.ID)
			return nil
		}).Times(1)

	w := ts.do("POST", "/api/donations", body)
	assert.Equal(t, http.StatusCreated, w.Code, "wrong status code")

	var resp schema.Donation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, created, resp)
}

func TestCreateDonationPublishFailureStillSucceeds(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	body := winterJacket()
	created := body
	created.ID = "64b7f0c2e1d3a5b6c7d8e9f1"

	ts.store.EXPECT().CreateDonation(gomock.Any(), body).Return(&created, nil).Times(1)
	ts.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(fmt.Errorf("nats: connection closed")).Times(1)

	w := ts.do("POST", "/api/donations", body)
	assert.Equal(t, http.StatusCreated, w.Code, "wrong status code")
}

func TestCreateDonationInvalid(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	cases := map[string]func(d *schema.Donation){
		"short title":       func(d *schema.Donation) { d.Title = "Hat" },
		"short description": func(d *schema.Donation) { d.Description = "too short" },
		"unknown category":  func(d *schema.Donation) { d.Category = "Toys" },
		"short location":    func(d *schema.Donation) { d.Location = "NY" },
		"short donor name":  func(d *schema.Donation) { d.DonorName = "Al" },
		"bad image url":     func(d *schema.Donation) { d.ImageURL = "not a url" },
	}

	for name, mutate := range cases {
		body := winterJacket()
		mutate(&body)

		w := ts.do("POST", "/api/donations", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, errorInvalidParameters, decodeError(t, w), name)
	}
}

func TestCreateDonationWithStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().CreateDonation(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("write failed")).Times(1)

	w := ts.do("POST", "/api/donations", winterJacket())
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
	assert.Equal(t, errorCannotSaveListing, decodeError(t, w))
}

func TestUpdateDonation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)

	body := winterJacket()
	body.Title = "Winter Jacket (Large)"
	updated := body
	updated.ID = "64b7f0c2e1d3a5b6c7d8e9f0"
	updated.PostedDate = "2 days ago"

	ts.store.EXPECT().UpdateDonation(gomock.Any(), updated.ID, body).Return(&updated, nil).Times(1)
	ts.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	w := ts.do("PUT", "/api/donations/"+updated.ID, body)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp schema.Donation
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, updated, resp)
}

func TestUpdateDonationNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().UpdateDonation(gomock.Any(), "gone", gomock.Any()).Return(nil, store.ErrListingNotFound).Times(1)

	w := ts.do("PUT", "/api/donations/gone", winterJacket())
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")
}

func TestDeleteDonation(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().DeleteDonation(gomock.Any(), "64b7f0c2e1d3a5b6c7d8e9f0").Return(nil).Times(1)
	ts.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	w := ts.do("DELETE", "/api/donations/64b7f0c2e1d3a5b6c7d8e9f0", nil)
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "wrong json unmarshal")
	assert.Equal(t, "Donation deleted successfully", resp["message"])
}

func TestDeleteDonationWithStoreError(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := newTestServer(t, ctl)
	ts.store.EXPECT().DeleteDonation(gomock.Any(), "64b7f0c2e1d3a5b6c7d8e9f0").Return(fmt.Errorf("timeout")).Times(1)

	w := ts.do("DELETE", "/api/donations/64b7f0c2e1d3a5b6c7d8e9f0", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code, "wrong status code")
}
