package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/community-aid/external/broker"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

// listDonations returns every donation, newest first
func (s *Server) listDonations(c *gin.Context) {
	donations, err := s.mongoStore.ListDonations(c.Request.Context())
	s.metrics.record(schema.DonationCollection, opList, err)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, donations)
}

func (s *Server) getDonation(c *gin.Context) {
	donation, err := s.mongoStore.GetDonation(c.Request.Context(), c.Param("donationID"))
	s.metrics.record(schema.DonationCollection, opGet, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorDonationNotFound, err)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, donation)
}

func (s *Server) createDonation(c *gin.Context) {
	var params schema.Donation
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	donation, err := s.mongoStore.CreateDonation(c.Request.Context(), params)
	s.metrics.record(schema.DonationCollection, opCreate, err)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotSaveListing, err)
		return
	}

	s.announce(c.Request.Context(), broker.EventCreated, schema.DonationCollection, donation.ID)
	c.JSON(http.StatusCreated, donation)
}

func (s *Server) updateDonation(c *gin.Context) {
	id := c.Param("donationID")

	var params schema.Donation
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	donation, err := s.mongoStore.UpdateDonation(c.Request.Context(), id, params)
	s.metrics.record(schema.DonationCollection, opUpdate, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorDonationNotFound, err)
		} else {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotSaveListing, err)
		}
		return
	}

	s.announce(c.Request.Context(), broker.EventUpdated, schema.DonationCollection, donation.ID)
	c.JSON(http.StatusOK, donation)
}

func (s *Server) deleteDonation(c *gin.Context) {
	id := c.Param("donationID")

	err := s.mongoStore.DeleteDonation(c.Request.Context(), id)
	s.metrics.record(schema.DonationCollection, opDelete, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorDonationNotFound, err)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	s.announce(c.Request.Context(), broker.EventDeleted, schema.DonationCollection, id)
	c.JSON(http.StatusOK, gin.H{"message": "Donation deleted successfully"})
}
