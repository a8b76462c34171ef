package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/community-aid/external/broker"
	"github.com/bitmark-inc/community-aid/schema"
	"github.com/bitmark-inc/community-aid/store"
)

// listRequests returns every help request, newest first
func (s *Server) listRequests(c *gin.Context) {
	requests, err := s.mongoStore.ListRequests(c.Request.Context())
	s.metrics.record(schema.RequestCollection, opList, err)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (s *Server) getRequest(c *gin.Context) {
	request, err := s.mongoStore.GetRequest(c.Request.Context(), c.Param("requestID"))
	s.metrics.record(schema.RequestCollection, opGet, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorRequestNotExist, err)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

func (s *Server) createRequest(c *gin.Context) {
	var params schema.Request
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	request, err := s.mongoStore.CreateRequest(c.Request.Context(), params)
	s.metrics.record(schema.RequestCollection, opCreate, err)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotSaveListing, err)
		return
	}

	s.announce(c.Request.Context(), broker.EventCreated, schema.RequestCollection, request.ID)
	c.JSON(http.StatusCreated, request)
}

func (s *Server) updateRequest(c *gin.Context) {
	id := c.Param("requestID")

	var params schema.Request
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	request, err := s.mongoStore.UpdateRequest(c.Request.Context(), id, params)
	s.metrics.record(schema.RequestCollection, opUpdate, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorRequestNotExist, err)
		} else {
			abortWithEncoding(c, http.StatusBadRequest, errorCannotSaveListing, err)
		}
		return
	}

	s.announce(c.Request.Context(), broker.EventUpdated, schema.RequestCollection, request.ID)
	c.JSON(http.StatusOK, request)
}

func (s *Server) deleteRequest(c *gin.Context) {
	id := c.Param("requestID")

	err := s.mongoStore.DeleteRequest(c.Request.Context(), id)
	s.metrics.record(schema.RequestCollection, opDelete, err)
	if err != nil {
		if err == store.ErrListingNotFound {
			abortWithEncoding(c, http.StatusNotFound, errorRequestNotExist, err)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	s.announce(c.Request.Context(), broker.EventDeleted, schema.RequestCollection, id)
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}
