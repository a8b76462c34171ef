package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/community-aid/external/imagestore"
)

const imageFormField = "image"

// uploadDonationImage stores a donation photo and returns its public url
func (s *Server) uploadDonationImage(c *gin.Context) {
	if s.images == nil {
		abortWithEncoding(c, http.StatusServiceUnavailable, errorImageStorageUnavailable)
		return
	}

	file, err := c.FormFile(imageFormField)
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	f, err := file.Open()
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}
	defer f.Close()

	url, err := s.images.Upload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), f, file.Size)
	if err != nil {
		if err == imagestore.ErrNotImage {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidImage, err)
		} else {
			abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"imageUrl": url})
}
