package api

import (
	"github.com/bitmark-inc/community-aid/auth"
	"github.com/bitmark-inc/community-aid/external/imagestore"
)

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "cannot save listing",

		1200: "Donation not found",
		1201: "Request not found",

		1300: auth.ErrInvalidCredentials.Error(),
		1301: auth.ErrInvalidToken.Error(),

		1400: "image storage is not available",
		1401: imagestore.ErrNotImage.Error(),
	}

	errorInternalServer     = errorJSON(999)
	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorCannotSaveListing  = errorJSON(1012)

	errorDonationNotFound = errorJSON(1200)
	errorRequestNotExist  = errorJSON(1201)

	errorInvalidCredentials = errorJSON(1300)
	errorInvalidToken       = errorJSON(1301)

	errorImageStorageUnavailable = errorJSON(1400)
	errorInvalidImage            = errorJSON(1401)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
