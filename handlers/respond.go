package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	buyerSvc "agritrust/services/buyer"
	driverSvc "agritrust/services/driver"
	farmerSvc "agritrust/services/farmer"
	"agritrust/services/storage"
)

// respondServiceError maps a service error to an HTTP status and the
// uniform {success:false, message} error envelope. Unknown errors come
// back as a generic 500 so internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "something went wrong, please try again"

	var (
		farmerValidation farmerSvc.ValidationError
		buyerValidation  buyerSvc.ValidationError
		driverValidation driverSvc.ValidationError
		farmerConflict   farmerSvc.ConflictError
		buyerConflict    buyerSvc.ConflictError
		driverConflict   driverSvc.ConflictError
		farmerAuth       farmerSvc.AuthError
		buyerAuth        buyerSvc.AuthError
		driverAuth       driverSvc.AuthError
		farmerNotFound   farmerSvc.NotFoundError
		buyerNotFound    buyerSvc.NotFoundError
		driverNotFound   driverSvc.NotFoundError
		unverified       driverSvc.UnverifiedError
		upload           storage.UploadError
	)

	switch {
	case errors.As(err, &farmerValidation),
		errors.As(err, &buyerValidation),
		errors.As(err, &driverValidation),
		errors.As(err, &farmerConflict),
		errors.As(err, &buyerConflict),
		errors.As(err, &driverConflict),
		errors.As(err, &upload):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &unverified):
		status = http.StatusForbidden
		message = err.Error()
	case errors.As(err, &farmerAuth),
		errors.As(err, &buyerAuth),
		errors.As(err, &driverAuth):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.As(err, &farmerNotFound),
		errors.As(err, &buyerNotFound),
		errors.As(err, &driverNotFound):
		status = http.StatusNotFound
		message = err.Error()
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}
