package handlers

import (
	"github.com/gin-gonic/gin"

	buyerRepoPkg "agritrust/database/repository/buyer"
	driverRepoPkg "agritrust/database/repository/driver"
	farmerRepoPkg "agritrust/database/repository/farmer"
)

// HandlerBundle groups all endpoint handlers plus the repositories the
// auth middleware needs for existence checks.
type HandlerBundle struct {
	FarmerRepo farmerRepoPkg.FarmerRepository
	BuyerRepo  buyerRepoPkg.BuyerRepository
	DriverRepo driverRepoPkg.DriverRepository

	// Farmer endpoints
	RegisterFarmerHandler        gin.HandlerFunc
	AuthenticateFarmerHandler    gin.HandlerFunc
	CheckFarmerUsernameHandler   gin.HandlerFunc
	GetFarmerByIDHandler         gin.HandlerFunc
	UpdateFarmerHandler          gin.HandlerFunc
	UpdateFarmerPasswordHandler  gin.HandlerFunc
	DeleteFarmerHandler          gin.HandlerFunc
	ForgotFarmerPasswordHandler  gin.HandlerFunc
	VerifyFarmerResetCodeHandler gin.HandlerFunc
	ResetFarmerPasswordHandler   gin.HandlerFunc

	// Buyer endpoints
	RegisterBuyerHandler       gin.HandlerFunc
	AuthenticateBuyerHandler   gin.HandlerFunc
	CheckBuyerUsernameHandler  gin.HandlerFunc
	GetBuyerByIDHandler        gin.HandlerFunc
	UpdateBuyerHandler         gin.HandlerFunc
	UpdateBuyerPasswordHandler gin.HandlerFunc
	DeleteBuyerHandler         gin.HandlerFunc

	// Driver endpoints
	RegisterDriverHandler        gin.HandlerFunc
	AuthenticateDriverHandler    gin.HandlerFunc
	CheckDriverEmailHandler      gin.HandlerFunc
	GetDriverByIDHandler         gin.HandlerFunc
	UpdateDriverHandler          gin.HandlerFunc
	UpdateDriverPasswordHandler  gin.HandlerFunc
	DeleteDriverHandler          gin.HandlerFunc
	ForgotDriverPasswordHandler  gin.HandlerFunc
	VerifyDriverResetCodeHandler gin.HandlerFunc
	ResetDriverPasswordHandler   gin.HandlerFunc

	// Billing and places
	VerifyBillingHandler      gin.HandlerFunc
	PlacesAutocompleteHandler gin.HandlerFunc
}
