package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agritrust/handlers"
	"agritrust/middleware"
	"agritrust/utils"
)

// RegisterFarmerRoutes registers farmer account endpoints.
func RegisterFarmerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/farmers")
	{
		api.POST("/register", hb.RegisterFarmerHandler)
		api.POST("/login", hb.AuthenticateFarmerHandler)
		api.GET("/check-username", hb.CheckFarmerUsernameHandler)
		api.POST("/forgot-password", hb.ForgotFarmerPasswordHandler)
		api.POST("/verify-reset-code", hb.VerifyFarmerResetCodeHandler)
		api.POST("/reset-password", hb.ResetFarmerPasswordHandler)

		// Protected routes (require authentication)
		api.Use(middleware.JWTAuthFarmerMiddleware(func(id string) (bool, error) {
			record, err := hb.FarmerRepo.GetByID(id)
			if err != nil {
				return false, err
			}
			return record != nil, nil
		}))
		api.GET("/id/:id", hb.GetFarmerByIDHandler)
		api.PATCH("/update/:id", hb.UpdateFarmerHandler)
		api.PUT("/update-password/:id", hb.UpdateFarmerPasswordHandler)
		api.DELETE("/delete/:id", hb.DeleteFarmerHandler)
	}
}

// RegisterBuyerRoutes registers buyer account endpoints.
func RegisterBuyerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/buyers")
	{
		api.POST("/register", hb.RegisterBuyerHandler)
		api.POST("/login", hb.AuthenticateBuyerHandler)
		api.GET("/check-username", hb.CheckBuyerUsernameHandler)

		api.Use(middleware.JWTAuthBuyerMiddleware(func(id string) (bool, error) {
			record, err := hb.BuyerRepo.GetByID(id)
			if err != nil {
				return false, err
			}
			return record != nil, nil
		}))
		api.GET("/id/:id", hb.GetBuyerByIDHandler)
		api.PATCH("/update/:id", hb.UpdateBuyerHandler)
		api.PUT("/update-password/:id", hb.UpdateBuyerPasswordHandler)
		api.DELETE("/delete/:id", hb.DeleteBuyerHandler)
	}
}

// RegisterDriverRoutes registers delivery-driver account endpoints.
func RegisterDriverRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/deliverydrivers")
	{
		api.POST("/register", hb.RegisterDriverHandler)
		api.POST("/login", hb.AuthenticateDriverHandler)
		api.GET("/check-email", hb.CheckDriverEmailHandler)
		api.POST("/forgot-password", hb.ForgotDriverPasswordHandler)
		api.POST("/verify-reset-code", hb.VerifyDriverResetCodeHandler)
		api.POST("/reset-password", hb.ResetDriverPasswordHandler)

		api.Use(middleware.JWTAuthDriverMiddleware(func(id string) (bool, error) {
			record, err := hb.DriverRepo.GetByID(id)
			if err != nil {
				return false, err
			}
			return record != nil, nil
		}))
		api.GET("/id/:id", hb.GetDriverByIDHandler)
		api.PATCH("/update/:id", hb.UpdateDriverHandler)
		api.PUT("/update-password/:id", hb.UpdateDriverPasswordHandler)
		api.DELETE("/delete/:id", hb.DeleteDriverHandler)
	}
}

// RegisterBillingRoutes registers the card verification endpoint.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stripe")
	{
		api.POST("/verify-billing", hb.VerifyBillingHandler)
	}
}

// RegisterPlacesRoutes registers the address autocomplete proxy.
func RegisterPlacesRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/places")
	{
		api.GET("/autocomplete", hb.PlacesAutocompleteHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterFarmerRoutes(r, hb)
	RegisterBuyerRoutes(r, hb)
	RegisterDriverRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterPlacesRoutes(r, hb)
	RegisterHealthRoute(r)
}
