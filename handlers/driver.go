package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritrust/models"
	driverSvc "agritrust/services/driver"
)

// DriverHandler exposes delivery-driver account endpoints.
type DriverHandler struct {
	Service driverSvc.DriverService
}

// RegisterDriverHandler creates a driver account. All ten vehicle and
// document images are resolved before anything is persisted.
func (h *DriverHandler) RegisterDriverHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.DriverRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid driver registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Driver registration failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"deliverydriver": resp, "token": resp.Token},
	})
}

// AuthenticateDriverHandler signs a driver in by email. Unverified
// accounts are refused with 403 until an administrator approves them.
func (h *DriverHandler) AuthenticateDriverHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Driver login failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"deliverydriver": resp, "token": resp.Token}})
}

// CheckDriverEmailHandler reports whether an email is still free.
func (h *DriverHandler) CheckDriverEmailHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email query parameter is required"})
		return
	}

	available, err := h.Service.CheckEmail(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": available})
}

// GetDriverByIDHandler returns a driver profile.
func (h *DriverHandler) GetDriverByIDHandler(c *gin.Context) {
	record, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateDriverHandler applies a partial profile update.
func (h *DriverHandler) UpdateDriverHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.DriverUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	record, err := h.Service.UpdateProfile(c.Param("id"), req)
	if err != nil {
		logger.Error("Driver update failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateDriverPasswordHandler changes the password after verifying the
// current one.
func (h *DriverHandler) UpdateDriverPasswordHandler(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentpassword" binding:"required"`
		NewPassword     string `json:"newpassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.UpdatePassword(c.Param("id"), req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}

// DeleteDriverHandler removes the account.
func (h *DriverHandler) DeleteDriverHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
