package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritrust/models"
	farmerSvc "agritrust/services/farmer"
)

// FarmerHandler exposes farmer account endpoints.
type FarmerHandler struct {
	Service farmerSvc.FarmerService
}

// RegisterFarmerHandler accepts the assembled wizard payload and creates
// the account.
func (h *FarmerHandler) RegisterFarmerHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.FarmerRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid farmer registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Farmer registration failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"farmer": resp, "token": resp.Token},
	})
}

// AuthenticateFarmerHandler signs a farmer in by username or email.
func (h *FarmerHandler) AuthenticateFarmerHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Handle   string `json:"handle"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	handle := req.Handle
	if handle == "" {
		handle = req.Username
	}
	if handle == "" {
		handle = req.Email
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), handle, req.Password)
	if err != nil {
		logger.Warn("Farmer login failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"farmer": resp, "token": resp.Token}})
}

// CheckFarmerUsernameHandler reports whether a username is still free.
func (h *FarmerHandler) CheckFarmerUsernameHandler(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username query parameter is required"})
		return
	}

	available, err := h.Service.CheckUsername(username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "available": available})
}

// GetFarmerByIDHandler returns a farmer profile.
func (h *FarmerHandler) GetFarmerByIDHandler(c *gin.Context) {
	record, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateFarmerHandler applies a partial profile update.
func (h *FarmerHandler) UpdateFarmerHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.FarmerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	record, err := h.Service.UpdateProfile(c.Param("id"), req)
	if err != nil {
		logger.Error("Farmer update failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateFarmerPasswordHandler changes the password after verifying the
// current one.
func (h *FarmerHandler) UpdateFarmerPasswordHandler(c *gin.Context) {
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

// DeleteFarmerHandler removes the account.
func (h *FarmerHandler) DeleteFarmerHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
