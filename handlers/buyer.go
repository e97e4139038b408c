package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agritrust/models"
	buyerSvc "agritrust/services/buyer"
)

// BuyerHandler exposes buyer account endpoints.
type BuyerHandler struct {
	Service buyerSvc.BuyerService
}

// RegisterBuyerHandler creates a buyer account from the single-step
// registration payload.
func (h *BuyerHandler) RegisterBuyerHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BuyerRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid buyer registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Buyer registration failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"buyer": resp, "token": resp.Token},
	})
}

// AuthenticateBuyerHandler signs a buyer in by username or email.
func (h *BuyerHandler) AuthenticateBuyerHandler(c *gin.Context) {
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
		logger.Warn("Buyer login failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"buyer": resp, "token": resp.Token}})
}

// CheckBuyerUsernameHandler reports whether a username is still free.
func (h *BuyerHandler) CheckBuyerUsernameHandler(c *gin.Context) {
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

// GetBuyerByIDHandler returns a buyer profile.
func (h *BuyerHandler) GetBuyerByIDHandler(c *gin.Context) {
	record, err := h.Service.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateBuyerHandler applies a partial profile update.
func (h *BuyerHandler) UpdateBuyerHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.BuyerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	record, err := h.Service.UpdateProfile(c.Param("id"), req)
	if err != nil {
		logger.Error("Buyer update failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// UpdateBuyerPasswordHandler changes the password after verifying the
// current one.
func (h *BuyerHandler) UpdateBuyerPasswordHandler(c *gin.Context) {
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

// DeleteBuyerHandler removes the account.
func (h *BuyerHandler) DeleteBuyerHandler(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
