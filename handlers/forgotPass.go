package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type verifyResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newpassword" binding:"required"`
}

// ForgotFarmerPasswordHandler issues a reset code to the farmer's email.
func (h *FarmerHandler) ForgotFarmerPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.ForgotPassword(req.Email); err != nil {
		logger.Warn("Farmer password reset request failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "a reset code has been sent to your email"})
}

// VerifyFarmerResetCodeHandler checks a reset code without consuming it.
func (h *FarmerHandler) VerifyFarmerResetCodeHandler(c *gin.Context) {
	var req verifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.VerifyResetCode(req.Email, req.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reset code verified"})
}

// ResetFarmerPasswordHandler consumes a valid reset code and sets the new
// password.
func (h *FarmerHandler) ResetFarmerPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		logger.Warn("Farmer password reset failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password has been reset, please sign in with your new password"})
}

// ForgotDriverPasswordHandler issues a reset code to the driver's email.
func (h *DriverHandler) ForgotDriverPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.ForgotPassword(req.Email); err != nil {
		logger.Warn("Driver password reset request failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "a reset code has been sent to your email"})
}

// VerifyDriverResetCodeHandler checks a reset code without consuming it.
func (h *DriverHandler) VerifyDriverResetCodeHandler(c *gin.Context) {
	var req verifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.VerifyResetCode(req.Email, req.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "reset code verified"})
}

// ResetDriverPasswordHandler consumes a valid reset code and sets the new
// password.
func (h *DriverHandler) ResetDriverPasswordHandler(c *gin.Context) {
	logger := getLogger(c)

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request: " + err.Error()})
		return
	}

	if err := h.Service.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		logger.Warn("Driver password reset failed", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password has been reset, please sign in with your new password"})
}
