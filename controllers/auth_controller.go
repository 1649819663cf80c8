package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"hotel-pms/config"
	"hotel-pms/middleware"
	"hotel-pms/models"
	"hotel-pms/utils"
)

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login issues a token signed with the same secret RequireAuth verifies with.
func Login(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload loginPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "username and password required")
			return
		}

		username := strings.TrimSpace(payload.Username)

		var admin models.Admin
		if err := config.DB.Where("username = ?", username).First(&admin).Error; err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(payload.Password)) != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := middleware.GenerateToken(secret, admin.ID, admin.Username, 12*time.Hour)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
			return
		}

		utils.JSONSuccess(c, http.StatusOK, gin.H{
			"token": token,
			"admin": gin.H{"id": admin.ID, "full_name": admin.FullName, "username": admin.Username},
		})
	}
}
