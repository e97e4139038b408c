package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"agritrust/models"
	"agritrust/utils"
)

// accountLookup reports whether the account identified by the token still
// exists. Used as a fallback when the auth cache has no entry.
type accountLookup func(id string) (bool, error)

// requireAuth validates the bearer token, checks its role claim against
// the expected role, and confirms the account via the Redis auth cache
// with a repository fallback. The account ID is set in the context as
// "accountID".
func requireAuth(role string, lookup accountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		id, tokenRole, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}
		if tokenRole != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		if !accountKnown(role, id, tokenString, lookup) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "account not found"})
			return
		}

		c.Set("accountID", id)
		c.Next()
	}
}

// accountKnown consults the auth cache first and only hits the database
// on a miss, caching the token hash for subsequent requests.
func accountKnown(role, id, tokenString string, lookup accountLookup) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := utils.AuthCachePrefix + role + ":" + id
	tokenHash := utils.HashToken(tokenString)

	if client := utils.GetAuthCacheClient(); client != nil {
		if cached, err := client.Get(ctx, cacheKey).Result(); err == nil && cached == tokenHash {
			return true
		}
	}

	exists, err := lookup(id)
	if err != nil || !exists {
		return false
	}

	if client := utils.GetAuthCacheClient(); client != nil {
		client.Set(ctx, cacheKey, tokenHash, utils.TokenDuration)
	}
	return true
}

// JWTAuthFarmerMiddleware guards farmer endpoints.
func JWTAuthFarmerMiddleware(lookup accountLookup) gin.HandlerFunc {
	return requireAuth(models.RoleFarmer, lookup)
}

// JWTAuthBuyerMiddleware guards buyer endpoints.
func JWTAuthBuyerMiddleware(lookup accountLookup) gin.HandlerFunc {
	return requireAuth(models.RoleBuyer, lookup)
}

// JWTAuthDriverMiddleware guards delivery-driver endpoints.
func JWTAuthDriverMiddleware(lookup accountLookup) gin.HandlerFunc {
	return requireAuth(models.RoleDriver, lookup)
}
