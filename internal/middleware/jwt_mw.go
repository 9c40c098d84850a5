package middleware

import (
	"errors"
	"net/http"
	"strings"

	"travel_fleet/internal/model"
	"travel_fleet/internal/repository"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthUserKey is the context key holding the resolved *model.User.
const AuthUserKey = "authUser"

// JWTAuthMiddleware verifies the bearer token and resolves it to a user
// record, which is stored in the request context for downstream gates and
// handlers.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Access denied. No token provided")
			return
		}

		// "Bearer <token>"; a header without the prefix is treated as the
		// raw token.
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			utils.AbortError(c, http.StatusUnauthorized, "Access denied. Invalid token format")
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				utils.AbortError(c, http.StatusUnauthorized, "Access denied. Token has expired. Please log in again")
			case errors.Is(err, jwt.ErrTokenNotValidYet):
				utils.AbortError(c, http.StatusUnauthorized, "Access denied. Token not yet valid")
			case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
				utils.AbortError(c, http.StatusUnauthorized, "Access denied. Invalid token")
			default:
				utils.AbortError(c, http.StatusUnauthorized, "Access denied. Token verification failed")
			}
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Access denied. Invalid token")
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Access denied. Token verification failed")
			return
		}
		if user == nil {
			// Token minted before the account was deleted.
			utils.AbortError(c, http.StatusUnauthorized, "Access denied. User not found")
			return
		}

		c.Set(AuthUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by JWTAuthMiddleware, if any.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
