package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quizace/quizace-backend/internal/dto"
	"github.com/quizace/quizace-backend/internal/model"
)

const userContextKey = "user"

// Claims is the JWT payload issued by the identity provider fronting this
// service.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token and stores the authenticated user in the
// request context.
func Auth(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		role, ok := model.ParseRole(claims.Role)
		if !ok || claims.UserID == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Token carries no valid identity"})
			return
		}

		ctx.Set(userContextKey, &model.User{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     role,
		})
		ctx.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after Auth.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user := CurrentUser(ctx)
		if user == nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}
		ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient role"})
	}
}

// CurrentUser returns the authenticated user set by Auth, or nil.
func CurrentUser(ctx *gin.Context) *model.User {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
