package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/response"
)

const principalKey = "principal"

type Claims struct {
	UserID uint            `json:"userId"`
	Mobile string          `json:"mobile"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the verified caller of a request.
type Principal struct {
	UserID uint
	Mobile string
	Role   models.UserRole
}

func (p Principal) HasRole(roles ...models.UserRole) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ParseToken verifies an HS256 session token and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AuthMiddleware builds the request Principal from the bearer token.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			LoggerFrom(c).WithError(err).Debug("Token validation failed")
			response.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Mobile: claims.Mobile, Role: claims.Role})
		c.Next()
	}
}

// TokenFromQuery copies a ?token= value into the Authorization header.
// Browsers cannot set headers on websocket upgrades.
func TokenFromQuery() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !p.HasRole(roles...) {
			response.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
