package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/response"
)

var testSecret = []byte("middleware-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, method jwt.SigningMethod, secret []byte, userID uint, role models.UserRole, expires time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(method, Claims{
		UserID: userID,
		Mobile: "+8801712345678",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func protectedRouter(roles ...models.UserRole) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{TokenFromQuery(), AuthMiddleware(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"userId": p.UserID, "role": p.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.SigningMethodHS256, testSecret, 7, models.RoleUser, time.Now().Add(time.Hour))

	w := get(r, "/protected", token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID uint            `json:"userId"`
		Role   models.UserRole `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, uint(7), body.UserID)
	require.Equal(t, models.RoleUser, body.Role)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	r := protectedRouter()
	future := time.Now().Add(time.Hour)

	cases := map[string]string{
		"missing":      "",
		"garbage":      "not-a-token",
		"wrong secret": signToken(t, jwt.SigningMethodHS256, []byte("other"), 7, models.RoleUser, future),
		"wrong alg":    signToken(t, jwt.SigningMethodHS384, testSecret, 7, models.RoleUser, future),
		"expired":      signToken(t, jwt.SigningMethodHS256, testSecret, 7, models.RoleUser, time.Now().Add(-time.Minute)),
		"no subject":   signToken(t, jwt.SigningMethodHS256, testSecret, 0, models.RoleUser, future),
	}
	for name, token := range cases {
		w := get(r, "/protected", token)
		require.Equal(t, http.StatusUnauthorized, w.Code, name)

		var body response.ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), name)
		require.Equal(t, "UNAUTHORIZED", string(body.Code), name)
	}
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter(models.RoleOwner)
	future := time.Now().Add(time.Hour)

	w := get(r, "/protected", signToken(t, jwt.SigningMethodHS256, testSecret, 1, models.RoleOwner, future))
	require.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/protected", signToken(t, jwt.SigningMethodHS256, testSecret, 2, models.RoleAdmin, future))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = get(r, "/protected", signToken(t, jwt.SigningMethodHS256, testSecret, 3, models.RoleUser, future))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestTokenFromQuery(t *testing.T) {
	r := protectedRouter(models.RoleAdmin, models.RoleOwner)
	token := signToken(t, jwt.SigningMethodHS256, testSecret, 4, models.RoleAdmin, time.Now().Add(time.Hour))

	w := get(r, "/protected?token="+token, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(quietLogger()))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := get(r, "/ping", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, w.Header().Get(RequestHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestHeader, "req-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "req-123", w.Header().Get(RequestHeader))
}
