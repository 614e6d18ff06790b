package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/IkingariSolorzano/gymcredit-be/controllers"
	"github.com/IkingariSolorzano/gymcredit-be/metrics"
	"github.com/IkingariSolorzano/gymcredit-be/middleware"
	"github.com/IkingariSolorzano/gymcredit-be/models"
	"github.com/IkingariSolorzano/gymcredit-be/services"
	"github.com/IkingariSolorzano/gymcredit-be/websocket"
)

// Dependencies is everything the HTTP layer needs from main.
type Dependencies struct {
	Logger      logrus.FieldLogger
	JWTSecret   string
	RateLimiter *middleware.RateLimiter
	Hub         *websocket.Hub

	// CORSOrigins lists the browser origins allowed to send credentials.
	// When empty any origin may call the API, without credentials.
	CORSOrigins []string
	// TrustedProxies are the proxy addresses or CIDRs whose forwarding
	// headers decide the client IP. Empty trusts no proxy.
	TrustedProxies []string

	Auth     *services.AuthService
	CheckIns *services.CheckInService
	Gyms     *services.GymService
	Accounts *services.AccountService
	Stats    *services.StatsService
}

func SetupRoutes(deps Dependencies) (*gin.Engine, error) {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AddExposeHeaders(middleware.RequestHeader)
	if len(deps.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = deps.CORSOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	if err := corsConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid CORS config: %w", err)
	}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	secret := []byte(deps.JWTSecret)

	// Initialize controllers
	authController := controllers.NewAuthController(deps.Auth)
	gymController := controllers.NewGymController(deps.Gyms)
	userController := controllers.NewUserController(deps.CheckIns, deps.Accounts)
	ownerController := controllers.NewOwnerController(deps.Auth, deps.Gyms, deps.Accounts, deps.Stats)
	partnerController := controllers.NewPartnerController(deps.Stats)

	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	auth := api.Group("/auth")
	if deps.RateLimiter != nil {
		auth.Use(deps.RateLimiter.Handler())
	}
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)
	}

	// Public routes
	api.GET("/gyms", gymController.ListGyms)
	api.GET("/plans", gymController.ListPlans)

	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware(secret))
	{
		user.POST("/check-in", userController.CheckIn)
		user.GET("/credits", userController.GetCredits)
		user.GET("/account", userController.GetAccount)
	}

	owner := api.Group("/owner")
	owner.Use(middleware.AuthMiddleware(secret))
	owner.Use(middleware.RequireRole(models.RoleOwner))
	{
		owner.POST("/create-partner", ownerController.CreatePartner)
		owner.POST("/create-gym", ownerController.CreateGym)
		owner.GET("/get-partners", ownerController.GetPartners)
		owner.GET("/stats", ownerController.GetStats)
		owner.GET("/all-checkins", ownerController.GetAllCheckIns)
		owner.POST("/grant-credits", ownerController.GrantCredits)
		owner.POST("/set-role", ownerController.SetRole)
	}

	partner := api.Group("/partner")
	partner.Use(middleware.AuthMiddleware(secret))
	partner.Use(middleware.RequireRole(models.RoleAdmin))
	{
		partner.GET("/stats", partnerController.GetStats)
	}

	if deps.Hub != nil {
		api.GET("/ws",
			middleware.TokenFromQuery(),
			middleware.AuthMiddleware(secret),
			middleware.RequireRole(models.RoleAdmin, models.RoleOwner),
			websocket.HandleWebSocket(deps.Hub),
		)
	}

	return r, nil
}
