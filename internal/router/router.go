package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"foodgram/docs"
	"foodgram/internal/auth"
	"foodgram/internal/config"
	"foodgram/internal/handler"
	"foodgram/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	catalogHandler *handler.CatalogHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Media files are served straight from disk; a CDN would front this
	// in production.
	e.Static("/media", cfg.MediaDir)

	api := e.Group("/api")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public reads. OptionalAuth resolves the requester when a token is
	// present so per-user annotation flags can be computed; it never
	// rejects anonymous requests.
	public := api.Group("", auth.OptionalAuth(jwtService))
	public.GET("/tags", catalogHandler.ListTags)
	public.GET("/tags/:id", catalogHandler.GetTag)
	public.GET("/ingredients", catalogHandler.ListIngredients)
	public.GET("/ingredients/:id", catalogHandler.GetIngredient)
	public.GET("/recipes", recipeHandler.List)
	public.GET("/recipes/:id", recipeHandler.Get)
	public.GET("/users", userHandler.List)
	public.GET("/users/:id", userHandler.Get)

	// Secured routes (require JWT authentication, blocked users rejected)
	secured := api.Group("",
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(cfg.JWTSecret),
			TokenLookup: "header:" + echo.HeaderAuthorization,
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
			SuccessHandler: func(c echo.Context) {
				if token, ok := c.Get("user").(*jwt.Token); ok {
					if claims, ok := token.Claims.(*auth.Claims); ok {
						auth.SetCurrentUserID(c, claims.UserID)
					}
				}
			},
		}),
		auth.BlockedGuard(userRepo.FindByID),
	)

	secured.GET("/users/me", userHandler.Me)
	secured.POST("/users/set_password", userHandler.SetPassword)
	secured.GET("/users/subscriptions", userHandler.Subscriptions)
	secured.POST("/users/:id/subscribe", userHandler.Subscribe)
	secured.DELETE("/users/:id/subscribe", userHandler.Unsubscribe)

	secured.POST("/recipes", recipeHandler.Create)
	secured.PATCH("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)
	secured.POST("/recipes/:id/favorite", recipeHandler.Favorite)
	secured.DELETE("/recipes/:id/favorite", recipeHandler.Unfavorite)
	secured.POST("/recipes/:id/shopping_cart", recipeHandler.AddToCart)
	secured.DELETE("/recipes/:id/shopping_cart", recipeHandler.RemoveFromCart)
	secured.GET("/recipes/download_shopping_cart", recipeHandler.DownloadShoppingCart)

	secured.POST("/tags", catalogHandler.CreateTag)
	secured.POST("/ingredients", catalogHandler.CreateIngredient)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
