package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodgram/internal/auth"
	"foodgram/internal/cache"
	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/handler"
	"foodgram/internal/media"
	"foodgram/internal/model"
	"foodgram/internal/repository"
	"foodgram/internal/router"
	"foodgram/internal/service"
)

// @title Foodgram API
// @version 1.0
// @description Recipe sharing API with favorites, shopping carts, subscriptions and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.Favorite{},
		&model.ShoppingCart{},
		&model.Subscription{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	imageStore, err := media.NewStore(cfg.MediaDir)
	if err != nil {
		log.Fatalf("media store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	favoriteRepo := repository.NewFavoriteRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	subRepo := repository.NewSubscriptionRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, subRepo)
	catalogService := service.NewCatalogService(tagRepo, ingredientRepo)
	recipeService := service.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, favoriteRepo, cartRepo, imageStore, cacheClient)
	annotator := service.NewAnnotator(favoriteRepo, cartRepo)
	shoppingService := service.NewShoppingListService(cartRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo, recipeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, subService, cfg.PageSize)
	recipeHandler := handler.NewRecipeHandler(recipeService, annotator, userService, shoppingService, cfg.PageSize)
	catalogHandler := handler.NewCatalogHandler(catalogService, cfg.PageSize)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		userRepo,
		authHandler,
		userHandler,
		recipeHandler,
		catalogHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
