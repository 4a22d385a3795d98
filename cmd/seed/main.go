// Command seed loads reference data (ingredients, tags) from CSV files
// and creates demo accounts with sample recipes. Safe to re-run: every
// insert is a first-or-create.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/db"
	"foodgram/internal/model"
	"foodgram/internal/repository"
)

func main() {
	ingredientsPath := flag.String("ingredients", "ingredients.csv", "path to ingredients CSV (name,measurement_unit)")
	tagsPath := flag.String("tags", "tags.csv", "path to tags CSV (name,color,slug)")
	withDemo := flag.Bool("demo", false, "also create demo users and recipes")
	flag.Parse()

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
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

	ctx := context.Background()
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)

	n, err := loadIngredients(ctx, ingredientRepo, *ingredientsPath)
	if err != nil {
		log.Fatalf("load ingredients: %v", err)
	}
	log.Printf("ingredients loaded: %d", n)

	n, err = loadTags(ctx, tagRepo, *tagsPath)
	if err != nil {
		log.Fatalf("load tags: %v", err)
	}
	log.Printf("tags loaded: %d", n)

	if *withDemo {
		if err := seedDemo(ctx, gormDB); err != nil {
			log.Fatalf("seed demo data: %v", err)
		}
		log.Println("demo users and recipes created")
	}
}

// loadIngredients reads "name,measurement_unit" rows, skipping the header.
func loadIngredients(ctx context.Context, repo repository.IngredientRepository, path string) (int, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, row := range rows {
		ingredient := &model.Ingredient{Name: row[0], MeasurementUnit: row[1]}
		if err := repo.FirstOrCreate(ctx, ingredient); err != nil {
			return count, fmt.Errorf("ingredient %q: %w", row[0], err)
		}
		count++
	}
	return count, nil
}

// loadTags reads "name,color,slug" rows, skipping the header.
func loadTags(ctx context.Context, repo repository.TagRepository, path string) (int, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, row := range rows {
		tag := &model.Tag{Name: row[0], Color: row[1], Slug: row[2]}
		if err := repo.FirstOrCreate(ctx, tag); err != nil {
			return count, fmt.Errorf("tag %q: %w", row[2], err)
		}
		count++
	}
	return count, nil
}

func readCSV(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fields
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// First row is the header
	return records[1:], nil
}

func seedDemo(ctx context.Context, gormDB *gorm.DB) error {
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)

	admin, err := ensureUser(ctx, userRepo, model.User{
		Email:     "admin@example.com",
		Username:  "admin",
		FirstName: "Admin",
		LastName:  "Admin",
	}, "adminpassword")
	if err != nil {
		return err
	}

	tags, err := tagRepo.List(ctx)
	if err != nil {
		return err
	}
	ingredients, _, err := ingredientRepo.List(ctx, "", 0, 2)
	if err != nil {
		return err
	}
	if len(ingredients) < 2 {
		return errors.New("need at least two ingredients loaded before seeding demo recipes")
	}

	recipe := &model.Recipe{
		AuthorID:    admin.ID,
		Name:        "Admin's recipe",
		Image:       "recipes/demo.jpg",
		Text:        "A demo recipe created by the seed command.",
		CookingTime: 10,
		Tags:        tags,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: ingredients[0].ID, Amount: 100},
			{IngredientID: ingredients[1].ID, Amount: 200},
		},
	}
	var existing int64
	if err := gormDB.WithContext(ctx).Model(&model.Recipe{}).
		Where("author_id = ? AND name = ?", admin.ID, recipe.Name).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		if err := recipeRepo.Create(ctx, recipe); err != nil {
			return err
		}
	}
	return nil
}

func ensureUser(ctx context.Context, repo repository.UserRepository, user model.User, password string) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hashed)
	if err := repo.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
