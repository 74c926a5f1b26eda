package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dwincahya/hausjogja-backend/internal/database"
	"github.com/dwincahya/hausjogja-backend/internal/handlers"
	"github.com/dwincahya/hausjogja-backend/internal/models"
)

// Seeds the database with the admin account and the HausJogja menu.
// Safe to run repeatedly: everything upserts on its unique key.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedMenu(db); err != nil {
		log.Fatalf("Failed to seed menu: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin(db *gorm.DB) error {
	var password models.Password
	if err := password.Set("admin123"); err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@hausjogja.com",
		Password: password.Hash,
		Role:     models.RoleAdmin,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&admin).Error
}

type seedProduct struct {
	name  string
	price float64
}

func seedMenu(db *gorm.DB) error {
	// Top-level menus and their subcategories.
	menu := map[string][]string{
		"Menu Haus":         {"Menu Klasik", "Menu Choco", "Menu Boba"},
		"Menu Haus Panas":   {"Menu Panas"},
		"Menu Haus Makanan": {"Roti Bakar", "Roti Maryam", "Menu Kukus"},
	}

	categoryIDs := map[string]uint{}
	upsertCategory := func(name string, parentID *uint) error {
		cat := models.Category{
			Name:     name,
			Slug:     handlers.Slugify(name),
			ParentID: parentID,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&cat).Error
		if err != nil {
			return err
		}
		// Re-read so a pre-existing row still yields its id.
		if err := db.Where("slug = ?", cat.Slug).First(&cat).Error; err != nil {
			return err
		}
		categoryIDs[name] = cat.ID
		return nil
	}

	for parent, children := range menu {
		if err := upsertCategory(parent, nil); err != nil {
			return err
		}
		parentID := categoryIDs[parent]
		for _, child := range children {
			if err := upsertCategory(child, &parentID); err != nil {
				return err
			}
		}
	}

	products := map[string][]seedProduct{
		"Menu Klasik": {
			{"Thai Tea Small", 6000},
			{"Thai Tea Large", 9000},
			{"Green Thai Tea Small", 8000},
			{"Green Thai Tea Large", 10000},
			{"Ovaltine Medium", 12000},
			{"Ovaltine Large", 13000},
			{"Taro Medium", 12000},
			{"Taro Large", 13000},
			{"Oreo Medium", 12000},
			{"Oreo Large", 13000},
			{"MILO Green Tea Medium", 12000},
			{"MILO Green Tea Large", 13000},
		},
		"Menu Choco": {
			{"Choco Lava MILO Medium", 13000},
			{"Choco Lava MILO Large", 14000},
			{"Choco Hazelnut Medium", 13000},
			{"Choco Hazelnut Large", 14000},
			{"Choco Avocado Medium", 14000},
			{"Choco Avocado Large", 15000},
		},
		"Menu Boba": {
			{"Boba Brown Sugar Fresh Milk Medium", 14000},
			{"Boba Brown Sugar Fresh Milk Large", 17000},
			{"Boba Brown Sugar Milk Tea Medium", 14000},
			{"Boba Brown Sugar Milk Tea Large", 17000},
		},
		"Menu Panas": {
			{"Hot Lemon Tea", 10000},
			{"Hot Thai Tea", 11000},
			{"Hot Coffee", 14000},
			{"Hot Ovaltine", 14000},
			{"Hot Choco Lava MILO", 14000},
		},
		"Roti Bakar": {
			{"Bakar Coklat", 24000},
			{"Bakar Keju", 25000},
			{"Bakar Coklat Keju", 27000},
		},
		"Roti Maryam": {
			{"Maryam Coklat", 13000},
			{"Maryam Keju", 14000},
			{"Maryam Coklat Keju", 16000},
		},
		"Menu Kukus": {
			{"Kukus Coklat", 10000},
			{"Kukus Keju", 11000},
			{"Kukus Coklat Keju", 14000},
		},
	}

	for categoryName, items := range products {
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			return fmt.Errorf("unknown seed category %q", categoryName)
		}
		for _, item := range items {
			slug := handlers.Slugify(item.name)
			description := fmt.Sprintf("Produk %s", item.name)
			image := fmt.Sprintf("%s.jpg", slug)
			product := models.Product{
				Name:        item.name,
				Slug:        slug,
				Price:       item.price,
				Description: &description,
				Image:       &image,
				IsAvailable: true,
				CategoryID:  categoryID,
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "slug"}},
				DoNothing: true,
			}).Create(&product).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}
