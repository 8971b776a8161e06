package main

import (
	"fmt"
	"log"

	"cramazon/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedDatabase truncates the three tables and repopulates fixed fixture
// rows. Setup utility for local development and demos, opt-in via
// SEED_DB; not part of the runtime request path.
func seedDatabase(db *gorm.DB) error {
	users := []models.User{
		{ID: 1, Email: "jurgenhasmeta@email.com", FullName: "Jurgen Hasmeta", Password: mustHash("jurgen123")},
		{ID: 2, Email: "ryder@email.com", FullName: "Ryder Ferrell", Password: mustHash("ryder123")},
		{ID: 3, Email: "person3@email.com", FullName: "Alvaro Wyatt", Password: mustHash("alvaro123")},
	}

	items := []models.Item{
		{ID: 1, Name: "Animal Pak Powder", Price: 55, Image: "/assets/images/animal-pak-powder.png", Stock: 7, Type: "multivitamins",
			Description: "The True Original since 1983, developed to meet the needs of the most extreme athletes and training sessions."},
		{ID: 2, Name: "Artichoke Premium", Price: 10, Image: "/assets/images/animal-pak-powder.png", Stock: 5, Type: "multivitamins",
			Description: "High quality artichoke extracts with 5% standardized cynarin content, supporting detoxification."},
		{ID: 3, Name: "Argi Power 1500 Mega Caps", Price: 30.5, Image: "/assets/images/animal-pak-powder.png", Stock: 5, Type: "aminoacids",
			Description: "Mega capsules with 1500 mg L-Arginine of the highest pharmaceutical quality per capsule."},
		{ID: 4, Name: "Beta-Alanine Xplode Powder", Price: 28, Image: "/assets/images/animal-pak-powder.png", Stock: 5, Type: "aminoacids",
			Description: "Powder with perfect solubility containing high quality Beta-Alanine enriched with vitamin B6 and L-Histidine."},
		{ID: 5, Name: "Dymatize Elite 100 % Whey", Price: 65.35, Image: "/assets/images/animal-pak-powder.png", Stock: 15, Type: "proteins",
			Description: "High value whey protein for muscle growth after intense workouts or daily protein intake."},
	}

	orders := []models.Order{
		{ID: 1, Quantity: 2, UserID: 1, ItemID: 2},
		{ID: 2, Quantity: 4, UserID: 1, ItemID: 3},
		{ID: 3, Quantity: 3, UserID: 3, ItemID: 1},
		{ID: 4, Quantity: 3, UserID: 3, ItemID: 2},
		{ID: 5, Quantity: 1, UserID: 2, ItemID: 2},
		{ID: 6, Quantity: 3, UserID: 2, ItemID: 3},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Orders first: they reference the other two tables.
		if err := tx.Where("1 = 1").Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to truncate orders: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to truncate users: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Item{}).Error; err != nil {
			return fmt.Errorf("failed to truncate items: %w", err)
		}

		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to seed items: %w", err)
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}

		log.Printf("Seeded %d users, %d items, %d orders", len(users), len(items), len(orders))
		return nil
	})
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
