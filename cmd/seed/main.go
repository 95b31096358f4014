package main

import (
	"log"

	"github.com/Baaaki/ride-server/internal/config"
	"github.com/Baaaki/ride-server/internal/database"
	"github.com/Baaaki/ride-server/internal/models"
	"github.com/Baaaki/ride-server/internal/utils"
	"github.com/google/uuid"
)

// Seeds one demo passenger and one demo driver so the app is usable
// right after a fresh migration.
func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	accounts := []struct {
		name     string
		email    string
		password string
		role     models.Role
	}{
		{"Demo Passenger", "passenger@demo.local", "Passenger123", models.RolePassenger},
		{"Demo Driver", "driver@demo.local", "Driver123", models.RoleDriver},
	}

	for _, a := range accounts {
		var existing models.User
		if err := database.DB.Where("email = ?", a.email).First(&existing).Error; err == nil {
			log.Println("Account already exists:", existing.Email)
			continue
		}

		passwordHash, err := utils.HashPassword(a.password)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		user := models.User{
			ID:           uuid.New(),
			Name:         a.name,
			Email:        a.email,
			PasswordHash: passwordHash,
			Role:         a.role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			log.Fatal("Failed to create account:", err)
		}

		log.Printf("Created %s account: %s", user.Role, user.Email)
	}
}
