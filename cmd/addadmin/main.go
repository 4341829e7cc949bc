package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"greengoals/config"
	"greengoals/models"
	"greengoals/store"
	"greengoals/utils"
)

// Bootstraps a super_admin account into the database file. Running it
// for an existing username resets that user's password and role.
func main() {
	username := flag.String("username", "", "Admin username (required)")
	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password (required)")
	configPath := flag.String("config", "config/config.yml", "Path to config file")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		fmt.Println("Error: username, email, and password are required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	hashed, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var adminID int
	err = st.Update(func(db *store.Database) error {
		if existing := db.UserByUsername(*username); existing != nil {
			existing.Password = hashed
			existing.Role = models.RoleSuperAdmin
			adminID = existing.ID
			return nil
		}

		admin := models.User{
			ID:                  db.NextUserID(),
			Username:            *username,
			Email:               *email,
			Password:            hashed,
			ActiveChallenges:    []int{},
			CompletedChallenges: []int{},
			Role:                models.RoleSuperAdmin,
			JoinedAt:            time.Now(),
		}
		db.Users = append(db.Users, admin)
		adminID = admin.ID
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin ready\n")
	fmt.Printf("   ID: %d\n", adminID)
	fmt.Printf("   Username: %s\n", *username)
	fmt.Printf("   Email: %s\n", *email)
}
