package main

import (
	"errors"
	"flag"
	"fmt"

	"campus-hub/pkg/config"
	"campus-hub/pkg/database"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seedUser struct {
	name      string
	email     string
	withToken bool
}

var testUsers = []seedUser{
	{"Alice", "alice@campus.test", true},
	{"Bob", "bob@campus.test", true},
	{"Charlie", "charlie@campus.test", false},
	{"Diana", "diana@campus.test", true},
}

func main() {
	var tokenPrefix string
	flag.StringVar(&tokenPrefix, "token-prefix", "seed-token", "prefix for generated FCM tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}
	defer database.Close(db)

	if err := seedUsers(db, tokenPrefix, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

// seedUsers inserts the test users once. Users without a token exercise the
// "no token" path of the dispatcher.
func seedUsers(db *gorm.DB, tokenPrefix string, log *logger.Logger) error {
	for _, data := range testUsers {
		var existing models.User
		err := db.Where("email = ?", data.email).First(&existing).Error
		if err == nil {
			log.Info("User %s already exists (%s), skipping", data.name, existing.ID)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up %s: %w", data.email, err)
		}

		user := &models.User{Name: data.name, Email: data.email}
		if data.withToken {
			token := fmt.Sprintf("%s-%s", tokenPrefix, uuid.New().String())
			user.FCMToken = &token
		}

		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", data.name, err)
		}
		log.Info("Created user: %s (%s), token=%t", user.Name, user.ID, user.HasToken())
	}
	return nil
}
