package main

import (
	"log"
	"os"
	"time"

	"github.com/cardtrack-dev/cardtrack/internal/config"
	"github.com/cardtrack-dev/cardtrack/internal/database"
	"github.com/cardtrack-dev/cardtrack/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Creates the schema, an admin account, and a few sample cards. The admin
// password must come from the environment; nothing here invents credentials.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the database")
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(adminHash),
		IsAdmin:      true,
	}
	if err := db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Printf("Admin user ready: %s", admin.Email)

	if os.Getenv("SEED_SAMPLE_DATA") == "" {
		return
	}

	userHash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash sample password: %v", err)
	}

	user := models.User{
		Name:         "Sample User",
		Email:        "user@cardtrack.dev",
		PasswordHash: string(userHash),
	}
	if err := db.Where(models.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Failed to create sample user: %v", err)
	}

	cards := []models.Card{
		{Title: "Set up project board", Description: "Agree on columns and labels", Date: time.Now(), Status: models.StatusDone, Priority: models.PriorityLow, UserID: user.ID},
		{Title: "Fix login timeout", Description: "Sessions expire too early", Date: time.Now(), Status: models.StatusToDo, Priority: models.PriorityUrgent, UserID: user.ID},
		{Title: "Write release notes", Date: time.Now(), Status: models.StatusToDo, Priority: models.PriorityMedium, UserID: user.ID},
	}
	for i := range cards {
		if err := db.Where(models.Card{Title: cards[i].Title, UserID: user.ID}).FirstOrCreate(&cards[i]).Error; err != nil {
			log.Fatalf("Failed to create sample card: %v", err)
		}
	}

	comment := models.Comment{
		Message: "Reproduced on staging, looking into it",
		UserID:  user.ID,
		CardID:  cards[1].ID,
	}
	if err := db.Where(models.Comment{UserID: user.ID, CardID: cards[1].ID}).FirstOrCreate(&comment).Error; err != nil {
		log.Fatalf("Failed to create sample comment: %v", err)
	}

	log.Println("Sample data seeded")
}
