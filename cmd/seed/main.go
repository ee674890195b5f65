package main

import (
	"log"
	"os"

	"doc-assistant-be/internal/model"
	"doc-assistant-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "password123"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	color.Cyan("Seeding demo organization\n")

	if err := db.Transaction(seed); err != nil {
		color.Red("Seed failed: %v", err)
		os.Exit(1)
	}

	color.Green("Done. Sign in as admin@acme.test or member@acme.test with password %q", demoPassword)
}

func seed(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hash)

	org := model.Organization{Name: "Acme Corp"}
	if err := tx.Where(model.Organization{Name: org.Name}).FirstOrCreate(&org).Error; err != nil {
		return err
	}
	color.Yellow("Organization: %s (id %d)", org.Name, org.Id)

	users := []struct {
		email, name, role string
	}{
		{"admin@acme.test", "Acme Admin", "ADMIN"},
		{"member@acme.test", "Acme Member", "MEMBER"},
	}

	var adminId uint
	for _, u := range users {
		user := model.User{Email: u.email, FullName: u.name, PasswordHash: &h, ActiveOrganizationId: &org.Id}
		if err := tx.Where(model.User{Email: u.email}).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		membership := model.Membership{UserId: user.Id, OrganizationId: org.Id}
		if err := tx.Where(membership).Attrs(model.Membership{Role: u.role}).FirstOrCreate(&membership).Error; err != nil {
			return err
		}
		if u.role == "ADMIN" {
			adminId = user.Id
		}
		color.Yellow("User: %s (%s)", u.email, membership.Role)
	}

	doc := model.Document{
		Title:          "Employee Handbook",
		OrganizationId: org.Id,
		CreatedById:    &adminId,
		Content: "Working hours are 9:00 to 17:00, Monday to Friday.\n" +
			"Annual leave is 25 days per calendar year.\n" +
			"Expense reports must be submitted within 30 days.",
	}
	if err := tx.Where(model.Document{Title: doc.Title, OrganizationId: org.Id}).FirstOrCreate(&doc).Error; err != nil {
		return err
	}
	color.Yellow("Document: %s (id %d)", doc.Title, doc.Id)

	return nil
}
