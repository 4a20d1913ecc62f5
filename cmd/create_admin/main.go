package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crewledger/models"
)

// Creates (or reports) an account directly in the database. Useful for
// bootstrapping the first login on a fresh deployment.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_admin <email> <password>")
		os.Exit(2)
	}
	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	password := os.Args[2]
	if len(password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	var dial gorm.Dialector
	if os.Getenv("DB_DRIVER") == "sqlite" {
		dial = sqlite.Open(dsn)
	} else {
		dial = postgres.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	var existing models.AuthUser
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("account %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.AuthUser{Email: email, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create account: %v", err)
	}
	settings := models.AccountSettings{UserID: user.ID, CompanyName: "My Company", Email: email}
	if err := db.Create(&settings).Error; err != nil {
		log.Printf("warning: failed to create account settings: %v", err)
	}
	fmt.Printf("created account %s id=%d\n", email, user.ID)
}
