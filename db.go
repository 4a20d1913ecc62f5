package main

import (
	"log"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crewledger/models"
)

var db *gorm.DB

func initDB() {
	var err error
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DBDSN
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		if cfg.DBDSN == "" {
			log.Fatal("DB_DSN is not set. This service requires a Postgres DSN in DB_DSN (or DB_DRIVER=sqlite).")
		}
		db, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	if cfg.AutoMigrate {
		migrateAll()
	}
	seedAdmin()
}

// migrateAll runs AutoMigrate per model so a failure on one doesn't block the
// others; permission errors are logged and ignored.
func migrateAll() {
	for _, m := range []any{
		&models.AuthUser{},
		&models.AccountSettings{},
		&models.Customer{},
		&models.Employee{},
		&models.Product{},
		&models.Job{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Payment{},
		&models.Contract{},
		&models.Expense{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("migration warning (%T): %v", m, err)
		}
	}
}

// seedAdmin ensures the configured admin account exists as a normal row.
// There is no special-cased login path; the admin authenticates like anyone.
func seedAdmin() {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	var count int64
	db.Model(&models.AuthUser{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash admin password: %v", err)
		return
	}
	admin := models.AuthUser{Email: cfg.AdminEmail, PasswordHash: hash}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
		return
	}
	settings := models.AccountSettings{UserID: admin.ID, CompanyName: "My Company", Email: admin.Email}
	if err := db.Create(&settings).Error; err != nil {
		log.Printf("failed to seed admin settings: %v", err)
	}
	logg.WithFields(logrus.Fields{"email": cfg.AdminEmail}).Info("seeded admin account")
}

// isPostgres reports whether the active dialect supports row locking hints.
func isPostgres() bool {
	return db.Dialector.Name() == "postgres"
}
