package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crewledger/pkg/objstore"
)

var (
	cfg   Config
	store objstore.Store
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()
	cfg = loadConfig()

	// Support a lightweight migrate command: `./crewledger migrate`
	// runs AutoMigrate and seeding then exits. Useful for CI or manual setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	var err error
	store, err = newObjectStore(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to init object storage:", err)
	}

	r := gin.Default()
	r.Use(corsMiddleware())
	setupRoutes(r)

	// Local uploads are served straight from the upload directory.
	if cfg.StorageProvider == "local" {
		r.Static(cfg.PublicBaseURL, cfg.UploadBase)
	}

	r.Run(":" + cfg.Port)
}

func corsMiddleware() gin.HandlerFunc {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	return cors.New(c)
}

func newObjectStore(ctx context.Context, cfg Config) (objstore.Store, error) {
	switch cfg.StorageProvider {
	case "gcs":
		return objstore.NewGCS(ctx, cfg.GCSBucket)
	case "local":
		return objstore.NewLocal(cfg.UploadBase, cfg.PublicBaseURL)
	}
	return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
}
