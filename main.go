package main

import (
	"context"
	"log"

	"github.com/baptisteba/PassChef/config"
	"github.com/baptisteba/PassChef/db"
	"github.com/baptisteba/PassChef/handlers"
	"github.com/baptisteba/PassChef/routes"
	"github.com/baptisteba/PassChef/services"
	"github.com/baptisteba/PassChef/storage"
)

func main() {
	cfg := config.Load()

	database, err := db.NewDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	blobs, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to initialize upload storage:", err)
	}

	sm := services.NewServiceManager(database, blobs, cfg)
	if err := sm.AuthenticationService.EnsureInitialAdmin(context.Background(), cfg.InitialAdminName, cfg.InitialAdminEmail, cfg.InitialAdminPassword); err != nil {
		log.Fatal("Failed to seed initial admin:", err)
	}
	hm := handlers.NewHandlerManager(sm)
	r := routes.SetupRoutes(hm, cfg)

	log.Printf("PassChef API starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
