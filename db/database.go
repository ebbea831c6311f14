package db

import (
	"fmt"
	"log"

	"github.com/baptisteba/PassChef/config"
	"github.com/baptisteba/PassChef/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// AllModels drives both automigration and the admin reset operation. The
// users table is deliberately last: reset skips it to preserve accounts.
func AllModels() []interface{} {
	return []interface{}{
		&models.Group{},
		&models.GroupEvent{},
		&models.GroupAccess{},
		&models.Site{},
		&models.SiteEvent{},
		&models.SiteExternalLink{},
		&models.Document{},
		&models.DocumentComment{},
		&models.ExternalTool{},
		&models.WifiDeployment{},
		&models.DeploymentComment{},
		&models.DeploymentTask{},
		&models.ArchivedWifiDeployment{},
		&models.ArchivedDeploymentComment{},
		&models.ArchivedDeploymentTask{},
		&models.WANDeployment{},
		&models.WANHistoryEntry{},
		&models.User{},
	}
}

func NewDB() (*gorm.DB, error) {
	host := config.GetEnv("DB_HOST", "localhost")
	port := config.GetEnvInt("DB_PORT", 5432)
	user := config.GetEnv("DB_USER", "postgres")
	password := config.GetEnv("DB_PASSWORD", "root")
	dbname := config.GetEnv("DB_NAME", "passchef")
	sslmode := config.GetEnv("DB_SSL_MODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	if err := database.AutoMigrate(AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	log.Printf("Connected to database: %s", dbname)
	return database, nil
}
