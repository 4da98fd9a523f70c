package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripflow/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := Migrate(connectionPool); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	return connectionPool
}

// Migrate creates or updates the schema for every persisted model.
// PoiEmbedding needs the pgvector extension, so it migrates last and a
// failure there only disables similarity hints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.POI{},
		&db_models.Trip{},
		&db_models.ItineraryDay{},
		&db_models.DayPoi{},
		&db_models.Favorite{},
	); err != nil {
		return err
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("pgvector extension unavailable, similarity hints disabled: %v", err)
		return nil
	}
	if err := db.AutoMigrate(&db_models.PoiEmbedding{}); err != nil {
		log.Printf("embedding table migration failed, similarity hints disabled: %v", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
