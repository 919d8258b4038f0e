package session

import (
	"log"

	"github.com/AgriVista/acreage-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Session{}); err != nil {
		log.Fatal("Failed to auto-migrate sessions table", err)
	}
}
