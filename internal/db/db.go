package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the session store. With DATABASE_URL set it uses postgres;
// otherwise it falls back to a local sqlite file (SESSION_DB, default
// sessions.db), which is enough for single-node deployments.
func Connect() {
	lg := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             100 * time.Millisecond, // log queries > 100ms
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: lg,
		})
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("Failed to get sql.DB: ", err)
		}
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

		DB = db
		log.Println("Connected to postgres session store")
		return
	}

	path := os.Getenv("SESSION_DB")
	if path == "" {
		path = "sessions.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: lg,
	})
	if err != nil {
		log.Fatal("Failed to open session store: ", err)
	}

	DB = db
	log.Println("Opened sqlite session store at " + path)
}
