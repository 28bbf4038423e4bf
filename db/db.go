package db

import (
	"fmt"
	"log"
	"os"

	"toolify/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	err = Migrate(DB)
	if err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tool{},
		&models.RemovedTool{},
		&models.JobSite{},
		&models.CheckOutEntry{},
		&models.CheckInEntry{},
		&models.Notification{},
	); err != nil {
		return err
	}

	// 流水按工具倒序翻页最常见
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_tool_ts_desc
	  ON %s (tool_id, timestamp DESC);
	`, models.CheckOutHistoryTable, models.CheckOutHistoryTable)).Error; err != nil {
		return err
	}

	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_tool_ts_desc
	  ON %s (tool_id, timestamp DESC);
	`, models.CheckInHistoryTable, models.CheckInHistoryTable)).Error; err != nil {
		return err
	}

	// 未读通知的角标查询
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_unread_ts_desc
	  ON %s (timestamp DESC)
	  WHERE status = 'Unread';
	`, models.NotificationTable, models.NotificationTable)).Error; err != nil {
		return err
	}

	return nil
}
