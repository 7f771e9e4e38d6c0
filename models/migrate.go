package models

import (
	"log"

	"labchat/config"
)

// Migrate 自动迁移
func Migrate() {
	if err := config.DB.AutoMigrate(&User{}, &Message{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
