package models

import (
	"log"

	"blog/config"
	"blog/db"
)

func Init() {
	if err := Migrate(); err != nil {
		panic(err)
	}
	if config.ADMIN_USERNAME != "" && config.ADMIN_PASSWORD != "" {
		if err := EnsureAdmin(config.ADMIN_USERNAME, config.ADMIN_PASSWORD); err != nil {
			log.Printf("Cannot create admin user %s: %v", config.ADMIN_USERNAME, err)
		}
	}
}

// Migrate creates or updates all tables, order matters for the foreign keys
func Migrate() error {
	return db.Instance.AutoMigrate(
		&User{},
		&Group{},
		&Post{},
		&Comment{},
		&Follow{},
	)
}

func postsPerPage() int {
	if config.POSTS_PER_PAGE <= 0 {
		return 10
	}
	return config.POSTS_PER_PAGE
}
