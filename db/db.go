package db

import (
	"log"
	"strings"

	"blog/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens the database configured in the environment.
// MySQL wins over PostgreSQL, which wins over SQLite.
func Init() {
	var dialector gorm.Dialector
	if config.MYSQL_DSN != "" {
		log.Println("Using MySQL database")
		dialector = mysql.Open(config.MYSQL_DSN)
	} else if config.POSTGRES_DSN != "" {
		log.Println("Using PostgreSQL database")
		dialector = postgres.Open(config.POSTGRES_DSN)
	} else {
		log.Printf("Using SQLite database: %s", config.SQLITE_FILE)
		dialector = sqlite.Open(SQLiteDSN(config.SQLITE_FILE))
	}
	if err := Open(dialector); err != nil {
		panic(err)
	}
}

// Open sets Instance to a new connection using the given dialector
func Open(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return err
	}
	Instance = db
	return nil
}

// SQLiteDSN enables foreign keys, which are needed for the ON DELETE rules
func SQLiteDSN(file string) string {
	if strings.Contains(file, "?") {
		return file + "&_foreign_keys=on"
	}
	return file + "?_foreign_keys=on"
}

func Close() {
	if Instance == nil {
		return
	}
	sqlDB, err := Instance.DB()
	if err != nil {
		log.Printf("Error getting underlying *sql.DB to close: %v", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}
