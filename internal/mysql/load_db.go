// Package mysql opens the relational store backing accounts and sessions.
package mysql

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

// schemaFiles are applied in order on startup. Users come first because
// sessions carry a foreign key onto them.
var schemaFiles = []string{
	"./internal/mysql/users.sql",
	"./internal/mysql/sessions.sql",
}

// LoadDB connects to the MySQL instance named by MYSQL_DSN and makes sure
// the auth tables exist. Startup is pointless without the store, so any
// failure here is fatal.
func LoadDB() *sql.DB {
	db, err := sql.Open("mysql", os.Getenv("MYSQL_DSN"))
	if err != nil {
		log.Fatal("mysql: bad DSN:", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatal("mysql: cannot reach the auth store:", err)
	}
	if err := applySchema(db); err != nil {
		log.Fatal("mysql: schema bootstrap failed:", err)
	}
	return db
}

func applySchema(db *sql.DB) error {
	for _, file := range schemaFiles {
		query, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if _, err := db.Exec(string(query)); err != nil {
			return fmt.Errorf("apply %s: %w", file, err)
		}
	}
	return nil
}
