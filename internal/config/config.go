package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by the START env var and fails fast on any
// missing required setting. MYSQL_DSN must include parseTime=true so session
// timestamps scan into time.Time.
func Load() {
	if err := godotenv.Load(os.Getenv("START")); err != nil {
		log.Fatalf("Env file not found")
	}

	for _, key := range []string{"MYSQL_DSN", "MONGO_URI", "MONGO_DB_NAME"} {
		if os.Getenv(key) == "" {
			log.Fatalf("%s is not set in environment", key)
		}
	}
}
