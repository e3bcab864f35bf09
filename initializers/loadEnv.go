package initializers

import (
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// LoadEnv reads .env into the process environment. A missing file is fine in
// deployed environments where the variables are set directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using system environment")
		return
	}
	log.Info(".env file loaded")
}
