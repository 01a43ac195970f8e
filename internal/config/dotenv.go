package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envFiles in load order; .env.local carries per-machine overrides and
// is expected to stay out of version control.
var envFiles = []string{".env.local", ".env"}

// LoadDotEnv loads the service's env files. godotenv never overwrites a
// variable that is already set, so the real environment beats
// .env.local, which beats .env. Returns the files actually loaded.
func LoadDotEnv() []string {
	var loaded []string
	for _, name := range envFiles {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err == nil {
			loaded = append(loaded, name)
		}
	}
	return loaded
}
