package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPlayer    = "QMAZE_PLAYER"
	EnvDB        = "QMAZE_DB"
	EnvSSHAddr   = "QMAZE_SSH_ADDR"
	EnvQuestions = "QMAZE_QUESTIONS"
)

// Env holds values that override CLI defaults.
// Empty fields mean "not set".
type Env struct {
	Player    string
	DBPath    string
	SSHAddr   string
	Questions string
}

// LoadEnv reads an optional .env file (or the given files) into the process
// environment and returns the qmaze variables. Variables already set in the
// environment win over the file. A missing .env is not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return readEnv(), err
		}
	}
	return readEnv(), nil
}

func readEnv() Env {
	return Env{
		Player:    os.Getenv(EnvPlayer),
		DBPath:    os.Getenv(EnvDB),
		SSHAddr:   os.Getenv(EnvSSHAddr),
		Questions: os.Getenv(EnvQuestions),
	}
}

// Or returns v when non-empty, otherwise fallback.
func Or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// DefaultDBPath returns ~/.qmaze/qmaze.db, or ./qmaze.db without a home dir.
func DefaultDBPath() string {
	if dir := HomeDir(); dir != "" {
		return filepath.Join(dir, "qmaze.db")
	}
	return "qmaze.db"
}

// DefaultLogPath returns ~/.qmaze/qmaze.log, or ./qmaze.log without a home dir.
func DefaultLogPath() string {
	if dir := HomeDir(); dir != "" {
		return filepath.Join(dir, "qmaze.log")
	}
	return "qmaze.log"
}
