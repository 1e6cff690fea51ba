package repository

import (
	"time"
)

// timeLayout is the RFC3339 format for timestamps stored in SQLite
const timeLayout = time.RFC3339

// formatTime returns the current time formatted as RFC3339
func formatTime() string {
	return time.Now().UTC().Format(timeLayout)
}
