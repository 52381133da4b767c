package constants

import (
	"os"
	"time"
)

// GetConfigDir returns the directory searched for performous-tools.yml.
func GetConfigDir() string {
	if path := os.Getenv("PERFORMOUS_TOOLS_CONFIG"); path != "" {
		return path
	}
	return "."
}

// DefaultAddr is where serve listens when neither flag nor config file says
// otherwise.
const DefaultAddr = ":8080"

// Metadata lookups default to a DynamoDB running locally.
const DefaultMetadataEndpoint = "http://localhost:8000"
const DefaultMetadataTable = "performous-metadata"

// WatchInterval is the mtime poll period of the watch command. Changes
// landing within one interval coalesce into a single re-merge.
const WatchInterval = 500 * time.Millisecond
