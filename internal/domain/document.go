package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Document is one stored record of any collection, with its field values
// kept as raw JSON.
type Document struct {
	ID         uuid.UUID       `json:"id"`
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Query selects documents from one collection.
type Query struct {
	// Limit caps the result size; zero means no limit.
	Limit int
	// Sort is a field name, prefixed with "-" for descending order.
	Sort string
	// Depth controls relationship population: 0 returns bare ids.
	Depth int
}
