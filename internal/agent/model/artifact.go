package model

import (
	"context"
	"time"
)

// ArtifactRecord is the indexed metadata of a chart image produced for the agent.
type ArtifactRecord struct {
	Filename    string    `json:"filename"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Points      int       `json:"points"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type ArtifactRepository interface {
	// Record stores an artifact and pushes it onto the recent list
	Record(ctx context.Context, rec ArtifactRecord) error

	// Get loads one artifact by filename
	Get(ctx context.Context, filename string) (*ArtifactRecord, error)

	// ListRecent returns up to limit artifacts, newest first
	ListRecent(ctx context.Context, limit int) ([]ArtifactRecord, error)

	// Count returns the number of artifacts on the recent list
	Count(ctx context.Context) (int, error)
}
