package models

import "along/internal/domain"

// HistoryEntry counts searches of one origin/destination pair.
type HistoryEntry struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	Count       int           `json:"count"`
	LastUsed    int64         `json:"lastUsed"`
	Region      domain.Region `json:"region,omitempty"`
}
