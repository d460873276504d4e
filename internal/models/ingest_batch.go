package models

import "time"

// IngestBatch описывает один принятый XML-документ.
// swagger:model
type IngestBatch struct {
	ID         string    `json:"id"`
	Count      int       `json:"count"`
	ArchiveKey string    `json:"archive_key"`
	ArchiveURL string    `json:"archive_url,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
}
