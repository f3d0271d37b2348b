package cache

import (
	"time"

	"github.com/AJV009/oracle11/internal/models"
)

type GetDocumentInput struct {
	CelebrationID string
}

type GetDocumentOutput struct {
	Document *models.GameDocument

	// StoredAt is when the entry was written; freshness checks compare
	// against this, not against the document's own LastUpdated
	StoredAt time.Time
}

type SetDocumentInput struct {
	CelebrationID string
	Document      *models.GameDocument
	StoredAt      time.Time
}

type DeleteDocumentInput struct {
	CelebrationID string
}
