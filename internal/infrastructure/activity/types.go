package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/backend/domain"
)

func normalize(entry *domain.Activity) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
}

func buildKey(entry domain.Activity) []byte {
	return []byte(fmt.Sprintf("%s/%020d/%s", entry.ProjectID, entry.At.UnixNano(), entry.ID))
}
