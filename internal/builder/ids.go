package builder

import (
	"github.com/google/uuid"

	"sitebuilder/internal/domain"
)

// NewID returns "<type>-<uuid>". Ids stay unique across rapid successive
// calls, unlike timestamp-based ids.
func NewID(t domain.ElementType) string {
	return string(t) + "-" + uuid.NewString()
}

func newNodeID() string {
	return uuid.NewString()
}
