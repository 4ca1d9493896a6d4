package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber returns a human-legible, chronologically sortable order
// number like SAHRA-20260831-141502-9F2A6C1D. The uuid-derived suffix keeps
// collisions negligible under concurrent creation within the same second.
func NewOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SAHRA-%s-%s", time.Now().UTC().Format("20060102-150405"), suffix)
}
