package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/orator-app/orator-cli/internal/common"
)

// newLocalID synthesizes an id for a record created while the server was
// unreachable. The prefix keeps it out of the server's UUID id space; the
// timestamp plus random suffix keeps it locally unique.
func newLocalID() string {
	return fmt.Sprintf("%s%d-%s", common.LocalIDPrefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}
