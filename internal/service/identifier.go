package service

import (
	"strings"

	"github.com/google/uuid"
)

const complaintKeyPrefix = "GRV-"

// GenerateComplaintKey produces a globally-unique human-readable complaint
// identifier. The 40 bits of UUID-derived entropy make collisions negligible;
// the database uniqueness constraint catches the rest and the submit path
// retries generation-and-insert as a unit.
func GenerateComplaintKey() string {
	return complaintKeyPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
