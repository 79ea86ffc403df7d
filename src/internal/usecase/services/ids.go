package services

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

const (
	prefixOffline = "OFFLINE-"
	prefixLocal   = "LOC-"
	prefixManual  = "MAN-"
)

// newTransactionID keeps the familiar PREFIX-nnnnnn shape. The suffix is
// random, so callers still retry on a duplicate.
func newTransactionID(prefix string) string {
	id := uuid.New()
	n := binary.BigEndian.Uint32(id[:4]) % 1_000_000
	return fmt.Sprintf("%s%06d", prefix, n)
}

func newSessionID() string {
	return uuid.NewString()
}
