package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== TRANSACTION REF ====================

// GenerateTransactionRef creates an internal reference for registrations that
// carry no bank transaction (free-event checkouts).
func GenerateTransactionRef() string {
	now := time.Now()

	// Format: REG-YYYYMMDD-HHMMSS-RANDOM
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.Intn(10000))

	return fmt.Sprintf("REG-%s-%s-%s", datePart, timePart, randomPart)
}
