package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// ResetCodeTTL is how long an issued password-reset code stays valid.
const ResetCodeTTL = 10 * time.Minute

// resetThrottleTTL limits how often a new code may be issued per account.
const resetThrottleTTL = 1 * time.Minute

// GenerateResetCode generates a secure random 6-digit numeric code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// MarkResetIssued records that a reset code was just issued for the given
// role/email pair. Returns false if one was issued too recently.
func MarkResetIssued(role, email string) (bool, error) {
	client := GetResetCacheClient()
	ctx := context.Background()
	key := fmt.Sprintf("reset:%s:%s", role, email)

	ok, err := client.SetNX(ctx, key, "1", resetThrottleTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record reset issuance: %w", err)
	}
	return ok, nil
}
