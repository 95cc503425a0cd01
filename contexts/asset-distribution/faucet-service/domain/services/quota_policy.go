package services

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RemainingQuota computes the allowance left for one (wallet, group) pair.
// consumed counts every historical request except failed ones: a failed
// distribution must be retriable, so it never holds quota. Never negative.
func RemainingQuota(limit, consumed int) int {
	if limit <= 0 {
		return 0
	}
	remaining := limit - consumed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ValidWalletID accepts only a lowercase sha256 hex digest. Raw extended
// public keys identify the requester on chain and must never be persisted.
func ValidWalletID(walletID string) bool {
	trimmed := strings.TrimSpace(walletID)
	if len(trimmed) != sha256.Size*2 {
		return false
	}
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return false
	}
	return len(decoded) == sha256.Size && trimmed == strings.ToLower(trimmed)
}

// HashWalletID derives the persisted wallet identity from a raw identity
// token, e.g. an xpub presented during enrollment.
func HashWalletID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
