package services_test

import (
	"strings"
	"testing"

	"rgbfaucet/contexts/asset-distribution/faucet-service/domain/services"
)

func TestRemainingQuotaNeverNegative(t *testing.T) {
	cases := []struct {
		limit    int
		consumed int
		want     int
	}{
		{3, 0, 3},
		{3, 2, 1},
		{3, 3, 0},
		{3, 7, 0},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := services.RemainingQuota(c.limit, c.consumed); got != c.want {
			t.Errorf("RemainingQuota(%d, %d) = %d, want %d", c.limit, c.consumed, got, c.want)
		}
	}
}

func TestValidWalletID(t *testing.T) {
	hashed := services.HashWalletID("tpubD6NzVbkrYhZ4XYa9MoLt4BiMZ4gkt2faZ4BcmKu2a9te4LDpQmvEz2L2yDERivHxFPnxXXhqDRkUNnQCpZggCyEZLBktV7VaSmwayqMJy1s")
	if !services.ValidWalletID(hashed) {
		t.Fatalf("sha256 hex digest should be valid, got %q", hashed)
	}

	invalid := []string{
		"",
		"tpubD6NzVbkrYhZ4XYa9MoLt4BiMZ4gkt2faZ4BcmKu2a9te4LDpQmvEz2L2yDE",
		strings.ToUpper(hashed),
		hashed[:63],
		hashed + "0",
		strings.Replace(hashed, hashed[:1], "g", 1),
	}
	for _, id := range invalid {
		if services.ValidWalletID(id) {
			t.Errorf("%q should be rejected", id)
		}
	}
}

func TestHashWalletIDIsDeterministic(t *testing.T) {
	a := services.HashWalletID("xpub-same")
	b := services.HashWalletID("xpub-same")
	c := services.HashWalletID("xpub-other")
	if a != b {
		t.Fatalf("same input should hash identically: %q vs %q", a, b)
	}
	if a == c {
		t.Fatal("different inputs should not collide")
	}
	if len(a) != 64 {
		t.Fatalf("digest should be 64 hex chars, got %d", len(a))
	}
}
