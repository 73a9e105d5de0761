package redis

import "testing"

func TestRevokedKey(t *testing.T) {
	if got := revokedKey("3f2a"); got != "session:revoked:3f2a" {
		t.Fatalf("unexpected key %q", got)
	}
}
