package auth

import (
	"strings"
	"testing"
)

func TestGenerateWriteToken(t *testing.T) {
	token, err := GenerateWriteToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !ValidateTokenFormat(token.Plaintext) {
		t.Errorf("generated token has invalid format: %s", token.Plaintext)
	}
	if !strings.HasPrefix(token.Hash, "$argon2id$") {
		t.Errorf("hash is not PHC argon2id format: %s", token.Hash)
	}

	id, err := TokenID(token.Plaintext)
	if err != nil {
		t.Fatalf("token ID extraction failed: %v", err)
	}
	if id != token.ID {
		t.Errorf("extracted ID %s does not match generated ID %s", id, token.ID)
	}
}

func TestVerifyToken(t *testing.T) {
	token, err := GenerateWriteToken()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	ok, err := VerifyToken(token.Plaintext, token.Hash)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Error("token must verify against its own hash")
	}

	ok, err = VerifyToken("wt_wrong_token", token.Hash)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Error("wrong token must not verify")
	}
}

func TestVerifyToken_MalformedHash(t *testing.T) {
	if _, err := VerifyToken("anything", "not-a-phc-string"); err == nil {
		t.Error("expected error for malformed hash")
	}
	if _, err := VerifyToken("anything", "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"); err == nil {
		t.Error("expected error for non-argon2id hash")
	}
}

func TestTokenID_InvalidFormat(t *testing.T) {
	for _, token := range []string{"", "wt_short", "pk_live_aaaaaa_bbbb"} {
		if _, err := TokenID(token); err == nil {
			t.Errorf("expected format error for %q", token)
		}
	}
}
