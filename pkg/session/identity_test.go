package session

import (
	"testing"

	"github.com/backkem/go-opcua/pkg/ua"
)

// TestAnonymousIdentityCopiesServerPolicyIDVerbatim exercises spec.md
// §8 seed scenario 3: a server advertising the non-standard policy id
// "open62541-anonymous-policy" must see exactly that id on the wire,
// never the literal "Anonymous" (spec.md §9 Open Question).
func TestAnonymousIdentityCopiesServerPolicyIDVerbatim(t *testing.T) {
	policy := ua.UserTokenPolicy{
		PolicyID:  "open62541-anonymous-policy",
		TokenType: ua.UserTokenTypeAnonymous,
	}

	eo, err := AnonymousIdentity{}.buildToken(policy, "", nil, nil)
	if err != nil {
		t.Fatalf("buildToken: %v", err)
	}

	tok, err := ua.NewDecoder(eo.Body).AnonymousIdentityToken("AnonymousIdentityToken")
	if err != nil {
		t.Fatalf("decode AnonymousIdentityToken: %v", err)
	}
	if tok.PolicyID != policy.PolicyID {
		t.Fatalf("PolicyID: got %q, want %q (hard-coding \"Anonymous\" is a protocol bug)", tok.PolicyID, policy.PolicyID)
	}
	if tok.PolicyID == "Anonymous" {
		t.Fatal("PolicyID must not be the literal \"Anonymous\" when the server advertises a different id")
	}
}

func TestUserNameIdentityCopiesServerPolicyIDVerbatim(t *testing.T) {
	policy := ua.UserTokenPolicy{
		PolicyID:          "username_basic256sha256",
		TokenType:         ua.UserTokenTypeUserName,
		SecurityPolicyURI: "",
	}
	identity := UserNameIdentity{UserName: "operator", Password: "hunter2"}

	// SecurityPolicyURI is "", and no channel policy is supplied either,
	// so the password is sent in the clear (matches the None-policy
	// fallback); the point of this test is the PolicyID, not the
	// cryptography, which pkg/crypto's own tests already cover.
	eo, err := identity.buildToken(policy, "", nil, nil)
	if err != nil {
		t.Fatalf("buildToken: %v", err)
	}

	tok, err := ua.NewDecoder(eo.Body).UserNameIdentityToken("UserNameIdentityToken")
	if err != nil {
		t.Fatalf("decode UserNameIdentityToken: %v", err)
	}
	if tok.PolicyID != policy.PolicyID {
		t.Fatalf("PolicyID: got %q, want %q", tok.PolicyID, policy.PolicyID)
	}
	if tok.UserName != identity.UserName {
		t.Fatalf("UserName: got %q, want %q", tok.UserName, identity.UserName)
	}
	if string(tok.Password) != identity.Password {
		t.Fatalf("Password: got %q, want cleartext %q under SecurityPolicyNone fallback", tok.Password, identity.Password)
	}
}
