package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"hockeyzone/internal/app"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

type voiceTokenResponse struct {
	Token string `json:"token"`
}

func TestVoiceTokenRpc_GeneratesValidClaims(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	payload := `{"action":"login"}`

	raw1, err := rpc(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("voice token rpc error: %v", err)
	}
	token1 := parseTokenResponse(t, raw1)

	// A second token must carry a fresh nonce.
	raw2, err := rpc(ctx, noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("voice token rpc error: %v", err)
	}
	token2 := parseTokenResponse(t, raw2)

	claims1 := parseTokenClaims(t, token1, "test-secret")
	claims2 := parseTokenClaims(t, token2, "test-secret")

	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VoiceTokenActionLogin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@example.com")

	vxi1, ok1 := claims1["vxi"]
	vxi2, ok2 := claims2["vxi"]
	if !ok1 || !ok2 {
		t.Fatal("vxi claim missing")
	}
	if vxi1 == vxi2 {
		t.Errorf("vxi claim must be unique per token. Got %v for both.", vxi1)
	}
}

func TestVoiceTokenRpc_DerivesJoinChannelFromMatchAndTeam(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	raw, err := rpc(ctx, noopLogger{}, nil, nil, `{"action":"join","match_id":"match-456","team":"red"}`)
	if err != nil {
		t.Fatalf("voice token rpc error: %v", err)
	}
	claims := parseTokenClaims(t, parseTokenResponse(t, raw), "test-secret")
	assertClaim(t, claims, "vxa", app.VoiceTokenActionJoin)
	assertClaim(t, claims, "t", "sip:confctl-g-match-456-red@example.com")
}

func TestVoiceTokenRpc_RejectsJoinWithoutMatchOrTeam(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	for _, payload := range []string{
		`{"action":"join","team":"red"}`,
		`{"action":"join","match_id":"match-456"}`,
		`{"action":"join","match_id":"match-456","team":"green"}`,
	} {
		if _, err := rpc(ctx, noopLogger{}, nil, nil, payload); err == nil {
			t.Errorf("expected error for payload %s", payload)
		}
	}
}

func TestVoiceTokenRpc_ConcurrentCalls(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw, err := rpc(ctx, noopLogger{}, nil, nil, `{"action":"login"}`)
			if err == nil && raw == "" {
				err = fmt.Errorf("empty response")
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("call %d: %v", i, err)
		}
	}
}

func TestVoiceTokenRpc_RequiresAuthenticatedUser(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))

	if _, err := rpc(context.Background(), noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatal("expected error without an authenticated user")
	}
}

func TestVoiceTokenRpc_RejectsInvalidPayload(t *testing.T) {
	rpc := newVoiceTokenRpc(app.NewVoiceService("test-secret", "issuer", "example.com"))
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	if _, err := rpc(ctx, noopLogger{}, nil, nil, `{not json`); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestVoiceTokenRpc_RejectsWhenUnconfigured(t *testing.T) {
	rpc := newVoiceTokenRpc(nil)
	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")
	if _, err := rpc(ctx, noopLogger{}, nil, nil, `{"action":"login"}`); err == nil {
		t.Fatal("expected error when voice credentials are absent")
	}
}

func TestVoiceServiceFromEnv(t *testing.T) {
	full := context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, map[string]string{
		"voice_secret": "s", "voice_issuer": "i", "voice_domain": "d",
	})
	if voiceServiceFromEnv(full) == nil {
		t.Error("expected a signer with complete credentials")
	}

	partial := context.WithValue(context.Background(), runtime.RUNTIME_CTX_ENV, map[string]string{
		"voice_secret": "s",
	})
	if voiceServiceFromEnv(partial) != nil {
		t.Error("expected nil signer with partial credentials")
	}
	if voiceServiceFromEnv(context.Background()) != nil {
		t.Error("expected nil signer without env")
	}
}

func parseTokenResponse(t *testing.T, jsonRaw string) string {
	t.Helper()
	var resp voiceTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Token
}

func parseTokenClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}
