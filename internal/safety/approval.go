package safety

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

type probePayload struct {
	Environment string `json:"env"`
	IssuedAt    int64  `json:"iat"`
	ExpiresAt   int64  `json:"exp"`
	Nonce       string `json:"nonce"`
}

// GenerateProbeToken creates a signed, short-lived token authorizing a
// connectivity probe against one environment.
// Token format: base64(payload).base64(hmac(payload, secret))
func GenerateProbeToken(secret, environment string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("probe secret is empty")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	now := time.Now()
	payload := probePayload{
		Environment: environment,
		IssuedAt:    now.Unix(),
		ExpiresAt:   now.Add(ttl).Unix(),
	}
	nonce, err := randomNonce()
	if err != nil {
		return "", err
	}
	payload.Nonce = nonce
	plain, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sig := sign(secret, plain)
	return base64.StdEncoding.EncodeToString(plain) + "." + base64.StdEncoding.EncodeToString(sig), nil
}

// ValidateProbeToken checks signature, environment binding and expiry.
func ValidateProbeToken(secret, environment, token string) error {
	pb64, sigb64, ok := splitToken(token)
	if !ok {
		return errors.New("invalid token format")
	}
	plain, err := base64.StdEncoding.DecodeString(pb64)
	if err != nil {
		return errors.New("invalid token payload")
	}
	if !verify(secret, plain, sigb64) {
		return errors.New("invalid token signature")
	}
	var payload probePayload
	if err := json.Unmarshal(plain, &payload); err != nil {
		return errors.New("invalid token payload json")
	}
	if payload.Environment != environment {
		return errors.New("token environment mismatch")
	}
	if time.Now().Unix() > payload.ExpiresAt {
		return errors.New("token expired")
	}
	return nil
}

func splitToken(tok string) (string, string, bool) {
	parts := strings.Split(tok, ".")
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func sign(secret string, msg []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return mac.Sum(nil)
}

func verify(secret string, msg []byte, sigb64 string) bool {
	sig, err := base64.StdEncoding.DecodeString(sigb64)
	if err != nil {
		return false
	}
	return hmac.Equal(sig, sign(secret, msg))
}

func randomNonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
