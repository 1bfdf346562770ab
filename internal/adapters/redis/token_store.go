package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/copperline/bizportal/internal/data/cryptoutil"
	domainauth "github.com/copperline/bizportal/internal/domain/auth"
)

// DefaultTokenTTL bounds how long a stored token bundle may outlive its last
// write. Refresh tokens for the accounting provider are long-lived, so the
// TTL tracks the session retention horizon rather than access-token expiry.
const DefaultTokenTTL = 30 * 24 * time.Hour

// TokenStore keeps per-session accounting token bundles in Redis, encrypted
// at rest. Each bundle is owned exclusively by the session that stored it.
type TokenStore struct {
	client    redis.UniversalClient
	encryptor cryptoutil.Encryptor
	prefix    string
	ttl       time.Duration
}

// NewTokenStore creates a Redis-backed token store with the default key
// prefix and TTL.
func NewTokenStore(client redis.UniversalClient, encryptor cryptoutil.Encryptor) *TokenStore {
	return &TokenStore{
		client:    client,
		encryptor: encryptor,
		prefix:    "accounting_token:",
		ttl:       DefaultTokenTTL,
	}
}

// NewTokenStoreWithOptions creates a token store with a custom prefix and TTL.
func NewTokenStoreWithOptions(client redis.UniversalClient, encryptor cryptoutil.Encryptor, prefix string, ttl time.Duration) *TokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenStore{
		client:    client,
		encryptor: encryptor,
		prefix:    prefix,
		ttl:       ttl,
	}
}

// Get retrieves the token bundle for a session. The second return value is
// false when no bundle is stored; an expired bundle is still returned so the
// caller can decide whether to refresh.
func (s *TokenStore) Get(ctx context.Context, sessionID string) (domainauth.TokenBundle, bool, error) {
	if sessionID == "" {
		return domainauth.TokenBundle{}, false, nil
	}

	data, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.TokenBundle{}, false, nil
		}
		return domainauth.TokenBundle{}, false, fmt.Errorf("redis get token: %w", err)
	}

	plaintext, err := s.encryptor.Decrypt(data)
	if err != nil {
		return domainauth.TokenBundle{}, false, fmt.Errorf("decrypt token bundle: %w", err)
	}

	var bundle domainauth.TokenBundle
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		return domainauth.TokenBundle{}, false, fmt.Errorf("unmarshal token bundle: %w", err)
	}
	return bundle, true, nil
}

// Put stores the token bundle for a session, replacing any previous bundle.
func (s *TokenStore) Put(ctx context.Context, sessionID string, bundle domainauth.TokenBundle) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	if bundle.AccessToken == "" {
		return errors.New("token bundle has no access token")
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal token bundle: %w", err)
	}

	ciphertext, err := s.encryptor.Encrypt(data)
	if err != nil {
		return fmt.Errorf("encrypt token bundle: %w", err)
	}

	return s.client.Set(ctx, s.prefix+sessionID, ciphertext, s.ttl).Err()
}

// Clear removes the token bundle for a session. Clearing an absent bundle is
// not an error.
func (s *TokenStore) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
