package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gursha-client/internal/domain"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// Identity is the signed-in user as issued by the backend. The gateway
// stores it verbatim and never mints its own.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone_number,omitempty"`
	Role     string `json:"role,omitempty"`
}

type kvRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Service persists the session identity under the `user` and `token` keys
// of the local store.
type Service struct {
	kv kvRepo
}

func New(kv kvRepo) *Service {
	return &Service{kv: kv}
}

// Set stores the identity and bearer token issued upstream.
func (s *Service) Set(ctx context.Context, id Identity, token string) error {
	if strings.TrimSpace(id.UserID) == "" {
		return errors.New("user id required")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token required")
	}
	userDoc, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	tokenDoc, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := s.kv.Put(ctx, userKey, userDoc); err != nil {
		return fmt.Errorf("store identity: %w", err)
	}
	if err := s.kv.Put(ctx, tokenKey, tokenDoc); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Identity returns the stored identity, or domain.ErrNotFound when signed
// out.
func (s *Service) Identity(ctx context.Context) (*Identity, error) {
	doc, err := s.kv.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(doc, &id); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &id, nil
}

// Token returns the stored bearer token, or "" when signed out. It
// satisfies the backend client's token source: unauthenticated calls simply
// go out without the header.
func (s *Service) Token(ctx context.Context) (string, error) {
	doc, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	var token string
	if err := json.Unmarshal(doc, &token); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	return token, nil
}

// Clear signs the user out locally. Cart contents survive a logout.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, userKey); err != nil {
		return fmt.Errorf("clear identity: %w", err)
	}
	if err := s.kv.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}
