package drafts

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/grievance-service/internal/config"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

const keyPrefix = "draft:"

// Draft is the cached generation result a token is bound to.
type Draft struct {
	UserID             string `json:"user_id"`
	DepartmentID       string `json:"department_id"`
	EnglishApplication string `json:"english_application"`
	HindiApplication   string `json:"hindi_application"`
}

// Store issues and verifies signed draft tokens. A token binds the generated
// texts to the issuing user so a later submission can prove the texts came
// from the generator; the cached copy expires with the configured TTL.
type Store struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewStore builds a Store over the shared redis client.
func NewStore(client *redis.Client, cfg config.DraftConfig) *Store {
	return &Store{
		client: client,
		secret: []byte(cfg.SigningSecret),
		ttl:    cfg.TTL(),
	}
}

// Issue signs the draft and caches it under the token.
func (s *Store) Issue(ctx context.Context, draft Draft) (string, error) {
	token := s.sign(draft)
	payload, err := json.Marshal(draft)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Verify checks that the token was issued for this user and these exact
// texts, and that the cached draft has not expired.
func (s *Store) Verify(ctx context.Context, token string, draft Draft) error {
	expected := s.sign(draft)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return apperrors.NewValidationError("draft token does not match the submitted application texts", nil)
	}
	exists, err := s.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return apperrors.NewValidationError("draft token expired; regenerate the application", nil)
	}
	return nil
}

// Invalidate drops the cached draft once a submission consumed it.
func (s *Store) Invalidate(ctx context.Context, token string) {
	_ = s.client.Del(ctx, keyPrefix+token).Err()
}

func (s *Store) sign(draft Draft) string {
	english := sha256.Sum256([]byte(draft.EnglishApplication))
	hindi := sha256.Sum256([]byte(draft.HindiApplication))

	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(draft.UserID))
	mac.Write([]byte{0})
	mac.Write([]byte(draft.DepartmentID))
	mac.Write([]byte{0})
	mac.Write(english[:])
	mac.Write(hindi[:])
	return hex.EncodeToString(mac.Sum(nil))
}
