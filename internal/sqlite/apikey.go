package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rpggio/timeledger/internal/repository"
)

// APIKeyRepository resolves bearer tokens to the tenant and user they were
// issued for. Only a SHA-256 hash of each token is stored.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create stores a token for tenantID and userID.
func (r *APIKeyRepository) Create(ctx context.Context, token, tenantID, userID, description string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_keys (key_hash, tenant_id, user_id, created_at, description) VALUES (?, ?, ?, ?, ?)`,
		HashToken(token), tenantID, userID, time.Now().UTC(), description,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// ResolveIdentity returns the tenant and user a token belongs to and stamps
// its last use.
func (r *APIKeyRepository) ResolveIdentity(ctx context.Context, token string) (string, string, error) {
	hash := HashToken(token)

	var tenantID, userID string
	err := r.db.QueryRowContext(ctx,
		`SELECT tenant_id, user_id FROM api_keys WHERE key_hash = ?`, hash,
	).Scan(&tenantID, &userID)
	if err == sql.ErrNoRows {
		return "", "", repository.ErrNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE api_keys SET last_used = ? WHERE key_hash = ?`, time.Now().UTC(), hash); err != nil {
		return "", "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return tenantID, userID, nil
}

// HashToken returns the stored form of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
