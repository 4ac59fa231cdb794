package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/timeledger/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Resolve(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewAPIKeyRepository(db)

	require.NoError(t, repo.Create(ctx, "secret-token", "tenant1", "u1", "laptop"))
	require.ErrorIs(t, repo.Create(ctx, "secret-token", "tenant2", "u2", ""), repository.ErrConflict)

	tenantID, userID, err := repo.ResolveIdentity(ctx, "secret-token")
	require.NoError(t, err)
	require.Equal(t, "tenant1", tenantID)
	require.Equal(t, "u1", userID)

	var stored string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT key_hash FROM api_keys`).Scan(&stored))
	require.NotEqual(t, "secret-token", stored)
	require.Equal(t, HashToken("secret-token"), stored)

	_, _, err = repo.ResolveIdentity(ctx, "wrong")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
