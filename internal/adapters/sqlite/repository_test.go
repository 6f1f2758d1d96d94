package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bonusMarket/internal/domain"
	"bonusMarket/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "bonus-market-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

func pair(t *testing.T, base, quote string, price float64, favorite bool) domain.Pair {
	t.Helper()
	p, err := domain.NewPair("", base, quote, base+" coin", quote+" coin", price, 2.5, 1000, favorite)
	require.NoError(t, err)
	return p
}

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "x.db")})
	assert.Error(t, err)
}

func TestRepository_UpsertAndFind(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	btc := pair(t, "BTC", "USDT", 65000, false)
	require.NoError(t, repo.Upsert(ctx, []domain.Pair{btc, pair(t, "ETH", "USDT", 3200, false)}))

	got, err := repo.FindByID(ctx, btc.ID)
	require.NoError(t, err)
	assert.Equal(t, btc, got)

	_, err = repo.FindByID(ctx, "doge-usdt")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpsertKeepsFavorite(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	ton := pair(t, "TON", "USDT", 5, false)
	require.NoError(t, repo.Upsert(ctx, []domain.Pair{ton}))
	require.NoError(t, repo.SetFavorite(ctx, ton.ID, true))

	refreshed := ton
	refreshed.LastPrice = 6.25
	refreshed.Favorite = false
	require.NoError(t, repo.Upsert(ctx, []domain.Pair{refreshed}))

	got, err := repo.FindByID(ctx, ton.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)
	assert.Equal(t, 6.25, got.LastPrice)
}

func TestRepository_UpsertRejectsInvalidPair(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	bad := domain.Pair{ID: "bad", Base: "X", Quote: "Y", LastPrice: 0}
	err := repo.Upsert(context.Background(), []domain.Pair{pair(t, "BTC", "USDT", 1, false), bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRepository_FindAllOrdersFavoritesFirst(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []domain.Pair{
		pair(t, "BTC", "USDT", 65000, false),
		pair(t, "ETH", "USDT", 3200, false),
		pair(t, "TON", "USDT", 5, true),
		pair(t, "BONUS", "USDT", 1, false),
	}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"ton-usdt", "bonus-usdt", "btc-usdt", "eth-usdt"}, ids)
}

func TestRepository_SetFavorite(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	btc := pair(t, "BTC", "USDT", 65000, false)
	require.NoError(t, repo.Upsert(ctx, []domain.Pair{btc}))

	require.NoError(t, repo.SetFavorite(ctx, btc.ID, true))
	got, err := repo.FindByID(ctx, btc.ID)
	require.NoError(t, err)
	assert.True(t, got.Favorite)

	require.NoError(t, repo.SetFavorite(ctx, btc.ID, false))
	got, err = repo.FindByID(ctx, btc.ID)
	require.NoError(t, err)
	assert.False(t, got.Favorite)

	err = repo.SetFavorite(ctx, "missing", true)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
