package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/serendigo/pos/internal/catalog/domain"
	"github.com/serendigo/pos/internal/catalog/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Product{}))
	return conn
}

func newService(t *testing.T, conn *gorm.DB) domain.Service {
	t.Helper()
	return New(Params{DB: conn, Log: zap.NewNop(), Repo: repository.Provide()})
}

func TestFindByCodeExactMatch(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, conn.Create(&domain.Product{Code: "4901234567894", Name: "Sample A", Price: 150}).Error)
	svc := newService(t, conn)

	p, err := svc.FindByCode(context.Background(), "4901234567894")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Sample A", p.Name)
	assert.Equal(t, int64(150), p.Price)
}

func TestFindByCodeMissReturnsNil(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	p, err := svc.FindByCode(context.Background(), "0000000000000")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestFindByCodeUPCAPromotedToEAN13(t *testing.T) {
	conn := setupTestDB(t)
	// Stored under the 13-digit form, scanned as 12-digit UPC-A.
	require.NoError(t, conn.Create(&domain.Product{Code: "0123456789012", Name: "Promoted", Price: 100}).Error)
	svc := newService(t, conn)

	p, err := svc.FindByCode(context.Background(), "123456789012")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Promoted", p.Name)
}

func TestFindByCodeEAN13DemotedToUPCA(t *testing.T) {
	conn := setupTestDB(t)
	// Stored under the 12-digit form, scanned with a leading zero.
	require.NoError(t, conn.Create(&domain.Product{Code: "123456789012", Name: "Demoted", Price: 100}).Error)
	svc := newService(t, conn)

	p, err := svc.FindByCode(context.Background(), "0123456789012")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Demoted", p.Name)
}

func TestFindByCodeExactWinsOverVariant(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, conn.Create(&[]domain.Product{
		{Code: "123456789012", Name: "Exact", Price: 100},
		{Code: "0123456789012", Name: "Variant", Price: 200},
	}).Error)
	svc := newService(t, conn)

	p, err := svc.FindByCode(context.Background(), "123456789012")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Exact", p.Name)
}

func TestCodeCandidates(t *testing.T) {
	assert.Nil(t, codeCandidates("   "))
	assert.Equal(t, []string{"abc-123"}, codeCandidates("abc-123"))
	assert.Equal(t, []string{"123456789012", "0123456789012"}, codeCandidates("123456789012"))
	assert.Equal(t, []string{"0123456789012", "123456789012"}, codeCandidates("0123456789012"))
	assert.Equal(t, []string{"4901234567894"}, codeCandidates("4901234567894"))
}

func TestBulkUpsertInsertsAndUpdates(t *testing.T) {
	conn := setupTestDB(t)
	require.NoError(t, conn.Create(&domain.Product{Code: "A", Name: "Old", Price: 10}).Error)
	svc := newService(t, conn)

	result, err := svc.BulkUpsert(context.Background(), domain.BulkUpsertRequest{
		Items: []domain.BulkUpsertItem{
			{Code: "A", Name: "New", Price: 20},
			{Code: "B", Name: "Fresh", Price: 30},
			{Code: "  ", Name: "Ignored", Price: 40},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Inserted)
	assert.Equal(t, int64(1), result.Updated)
	assert.Equal(t, int64(2), result.Count)

	var updated domain.Product
	require.NoError(t, conn.Where("CODE = ?", "A").First(&updated).Error)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, int64(20), updated.Price)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	conn := setupTestDB(t)
	svc := newService(t, conn)

	count, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// A second run must not duplicate the samples.
	count, err = svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
