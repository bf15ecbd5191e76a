package toolkit

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

	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	tradedomain "github.com/serendigo/pos/internal/trade/domain"
)

var memdbSeq int64

func openMemDB(t *testing.T) *gorm.DB {
	t.Helper()

	memdbSeq++
	dsn := fmt.Sprintf("file:memdb_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), memdbSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	return conn
}

func openMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn := openMemDB(t)
	require.NoError(t, EnsureSchema(conn))
	return conn
}

func int64p(v int64) *int64 { return &v }

func seedSource(t *testing.T, conn *gorm.DB) {
	t.Helper()

	require.NoError(t, conn.Create(&[]catalogdomain.Product{
		{ID: 1, Code: "A", Name: "Item A", Price: 100},
		{ID: 2, Code: "B", Name: "Item B", Price: 300},
	}).Error)
	require.NoError(t, conn.Create(&tradedomain.Trade{
		ID: 1, Datetime: time.Now().UTC(), Subtotal: 500, Total: 550,
	}).Error)
	require.NoError(t, conn.Create(&[]tradedomain.TradeDetail{
		{ID: 1, TradeID: 1, LineNo: int64p(1), Code: "A", Name: "Item A", Price: 100, Quantity: 2},
		{ID: 2, TradeID: 1, LineNo: int64p(2), Code: "B", Name: "Item B", Price: 300, Quantity: 1},
	}).Error)
}

func TestCopierCopiesAllTables(t *testing.T) {
	source := openMigratedDB(t)
	dest := openMemDB(t)
	seedSource(t, source)

	copier := &Copier{Source: source, Dest: dest, Log: zap.NewNop(), Apply: true}
	report, err := copier.Run(context.Background())
	require.NoError(t, err)

	total := report.Totals()
	assert.Equal(t, int64(5), total.SourceRows)
	assert.Equal(t, int64(5), total.Inserted)
	assert.Zero(t, total.Skipped)

	var products, trades, details int64
	require.NoError(t, dest.Model(&catalogdomain.Product{}).Count(&products).Error)
	require.NoError(t, dest.Model(&tradedomain.Trade{}).Count(&trades).Error)
	require.NoError(t, dest.Model(&tradedomain.TradeDetail{}).Count(&details).Error)
	assert.Equal(t, int64(2), products)
	assert.Equal(t, int64(1), trades)
	assert.Equal(t, int64(2), details)

	// Primary keys survive the copy.
	var p catalogdomain.Product
	require.NoError(t, dest.Where("CODE = ?", "B").First(&p).Error)
	assert.Equal(t, int64(2), p.ID)
}

func TestCopierSecondRunSkipsEverything(t *testing.T) {
	source := openMigratedDB(t)
	dest := openMemDB(t)
	seedSource(t, source)

	copier := &Copier{Source: source, Dest: dest, Log: zap.NewNop(), Apply: true}
	_, err := copier.Run(context.Background())
	require.NoError(t, err)

	report, err := copier.Run(context.Background())
	require.NoError(t, err)

	total := report.Totals()
	assert.Equal(t, int64(5), total.SourceRows)
	assert.Zero(t, total.Inserted)
	assert.Equal(t, int64(5), total.Skipped)
}

func TestCopierDryRunWritesNothing(t *testing.T) {
	source := openMigratedDB(t)
	dest := openMigratedDB(t)
	seedSource(t, source)

	copier := &Copier{Source: source, Dest: dest, Log: zap.NewNop(), Apply: false}
	report, err := copier.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Applied)

	total := report.Totals()
	assert.Equal(t, int64(5), total.SourceRows)
	assert.Zero(t, total.Inserted)

	var products int64
	require.NoError(t, dest.Model(&catalogdomain.Product{}).Count(&products).Error)
	assert.Zero(t, products)
}

func TestCopierPartialOverlapInsertsOnlyMissing(t *testing.T) {
	source := openMigratedDB(t)
	dest := openMigratedDB(t)
	seedSource(t, source)
	require.NoError(t, dest.Create(&catalogdomain.Product{ID: 1, Code: "A", Name: "Item A", Price: 100}).Error)

	copier := &Copier{Source: source, Dest: dest, Log: zap.NewNop(), BatchSize: 2, Apply: true}
	report, err := copier.Run(context.Background())
	require.NoError(t, err)

	total := report.Totals()
	assert.Equal(t, int64(4), total.Inserted)
	assert.Equal(t, int64(1), total.Skipped)
}
