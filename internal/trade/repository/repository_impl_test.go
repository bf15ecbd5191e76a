package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/serendigo/pos/internal/toolkit"
	"github.com/serendigo/pos/internal/trade/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, toolkit.EnsureSchema(conn))
	return conn
}

func detail(lineNo int64) domain.TradeDetail {
	return domain.TradeDetail{
		LineNo:   &lineNo,
		Code:     "4901234567894",
		Name:     "Sample A",
		Price:    100,
		Quantity: 1,
	}
}

func TestCreateWithDetailsAssignsTradeID(t *testing.T) {
	conn := setupTestDB(t)
	repo := Provide()

	trade := &domain.Trade{Datetime: time.Now().UTC(), Subtotal: 200, Total: 220}
	err := repo.CreateWithDetails(context.Background(), conn, trade, []domain.TradeDetail{
		detail(1), detail(2),
	})
	require.NoError(t, err)
	require.NotZero(t, trade.ID)

	var rows []domain.TradeDetail
	require.NoError(t, conn.Where("TRD_ID = ?", trade.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
}

func TestCreateWithDetailsRollsBackOnLineNumberConflict(t *testing.T) {
	conn := setupTestDB(t)
	repo := Provide()

	trade := &domain.Trade{Datetime: time.Now().UTC()}
	err := repo.CreateWithDetails(context.Background(), conn, trade, []domain.TradeDetail{
		detail(1), detail(1),
	})
	require.ErrorIs(t, err, domain.ErrDetailConflict)

	var trades, details int64
	require.NoError(t, conn.Model(&domain.Trade{}).Count(&trades).Error)
	require.NoError(t, conn.Model(&domain.TradeDetail{}).Count(&details).Error)
	assert.Zero(t, trades)
	assert.Zero(t, details)
}

func TestCreateWithDetailsHeaderOnly(t *testing.T) {
	conn := setupTestDB(t)
	repo := Provide()

	trade := &domain.Trade{Datetime: time.Now().UTC()}
	require.NoError(t, repo.CreateWithDetails(context.Background(), conn, trade, nil))
	require.NotZero(t, trade.ID)
}
