package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))

	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey)))

	assert.True(t, IsDuplicateKeyErr(errors.New(`ERROR: duplicate key value violates unique constraint "uq_trade_detail_per_trade" (SQLSTATE 23505)`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("some driver wrapper (SQLSTATE 23505)")))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062 (23000): Duplicate entry '1-1' for key 'uq_trade_detail_per_trade'")))
	assert.True(t, IsDuplicateKeyErr(errors.New("Duplicate entry '1-1' for key 'uq_trade_detail_per_trade'")))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: trade_details.TRD_ID, trade_details.DTL_NO")))
	assert.True(t, IsDuplicateKeyErr(errors.New("constraint failed (1555)")))
	assert.True(t, IsDuplicateKeyErr(errors.New("constraint failed (2067)")))

	assert.False(t, IsDuplicateKeyErr(errors.New("NOT NULL constraint failed: trade_details.PRD_CODE")))
}
