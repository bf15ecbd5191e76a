package toolkit

import (
	"context"
	"fmt"

	catalogdomain "github.com/serendigo/pos/internal/catalog/domain"
	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"github.com/serendigo/pos/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultBatchSize is the number of rows moved per batch insert.
const DefaultBatchSize = 500

// TableReport counts the outcome of copying one table.
type TableReport struct {
	Table      string
	SourceRows int64
	Inserted   int64
	Skipped    int64
}

// CopyReport summarizes a full copy run, table by table in copy order.
type CopyReport struct {
	Applied bool
	Tables  []TableReport
}

// Totals sums the per-table reports.
func (r *CopyReport) Totals() TableReport {
	total := TableReport{Table: "total"}
	for _, t := range r.Tables {
		total.SourceRows += t.SourceRows
		total.Inserted += t.Inserted
		total.Skipped += t.Skipped
	}
	return total
}

// Copier batch-copies products, trades and trade details from one storage
// handle to another. Rows already present in the destination are skipped, so
// the operation is safe to re-run after a partial failure or while traffic
// keeps writing to the source.
type Copier struct {
	Source    *gorm.DB
	Dest      *gorm.DB
	Log       *zap.Logger
	BatchSize int
	Apply     bool
}

// Run performs the copy (or, without Apply, only counts source rows). The
// destination schema is created if missing. Primary keys are preserved.
func (c *Copier) Run(ctx context.Context) (*CopyReport, error) {
	batchSize := c.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	if c.Apply {
		if err := EnsureSchema(c.Dest); err != nil {
			return nil, fmt.Errorf("ensure destination schema: %w", err)
		}
	}

	report := &CopyReport{Applied: c.Apply}

	products, err := copyTable[catalogdomain.Product](ctx, c.Source, c.Dest, c.Log, batchSize, c.Apply)
	if err != nil {
		return nil, err
	}
	trades, err := copyTable[tradedomain.Trade](ctx, c.Source, c.Dest, c.Log, batchSize, c.Apply)
	if err != nil {
		return nil, err
	}
	details, err := copyTable[tradedomain.TradeDetail](ctx, c.Source, c.Dest, c.Log, batchSize, c.Apply)
	if err != nil {
		return nil, err
	}
	report.Tables = append(report.Tables, products, trades, details)
	return report, nil
}

type tabler interface {
	TableName() string
}

func copyTable[T tabler](ctx context.Context, source, dest *gorm.DB, log *zap.Logger, batchSize int, apply bool) (TableReport, error) {
	var model T
	report := TableReport{Table: model.TableName()}

	if err := source.WithContext(ctx).Model(&model).Count(&report.SourceRows).Error; err != nil {
		return report, fmt.Errorf("count %s: %w", report.Table, err)
	}
	if !apply {
		return report, nil
	}

	var rows []T
	result := source.WithContext(ctx).Model(&model).FindInBatches(&rows, batchSize, func(_ *gorm.DB, _ int) error {
		inserted, skipped, err := insertBatch(ctx, dest, rows)
		report.Inserted += inserted
		report.Skipped += skipped
		if err != nil {
			return fmt.Errorf("copy %s: %w", report.Table, err)
		}
		return nil
	})
	if result.Error != nil {
		return report, result.Error
	}

	log.Info("table copied",
		zap.String("table", report.Table),
		zap.Int64("source_rows", report.SourceRows),
		zap.Int64("inserted", report.Inserted),
		zap.Int64("skipped_conflicts", report.Skipped),
	)
	return report, nil
}

// insertBatch tries the whole batch first; on a duplicate-key failure it falls
// back to row-by-row inserts so conflicting rows are skipped instead of
// aborting the run. Any other error stops the copy.
func insertBatch[T tabler](ctx context.Context, dest *gorm.DB, rows []T) (inserted, skipped int64, err error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}

	if err := dest.WithContext(ctx).Create(&rows).Error; err == nil {
		return int64(len(rows)), 0, nil
	} else if !db.IsDuplicateKeyErr(err) {
		return 0, 0, err
	}

	for i := range rows {
		if err := dest.WithContext(ctx).Create(&rows[i]).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				skipped++
				continue
			}
			return inserted, skipped, err
		}
		inserted++
	}
	return inserted, skipped, nil
}
