package toolkit

import (
	"context"
	"fmt"

	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"gorm.io/gorm"
)

// DetailConflict pairs a source trade detail with the destination row it
// collides with.
type DetailConflict struct {
	Source tradedomain.TradeDetail
	Dest   tradedomain.TradeDetail
}

// Diagnosis classifies every source trade detail against the destination.
// Missing rows can be inserted safely; both conflict classes are red flags:
// a primary-key conflict means the same DTL_ID exists on both sides with
// possibly different contents, a unique-key conflict means the destination
// already numbered that (TRD_ID, DTL_NO) slot differently.
type Diagnosis struct {
	SourceRows int
	DestRows   int

	Missing         []tradedomain.TradeDetail
	PKConflicts     []DetailConflict
	UniqueConflicts []DetailConflict
}

// DiagnoseDetails is read-only: it never writes to either handle.
func DiagnoseDetails(ctx context.Context, source, dest *gorm.DB) (*Diagnosis, error) {
	var srcRows, dstRows []tradedomain.TradeDetail
	if err := source.WithContext(ctx).Order("DTL_ID asc").Find(&srcRows).Error; err != nil {
		return nil, fmt.Errorf("fetch source trade details: %w", err)
	}
	if err := dest.WithContext(ctx).Order("DTL_ID asc").Find(&dstRows).Error; err != nil {
		return nil, fmt.Errorf("fetch destination trade details: %w", err)
	}

	byPK := make(map[int64]tradedomain.TradeDetail, len(dstRows))
	type uniqueKey struct {
		tradeID int64
		lineNo  int64
	}
	byUnique := make(map[uniqueKey]tradedomain.TradeDetail, len(dstRows))
	for _, d := range dstRows {
		byPK[d.ID] = d
		if d.LineNo != nil {
			byUnique[uniqueKey{d.TradeID, *d.LineNo}] = d
		}
	}

	diag := &Diagnosis{SourceRows: len(srcRows), DestRows: len(dstRows)}
	for _, s := range srcRows {
		if d, ok := byPK[s.ID]; ok {
			diag.PKConflicts = append(diag.PKConflicts, DetailConflict{Source: s, Dest: d})
			continue
		}
		if s.LineNo != nil {
			if d, ok := byUnique[uniqueKey{s.TradeID, *s.LineNo}]; ok {
				diag.UniqueConflicts = append(diag.UniqueConflicts, DetailConflict{Source: s, Dest: d})
				continue
			}
		}
		diag.Missing = append(diag.Missing, s)
	}
	return diag, nil
}
