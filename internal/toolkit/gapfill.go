package toolkit

import (
	"context"
	"fmt"

	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlannedAssignment is one source row scheduled for insertion into the
// destination with a freshly computed line number.
type PlannedAssignment struct {
	Row    tradedomain.TradeDetail
	LineNo int64
}

// RepairPlan is the output of a gap-repair run.
type RepairPlan struct {
	Applied     bool
	Assignments []PlannedAssignment
}

// GapRepairer inserts source trade details that are missing a line number
// into the destination, assigning the smallest line numbers not already used
// there for the same trade. Source row ids break ties, so the plan is
// deterministic across runs.
type GapRepairer struct {
	Source *gorm.DB
	Dest   *gorm.DB
	Log    *zap.Logger
	Apply  bool
}

func (g *GapRepairer) Run(ctx context.Context) (*RepairPlan, error) {
	var orphans []tradedomain.TradeDetail
	err := g.Source.WithContext(ctx).
		Where("DTL_NO IS NULL").
		Order("TRD_ID asc, DTL_ID asc").
		Find(&orphans).Error
	if err != nil {
		return nil, fmt.Errorf("fetch unnumbered source rows: %w", err)
	}

	used, present, err := destinationState(ctx, g.Dest)
	if err != nil {
		return nil, err
	}

	plan := &RepairPlan{Applied: g.Apply}
	for _, row := range orphans {
		// Rows inserted by an earlier apply keep their DTL_ID, so a re-run
		// must not plan them again.
		if present[row.ID] {
			continue
		}

		taken := used[row.TradeID]
		if taken == nil {
			taken = make(map[int64]bool)
			used[row.TradeID] = taken
		}

		next := int64(1)
		for taken[next] {
			next++
		}

		assigned := row
		lineNo := next
		assigned.LineNo = &lineNo
		if g.Apply {
			if err := g.Dest.WithContext(ctx).Create(&assigned).Error; err != nil {
				return plan, fmt.Errorf("insert repaired row DTL_ID=%d: %w", row.ID, err)
			}
		}

		g.Log.Info("planned line number",
			zap.Int64("trade_id", row.TradeID),
			zap.Int64("dtl_id", row.ID),
			zap.Int64("line_no", lineNo),
			zap.String("code", row.Code),
			zap.Int64("qty", row.Quantity),
			zap.Bool("applied", g.Apply),
		)

		plan.Assignments = append(plan.Assignments, PlannedAssignment{Row: row, LineNo: lineNo})
		taken[lineNo] = true
	}
	return plan, nil
}

// destinationState reads the destination details once and returns the line
// numbers already taken per trade plus the set of row ids already present.
func destinationState(ctx context.Context, dest *gorm.DB) (map[int64]map[int64]bool, map[int64]bool, error) {
	var rows []tradedomain.TradeDetail
	err := dest.WithContext(ctx).
		Select("DTL_ID", "TRD_ID", "DTL_NO").
		Find(&rows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("fetch destination line numbers: %w", err)
	}

	used := make(map[int64]map[int64]bool)
	present := make(map[int64]bool, len(rows))
	for _, r := range rows {
		present[r.ID] = true
		if r.LineNo == nil {
			continue
		}
		if used[r.TradeID] == nil {
			used[r.TradeID] = make(map[int64]bool)
		}
		used[r.TradeID][*r.LineNo] = true
	}
	return used, present, nil
}
