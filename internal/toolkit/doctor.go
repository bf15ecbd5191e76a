package toolkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tradedomain "github.com/serendigo/pos/internal/trade/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type DoctorActionKind string

const (
	ActionCreateTable DoctorActionKind = "create_table"
	ActionAddColumn   DoctorActionKind = "add_column"
	ActionCreateIndex DoctorActionKind = "create_index"
	ActionWarn        DoctorActionKind = "warn"
)

// DoctorAction is one planned (or applied) schema fix, or a warning for a
// mismatch that is not safe to fix automatically.
type DoctorAction struct {
	Kind    DoctorActionKind
	Table   string
	Column  string
	Detail  string
	Applied bool
}

type DoctorReport struct {
	Applied bool
	Actions []DoctorAction
}

func (r *DoctorReport) Warnings() []DoctorAction {
	var warns []DoctorAction
	for _, a := range r.Actions {
		if a.Kind == ActionWarn {
			warns = append(warns, a)
		}
	}
	return warns
}

// Doctor compares a storage handle's table layout against the model layout
// and plans minimal safe fixes: missing tables are created, missing columns
// are added as nullable, and the per-trade line-number unique index is
// ensured. Existing columns are never dropped or narrowed; type and
// nullability drift only produces warnings.
type Doctor struct {
	DB    *gorm.DB
	Log   *zap.Logger
	Apply bool
}

func (d *Doctor) Run(ctx context.Context) (*DoctorReport, error) {
	conn := d.DB.WithContext(ctx)
	report := &DoctorReport{Applied: d.Apply}

	for _, model := range Models() {
		expected, err := schema.Parse(model, &sync.Map{}, conn.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("parse model schema: %w", err)
		}

		migrator := conn.Migrator()
		if !migrator.HasTable(model) {
			action := DoctorAction{Kind: ActionCreateTable, Table: expected.Table}
			if d.Apply {
				if err := migrator.CreateTable(model); err != nil {
					return report, fmt.Errorf("create table %s: %w", expected.Table, err)
				}
				action.Applied = true
			}
			report.Actions = append(report.Actions, action)
			continue
		}

		actions, err := d.reconcileColumns(conn, model, expected)
		if err != nil {
			return report, err
		}
		report.Actions = append(report.Actions, actions...)
	}

	indexAction, err := d.ensureUniqueDetailIndex(conn)
	if err != nil {
		return report, err
	}
	if indexAction != nil {
		report.Actions = append(report.Actions, *indexAction)
	}

	d.Log.Info("schema doctor finished",
		zap.Int("actions", len(report.Actions)),
		zap.Int("warnings", len(report.Warnings())),
		zap.Bool("applied", d.Apply),
	)
	return report, nil
}

func (d *Doctor) reconcileColumns(conn *gorm.DB, model interface{}, expected *schema.Schema) ([]DoctorAction, error) {
	columns, err := conn.Migrator().ColumnTypes(model)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", expected.Table, err)
	}

	existing := make(map[string]gorm.ColumnType, len(columns))
	for _, col := range columns {
		existing[strings.ToUpper(col.Name())] = col
	}

	var actions []DoctorAction
	for _, field := range expected.Fields {
		if field.DBName == "" || field.DataType == "" {
			continue
		}

		col, ok := existing[strings.ToUpper(field.DBName)]
		if !ok {
			// Added nullable regardless of the model so existing rows keep
			// loading; NOT NULL would fail on populated tables.
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", expected.Table, field.DBName, columnSQLType(field))
			action := DoctorAction{
				Kind:   ActionAddColumn,
				Table:  expected.Table,
				Column: field.DBName,
				Detail: stmt,
			}
			if d.Apply {
				if err := conn.Exec(stmt).Error; err != nil {
					return actions, fmt.Errorf("add column %s.%s: %w", expected.Table, field.DBName, err)
				}
				action.Applied = true
			}
			actions = append(actions, action)
			continue
		}

		if got, want := typeClass(col.DatabaseTypeName()), typeClass(columnSQLType(field)); got != "" && got != want {
			actions = append(actions, DoctorAction{
				Kind:   ActionWarn,
				Table:  expected.Table,
				Column: field.DBName,
				Detail: fmt.Sprintf("type mismatch: db=%s, expected=%s", col.DatabaseTypeName(), columnSQLType(field)),
			})
		}
		if nullable, ok := col.Nullable(); ok && !nullable && !field.NotNull && !field.PrimaryKey {
			actions = append(actions, DoctorAction{
				Kind:   ActionWarn,
				Table:  expected.Table,
				Column: field.DBName,
				Detail: "nullability mismatch: db NOT NULL, expected NULLable",
			})
		}
	}
	return actions, nil
}

func (d *Doctor) ensureUniqueDetailIndex(conn *gorm.DB) (*DoctorAction, error) {
	model := &tradedomain.TradeDetail{}
	if conn.Migrator().HasIndex(model, UniqueDetailIndex) {
		return nil, nil
	}
	action := &DoctorAction{
		Kind:   ActionCreateIndex,
		Table:  model.TableName(),
		Detail: fmt.Sprintf("CREATE UNIQUE INDEX %s ON trade_details(TRD_ID, DTL_NO)", UniqueDetailIndex),
	}
	if d.Apply {
		if err := conn.Migrator().CreateIndex(model, UniqueDetailIndex); err != nil {
			return action, fmt.Errorf("create unique index: %w", err)
		}
		action.Applied = true
	}
	return action, nil
}

// columnSQLType renders a portable column type for ADD COLUMN statements and
// mismatch reports.
func columnSQLType(field *schema.Field) string {
	switch field.DataType {
	case schema.Int, schema.Uint:
		return "INTEGER"
	case schema.String:
		if field.Size > 0 && field.Size <= 255 {
			return fmt.Sprintf("VARCHAR(%d)", field.Size)
		}
		return "TEXT"
	case schema.Time:
		return "DATETIME"
	case schema.Bool:
		return "INTEGER"
	default:
		// Explicit `type:` tags carry the SQL type verbatim.
		return strings.ToUpper(string(field.DataType))
	}
}

// typeClass buckets SQL type names so INTEGER/BIGINT or VARCHAR/TEXT do not
// register as drift across dialects.
func typeClass(typeName string) string {
	t := strings.ToUpper(typeName)
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "INT"):
		return "integer"
	case strings.Contains(t, "CHAR"), strings.Contains(t, "TEXT"):
		return "text"
	case strings.Contains(t, "DATE"), strings.Contains(t, "TIME"):
		return "datetime"
	default:
		return strings.ToLower(t)
	}
}
