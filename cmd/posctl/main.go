// Command posctl is the offline migration and reconciliation toolkit. It
// connects directly to storage and never goes through the HTTP API, so it can
// be pointed at any pair of databases the server itself is not using.
//
// Subcommands:
//
//	copy     batch-copy products, trades and trade details between databases
//	diagnose classify source trade details against a destination (read-only)
//	repair   assign line numbers to unnumbered legacy rows and insert them
//	doctor   reconcile a database's tables and columns with the model layout
//	peek     list trade ids on a database
//
// Mutating subcommands default to a dry run; pass --apply to write.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/serendigo/pos/internal/logger"
	"github.com/serendigo/pos/internal/toolkit"
	"github.com/serendigo/pos/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	exitUsage          = 1
	exitMissingStorage = 2
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	log, err := logger.NewConsole(os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(exitUsage)
	}
	defer log.Sync()

	ctx := context.Background()

	switch os.Args[1] {
	case "copy":
		runCopy(ctx, log, os.Args[2:])
	case "diagnose":
		runDiagnose(ctx, log, os.Args[2:])
	case "repair":
		runRepair(ctx, log, os.Args[2:])
	case "doctor":
		runDoctor(ctx, log, os.Args[2:])
	case "peek":
		runPeek(ctx, log, os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(exitUsage)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: posctl <command> [flags]

commands:
  copy      --src <url> --dst <url> [--apply] [--batch-size n]
  diagnose  --src <url> --dst <url>
  repair    --src <url> --dst <url> [--apply]
  doctor    --db <url> [--apply]
  peek      --db <url>

Database urls accept sqlite paths (pos.db, sqlite:///pos.db) as well as
mysql:// and postgres:// urls. Mutating commands print a plan unless --apply
is given.
`)
}

func runCopy(ctx context.Context, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)
	src := fs.String("src", "", "source database url")
	dst := fs.String("dst", "", "destination database url")
	apply := fs.Bool("apply", false, "write rows to the destination")
	batchSize := fs.Int("batch-size", toolkit.DefaultBatchSize, "rows per batch insert")
	parseFlags(fs, args)

	source := openExisting(log, "src", *src)
	// The destination is created on apply; a dry run still needs it to exist.
	var dest *gorm.DB
	if *apply {
		dest = open(log, "dst", *dst)
	} else {
		dest = openExisting(log, "dst", *dst)
	}

	copier := &toolkit.Copier{
		Source:    source,
		Dest:      dest,
		Log:       log,
		BatchSize: *batchSize,
		Apply:     *apply,
	}
	report, err := copier.Run(ctx)
	if err != nil {
		fatal(log, "copy failed", err)
	}

	for _, t := range report.Tables {
		fmt.Printf("%-14s source=%d inserted=%d skipped=%d\n", t.Table, t.SourceRows, t.Inserted, t.Skipped)
	}
	total := report.Totals()
	fmt.Printf("%-14s source=%d inserted=%d skipped=%d\n", "total", total.SourceRows, total.Inserted, total.Skipped)
	if !report.Applied {
		fmt.Println("dry run: nothing written, re-run with --apply")
	}
}

func runDiagnose(ctx context.Context, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("diagnose", flag.ExitOnError)
	src := fs.String("src", "", "source database url")
	dst := fs.String("dst", "", "destination database url")
	parseFlags(fs, args)

	source := openExisting(log, "src", *src)
	dest := openExisting(log, "dst", *dst)

	diag, err := toolkit.DiagnoseDetails(ctx, source, dest)
	if err != nil {
		fatal(log, "diagnose failed", err)
	}

	fmt.Printf("source rows:       %d\n", diag.SourceRows)
	fmt.Printf("destination rows:  %d\n", diag.DestRows)
	fmt.Printf("missing:           %d\n", len(diag.Missing))
	fmt.Printf("pk conflicts:      %d\n", len(diag.PKConflicts))
	fmt.Printf("unique conflicts:  %d\n", len(diag.UniqueConflicts))

	for _, c := range diag.PKConflicts {
		fmt.Printf("  pk     DTL_ID=%d trade=%d\n", c.Source.ID, c.Source.TradeID)
	}
	for _, c := range diag.UniqueConflicts {
		fmt.Printf("  unique DTL_ID=%d trade=%d line=%s (dest DTL_ID=%d)\n",
			c.Source.ID, c.Source.TradeID, formatLineNo(c.Source.LineNo), c.Dest.ID)
	}
	for i, m := range diag.Missing {
		if i == 10 {
			fmt.Printf("  ... and %d more missing rows\n", len(diag.Missing)-i)
			break
		}
		fmt.Printf("  missing DTL_ID=%d trade=%d line=%s\n", m.ID, m.TradeID, formatLineNo(m.LineNo))
	}
}

func runRepair(ctx context.Context, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("repair", flag.ExitOnError)
	src := fs.String("src", "", "source database url")
	dst := fs.String("dst", "", "destination database url")
	apply := fs.Bool("apply", false, "insert repaired rows into the destination")
	parseFlags(fs, args)

	source := openExisting(log, "src", *src)
	dest := openExisting(log, "dst", *dst)

	repairer := &toolkit.GapRepairer{Source: source, Dest: dest, Log: log, Apply: *apply}
	plan, err := repairer.Run(ctx)
	if err != nil {
		fatal(log, "repair failed", err)
	}

	for _, a := range plan.Assignments {
		fmt.Printf("trade=%d DTL_ID=%d -> line %d\n", a.Row.TradeID, a.Row.ID, a.LineNo)
	}
	fmt.Printf("%d rows planned\n", len(plan.Assignments))
	if !plan.Applied {
		fmt.Println("dry run: nothing written, re-run with --apply")
	}
}

func runDoctor(ctx context.Context, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	url := fs.String("db", "", "database url")
	apply := fs.Bool("apply", false, "apply safe schema fixes")
	parseFlags(fs, args)

	conn := openExisting(log, "db", *url)

	doctor := &toolkit.Doctor{DB: conn, Log: log, Apply: *apply}
	report, err := doctor.Run(ctx)
	if err != nil {
		fatal(log, "doctor failed", err)
	}

	for _, a := range report.Actions {
		target := a.Table
		if a.Column != "" {
			target += "." + a.Column
		}
		fmt.Printf("%-12s %-30s %s\n", a.Kind, target, a.Detail)
	}
	if len(report.Actions) == 0 {
		fmt.Println("schema is healthy")
	} else if !report.Applied {
		fmt.Println("dry run: nothing changed, re-run with --apply")
	}
	if warns := report.Warnings(); len(warns) > 0 {
		fmt.Printf("%d warnings need manual attention\n", len(warns))
	}
}

func runPeek(ctx context.Context, log *zap.Logger, args []string) {
	fs := flag.NewFlagSet("peek", flag.ExitOnError)
	url := fs.String("db", "", "database url")
	parseFlags(fs, args)

	conn := openExisting(log, "db", *url)

	ids, err := toolkit.PeekTradeIDs(ctx, conn)
	if err != nil {
		fatal(log, "peek failed", err)
	}
	fmt.Printf("%d trades\n", len(ids))
	for _, id := range ids {
		fmt.Println(id)
	}
}

func parseFlags(fs *flag.FlagSet, args []string) {
	_ = fs.Parse(args)
	required := map[string]bool{"src": false, "dst": false, "db": false}
	fs.VisitAll(func(f *flag.Flag) {
		if _, ok := required[f.Name]; ok && f.Value.String() == "" {
			fmt.Fprintf(os.Stderr, "missing required flag --%s\n", f.Name)
			fs.Usage()
			os.Exit(exitUsage)
		}
	})
}

// open connects without checking for prior existence. Sqlite creates the
// file on first write.
func open(log *zap.Logger, role, rawURL string) *gorm.DB {
	conn, err := db.Open(rawURL)
	if err != nil {
		fatal(log, "open "+role, err)
	}
	return conn
}

// openExisting refuses to silently create an empty sqlite database when the
// caller expected data to already be there.
func openExisting(log *zap.Logger, role, rawURL string) *gorm.DB {
	if path, ok := db.SQLitePath(rawURL); ok {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s database not found: %s\n", role, path)
			os.Exit(exitMissingStorage)
		}
	}
	return open(log, role, rawURL)
}

func formatLineNo(n *int64) string {
	if n == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *n)
}

func fatal(log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.Error(err))
	os.Exit(exitUsage)
}
