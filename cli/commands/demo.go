package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/relquery/relquery/cli/internal/ui"
	"github.com/relquery/relquery/internal/debug"
	"github.com/relquery/relquery/query"
	"github.com/relquery/relquery/query/ast"
	"github.com/relquery/relquery/query/builder"
	"github.com/relquery/relquery/runtime/client"
	"github.com/relquery/relquery/schema"
	"github.com/relquery/relquery/telemetry"
)

// demoPostRow is the destination type ScanRows/ScanRow fill in when the
// --run path scans post_entity rows back from Postgres.
type demoPostRow struct {
	ID        int64  `db:"id"`
	Title     string `db:"title"`
	Published bool   `db:"published"`
}

var runAgainstDatabase bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "build a handful of sample queries and print their generated SQL",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&runAgainstDatabase, "run", false, "also execute the select demo against --database-url")
}

func postEntity() *schema.StaticEntity {
	return schema.NewStaticEntity("post_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("title", schema.TypeString),
		schema.Field("published", schema.TypeBoolean),
	)
}

func commentEntity() *schema.StaticEntity {
	return schema.NewStaticEntity("comment_entity", "id",
		schema.Field("id", schema.TypeInteger),
		schema.Field("text", schema.TypeString),
	)
}

func runDemo(cmd *cobra.Command, args []string) error {
	ui.PrintHeader("relq", "typed query IR → PostgreSQL SQL")

	post := postEntity()

	ui.PrintSection("select *")
	selectAll, err := builder.New().From(post).Build()
	if err != nil {
		return err
	}
	printSQL(selectAll)

	ui.PrintSection("where + select")
	filtered, err := builder.New().
		From(post).
		Where([]string{"p"}, ast.Eq(ast.Field("p", "published"), ast.Bool(true)), "demo.go", 1).
		Select([]string{"p"}, ast.Field("p", "title"), "demo.go", 2).
		Build()
	if err != nil {
		return err
	}
	printSQL(filtered)

	ui.PrintSection("update_all")
	updateTarget, err := builder.New().From(post).Build()
	if err != nil {
		return err
	}
	updateSQL, err := query.UpdateAllSQL(updateTarget, []string{"p"}, map[string]ast.Expr{
		"published": ast.Bool(true),
	})
	if err != nil {
		printDiagnostic(err)
		return nil
	}
	fmt.Println(updateSQL)
	fmt.Println()

	ui.PrintSection("insert")
	value := schema.NewValue(post, map[string]interface{}{
		"id":        nil,
		"title":     "hello, relq",
		"published": false,
	})
	insertSQL, err := query.InsertSQL(value)
	if err != nil {
		printDiagnostic(err)
		return nil
	}
	fmt.Println(insertSQL)
	fmt.Println()

	ui.PrintSection("multi-from without select (rejected)")
	rejected, err := builder.New().From(post).From(commentEntity()).Build()
	if err != nil {
		return err
	}
	printSQL(rejected)

	if runAgainstDatabase {
		return runSelectAgainstDatabase(post, selectAll)
	}
	return nil
}

func printSQL(q *ast.Query) {
	sql, err := query.ToSQL(q)
	if err != nil {
		printDiagnostic(err)
		return
	}
	fmt.Println(sql)
	fmt.Println()
}

// runSelectAgainstDatabase exercises the runtime/client package end to end:
// it connects, inserts a row and reads its generated id back with QueryRow,
// then, inside a savepoint-nested transaction, re-reads that row with the
// generic ScanRow helper and the whole table with ScanRows, rather than the
// plain map shape Query/Exec return.
func runSelectAgainstDatabase(post *schema.StaticEntity, selectAll *ast.Query) error {
	if cfg.DatabaseURL == "" {
		ui.PrintWarning("no --database-url/RELQ_DATABASE_URL set, skipping --run")
		return nil
	}

	start := time.Now()
	ctx := context.Background()

	sqlText, err := query.ToSQL(selectAll)
	if err != nil {
		return err
	}

	c, err := client.NewClient(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Connect(ctx); err != nil {
		telemetry.RecordError("db_connect", err, nil)
		return err
	}
	debug.Debug("running demo select", "sql", sqlText)

	insertValue := schema.NewValue(post, map[string]interface{}{
		"id":        nil,
		"title":     "hello, relq (inserted via --run)",
		"published": false,
	})
	insertSQL, err := query.InsertSQL(insertValue)
	if err != nil {
		return err
	}

	inserted, err := c.QueryRow(ctx, insertSQL)
	if err != nil {
		telemetry.RecordError("db_insert", err, nil)
		return err
	}
	ui.PrintSuccess("inserted row id=%v", inserted["id"])

	oneRow, err := builder.New().
		From(post).
		Where([]string{"p"}, ast.Eq(ast.Field("p", "id"), ast.Number(toFloat(inserted["id"]))), "demo.go", 1).
		Build()
	if err != nil {
		return err
	}
	oneRowSQL, err := query.ToSQL(oneRow)
	if err != nil {
		return err
	}

	var rowCount int
	err = c.Transaction(ctx, func(tx *client.Tx) error {
		return tx.NestedTransaction(ctx, func(tx2 *client.Tx) error {
			insertedRow, err := client.ScanRow[demoPostRow](tx2.QueryRowContext(ctx, oneRowSQL))
			if err != nil {
				return err
			}
			if insertedRow != nil {
				ui.PrintSuccess("scanned back: %+v", *insertedRow)
			}

			rows, err := tx2.QueryContext(ctx, sqlText)
			if err != nil {
				return err
			}
			defer rows.Close()
			scanned, err := client.ScanRows[demoPostRow](rows)
			if err != nil {
				return err
			}
			rowCount = len(scanned)

			ui.PrintSection("results")
			for _, row := range scanned {
				fmt.Printf("%+v\n", row)
			}
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError("db_select", err, nil)
		return err
	}

	telemetry.RecordPerformance("demo_run", time.Since(start), map[string]interface{}{"rows": rowCount})
	ui.PrintSuccess("%d row(s)", rowCount)
	return nil
}

// toFloat narrows the driver-returned id (typically int64 for a Postgres
// serial column) to the float64 ast.Number literals carry.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}
