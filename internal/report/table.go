// Package report renders trial results as a console table and as a
// Prometheus textfile.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/axt/topnselect/internal/trial"
)

const mib = 1 << 20

// Header lists the table columns: average times in milliseconds, average GC
// activity per phase, and average garbage per phase in MiB.
var Header = []string{
	"SELECTOR", "ITEMS", "TOP N",
	"CREATE MS", "SINK MS", "QUERY MS",
	"GC MS", "GC COUNT",
	"GARBAGE CREATE", "GARBAGE SINK", "GARBAGE QUERY",
}

// Row formats one result in Header order.
func Row(r *trial.Result) []string {
	return []string{
		r.Name,
		strconv.Itoa(r.Items),
		strconv.Itoa(r.TopN),
		fmt.Sprintf("%.4f", r.Create.Summary().Mean),
		fmt.Sprintf("%.4f", r.Sink.Summary().Mean),
		fmt.Sprintf("%.4f", r.Query.Summary().Mean),
		fmt.Sprintf("%.4f", r.GCPause.Summary().Mean),
		fmt.Sprintf("%.4f", r.GCCount.Summary().Mean),
		fmt.Sprintf("%.4f", r.GarbageCreate.Summary().Mean/mib),
		fmt.Sprintf("%.4f", r.GarbageSink.Summary().Mean/mib),
		fmt.Sprintf("%.4f", r.GarbageQuery.Summary().Mean/mib),
	}
}

// WriteTable renders results to w.
func WriteTable(w io.Writer, results []*trial.Result) error {
	table := tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
		Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
	})))
	table.Header(Header)
	for _, r := range results {
		if err := table.Append(Row(r)); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	return table.Render()
}
