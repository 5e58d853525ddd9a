package cmd

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type column struct {
	title string
	align text.Align
}

// newReportTable starts a table with the given columns. Rounded box drawing
// is used when styled, plain ASCII otherwise so piped output stays greppable.
func newReportTable(styled bool, columns ...column) table.Writer {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, c := range columns {
		header[i] = c.title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return tw
}

// levelTable lays out a per-level comparison: level, digest A, digest B, result.
func levelTable(styled bool) table.Writer {
	return newReportTable(styled,
		column{"Level", text.AlignRight},
		column{"A", text.AlignLeft},
		column{"B", text.AlignLeft},
		column{"Result", text.AlignLeft},
	)
}

// groupTable lays out duplicate groups, one row per group with its files
// stacked in the last cell.
func groupTable(styled bool) table.Writer {
	return newReportTable(styled,
		column{"Group", text.AlignLeft},
		column{"Size", text.AlignRight},
		column{"Copies", text.AlignRight},
		column{"Files", text.AlignLeft},
	)
}
