package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
)

func TestReportTables(t *testing.T) {
	tests := []struct {
		name      string
		tw        table.Writer
		row       table.Row
		wantSubs  []string
		wantLines int
	}{
		{
			name:      "levels plain",
			tw:        levelTable(false),
			row:       table.Row{1, "aaaa", "bbbb", "differs"},
			wantSubs:  []string{"+-", "LEVEL", "RESULT", "differs"},
			wantLines: 5,
		},
		{
			name:      "levels styled",
			tw:        levelTable(true),
			row:       table.Row{2, "aaaa", "-", "only A"},
			wantSubs:  []string{"╭", "╰", "only A"},
			wantLines: 5,
		},
		{
			name:      "groups stack file names",
			tw:        groupTable(false),
			row:       table.Row{"042-deadbeef", "3.0 kB", 2, "x.bin\ny.bin"},
			wantSubs:  []string{"GROUP", "COPIES", "x.bin", "y.bin"},
			wantLines: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tw.AppendRow(tt.row)
			out := tt.tw.Render()
			for _, sub := range tt.wantSubs {
				if !strings.Contains(out, sub) {
					t.Errorf("table = %q, want it to contain %q", out, sub)
				}
			}
			if n := strings.Count(out, "\n") + 1; n != tt.wantLines {
				t.Errorf("table has %d lines, want %d:\n%s", n, tt.wantLines, out)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal(buffer) = true, want false")
	}
}
