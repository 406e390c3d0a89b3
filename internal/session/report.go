package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	return tbl
}

func (s *Session) writeMenu() {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"command", "aliases", ""})

	for _, entry := range verbTable {
		usage := string(entry.verb)
		if entry.takesKeys {
			usage += " <key>..."
		}

		tbl.AppendRow(table.Row{usage, strings.Join(entry.aliases, ", "), entry.summary})
	}

	fmt.Fprintf(s.out, "%s\n", tbl.Render())
}

// writeStats prints the tree shape followed by per-command counts and
// timings in menu order.
func (s *Session) writeStats() {
	fmt.Fprintf(s.out, "keys: %s  height: %d  black height: %d\n",
		humanize.Comma(int64(s.tree.Len())), s.tree.Height(), s.tree.BlackHeight())

	tbl := newTable()
	tbl.AppendHeader(table.Row{"op", "count", "total", "avg"})

	rows := 0

	for _, entry := range verbTable {
		st, ok := s.stats[entry.verb]
		if !ok || st.count == 0 {
			continue
		}

		avg := st.total / time.Duration(st.count)
		tbl.AppendRow(table.Row{string(entry.verb), humanize.Comma(int64(st.count)), st.total.String(), avg.String()})
		rows++
	}

	if rows == 0 {
		return
	}

	fmt.Fprintf(s.out, "%s\n", tbl.Render())
}
