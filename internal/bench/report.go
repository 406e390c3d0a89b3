package bench

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders results with one row per size and order.
func Table(results []Result) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"keys", "order", "insert ns/op", "search ns/op", "remove ns/op", "height", "black height"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	for _, res := range results {
		tbl.AppendRow(table.Row{
			humanize.Comma(int64(res.Size)),
			string(res.Order),
			formatNs(res.NsPerOp(res.Insert)),
			formatNs(res.NsPerOp(res.Search)),
			formatNs(res.NsPerOp(res.Remove)),
			res.Height,
			res.BlackHeight,
		})
	}

	return tbl.Render()
}

func formatNs(ns float64) string {
	return humanize.CommafWithDigits(ns, 1)
}

// Plot writes an HTML page with one line chart per order: ns/op of each
// phase against the number of keys.
func Plot(w io.Writer, results []Result) error {
	page := components.NewPage()
	page.PageTitle = "rbkeys benchmark"

	for _, order := range Orders() {
		rows := make([]Result, 0, len(results))

		for _, res := range results {
			if res.Order == order {
				rows = append(rows, res)
			}
		}

		if len(rows) == 0 {
			continue
		}

		slices.SortFunc(rows, func(a, b Result) int { return a.Size - b.Size })

		page.AddCharts(orderChart(order, rows))
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}

func orderChart(order Order, rows []Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s keys", order),
			Subtitle: "nanoseconds per operation",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "5px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "keys"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ns/op"}),
	)

	labels := make([]string, len(rows))
	for i, res := range rows {
		labels[i] = strconv.Itoa(res.Size)
	}

	line.SetXAxis(labels)

	phases := []struct {
		name  string
		value func(Result) float64
	}{
		{"insert", func(r Result) float64 { return r.NsPerOp(r.Insert) }},
		{"search", func(r Result) float64 { return r.NsPerOp(r.Search) }},
		{"remove", func(r Result) float64 { return r.NsPerOp(r.Remove) }},
	}

	for _, phase := range phases {
		data := make([]opts.LineData, len(rows))
		for i, res := range rows {
			data[i] = opts.LineData{Value: phase.value(res)}
		}

		line.AddSeries(phase.name, data)
	}

	return line
}
