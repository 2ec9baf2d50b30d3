package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// CostSeries is one algorithm's solution costs across a set of instances.
type CostSeries struct {
	Algorithm string
	Costs     []float64
}

// PlotCosts renders a line chart comparing algorithm costs per instance.
// Labels name the instances on the x axis ("pods x nodes"); every series
// must have one cost per label.
func PlotCosts(labels []string, series []CostSeries, title, outputPath string) error {
	if len(labels) == 0 {
		return fmt.Errorf("no instances to plot")
	}
	for _, s := range series {
		if len(s.Costs) != len(labels) {
			return fmt.Errorf("series %s has %d costs for %d instances", s.Algorithm, len(s.Costs), len(labels))
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "instance",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "solution cost",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	line.SetXAxis(labels)
	for _, s := range series {
		data := make([]opts.LineData, len(s.Costs))
		for i, c := range s.Costs {
			data[i] = opts.LineData{Value: c}
		}
		line.AddSeries(s.Algorithm, data)
	}
	line.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
