package util

import (
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"tp-server/engine/curation"
)

// PlotDayUtilization generates an HTML file rendering scheduled minutes per day
// of a curated plan.
func PlotDayUtilization(days []curation.DayPlan, outputFile string) {
	dates := make([]string, 0, len(days))
	values := make([]opts.BarData, 0, len(days))
	for _, day := range days {
		scheduled := 0
		for _, item := range day.Items {
			scheduled += item.EndMin - item.StartMin
		}
		dates = append(dates, day.Date)
		values = append(values, opts.BarData{Value: scheduled})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Day Utilization",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Scheduled minutes per day",
			Subtitle: "Planned itinerary utilization",
		}),
	)
	bar.SetXAxis(dates)
	bar.AddSeries("ScheduledMinutes", values,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{c}",
		}),
	)

	// Create an HTML file to render the chart.
	f, err := os.Create(outputFile)
	if err != nil {
		log.Printf("[Plotter] Failed to create HTML file: %v", err)
		return
	}
	defer f.Close()

	// Render the chart into the HTML file.
	if err := bar.Render(f); err != nil {
		log.Printf("[Plotter] Failed to render chart: %v", err)
		return
	}

	fmt.Println("Day utilization chart generated: " + outputFile)
}
