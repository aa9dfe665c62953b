package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/gasto_efectivo/internal/service"
)

// Generator renders report aggregates as PNG images.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// CategoryPie renders the category breakdown as a donut-style pie chart.
// Returns nil bytes when there is nothing to draw.
func (g *Generator) CategoryPie(breakdown []service.CategoryTotal) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, b := range breakdown {
		total += b.Amount
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, b := range breakdown {
		share := (b.Amount / total) * 100
		// Slivers under 1% just clutter the labels.
		if share < 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f (%.1f%%)", b.Category, b.Amount, share),
			Value: b.Amount,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// DailyLine renders the daily evolution series as a time-series line
// chart. Needs at least two days of data; returns nil bytes otherwise.
func (g *Generator) DailyLine(series []service.DailyTotal) ([]byte, error) {
	if len(series) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, len(series))
	yValues := make([]float64, len(series))
	for i, point := range series {
		xValues[i] = point.Date.Time()
		yValues[i] = point.Amount
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Spent per day",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render daily series: %w", err)
	}
	return buffer.Bytes(), nil
}
