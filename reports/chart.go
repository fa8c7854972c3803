package reports

import (
	"bytes"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Dosada05/atletica-scoreboard/models"
)

// ChartPalette takes its colours from the app settings.
type ChartPalette struct {
	Bar        drawing.Color
	Background drawing.Color
	Text       drawing.Color
}

func PaletteFromSettings(s models.AppSettings) ChartPalette {
	return ChartPalette{
		Bar:        colorOr(s.PrimaryColor, drawing.ColorFromHex("e38702")),
		Background: drawing.ColorWhite,
		Text:       colorOr(s.SecondaryColor, drawing.ColorFromHex("5a0509")),
	}
}

func colorOr(hex string, fallback drawing.Color) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return fallback
	}
	return drawing.ColorFromHex(hex)
}

// StandingsChart renders total points per athletic as a PNG bar chart.
func StandingsChart(title string, entries []models.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoData(palette, "Sem atléticas cadastradas")
	}

	bars := make([]chart.Value, len(entries))
	lo, hi := 0.0, 1.0
	for i, e := range entries {
		v := float64(e.TotalPoints)
		bars[i] = chart.Value{
			Label: e.Name,
			Value: v,
			Style: chart.Style{FillColor: palette.Bar, StrokeColor: palette.Bar},
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      120*len(entries) + 160,
		Height:     480,
		BarWidth:   60,
		Background: chart.Style{FillColor: palette.Background, Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Canvas:     chart.Style{FillColor: palette.Background},
		TitleStyle: chart.Style{FontColor: palette.Text},
		XAxis:      chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			// An explicit range keeps the chart renderable when every total is equal.
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNoData draws a single empty bar labelled with msg.
func renderNoData(palette ChartPalette, msg string) ([]byte, error) {
	graph := chart.BarChart{
		Width:      400,
		Height:     240,
		BarWidth:   40,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.Style{FontColor: palette.Text},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Bars:       []chart.Value{{Label: msg, Value: 0}},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
