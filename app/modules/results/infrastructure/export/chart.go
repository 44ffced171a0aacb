package resultsexport

import (
	"bytes"
	"fmt"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxChartTeams caps the bars drawn on the leaderboard chart.
const MaxChartTeams = 20

// ChartPalette holds the colors of a rendered chart.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Text       drawing.Color
}

// DefaultPalette is the dark theme used in Discord embeds.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("1e1f22"),
	Bar:        drawing.ColorFromHex("5865f2"),
	Text:       drawing.ColorFromHex("f2f3f5"),
}

// LeaderboardChart renders the top teams' total points as a PNG bar chart.
func LeaderboardChart(lb *resultsservice.Leaderboard, palette ChartPalette) ([]byte, error) {
	if len(lb.Entries) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	entries := lb.Entries
	if len(entries) > MaxChartTeams {
		entries = entries[:MaxChartTeams]
	}

	bars := make([]chart.Value, len(entries))
	top := 1.0
	for i, e := range entries {
		bars[i] = chart.Value{
			Label: e.TeamTag,
			Value: float64(e.Points),
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		}
		top = max(top, float64(e.Points))
	}

	graph := chart.BarChart{
		Title:      fmt.Sprintf("Scrim %s", lb.ScrimID),
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      max(400, 60*len(bars)+200),
		Height:     480,
		BarWidth:   40,
		BarSpacing: 20,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: palette.Background},
		XAxis:  chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderNoDataPlaceholder draws straight onto a PNG renderer; chart.Chart
// refuses to render without a series.
func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No results recorded yet"
	)

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("placeholder renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("placeholder font: %w", err)
	}

	r.SetFillColor(palette.Background)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(msg)
	r.Text(msg, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, fmt.Errorf("render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}
