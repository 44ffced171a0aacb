// Package resultsexport renders a scrim leaderboard as a spreadsheet or chart.
package resultsexport

import (
	"fmt"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/xuri/excelize/v2"
)

const (
	leaderboardSheet = "Leaderboard"
	scoringSheet     = "Scoring"
)

var leaderboardHeaders = []string{
	"Rank",
	"Tag",
	"Team",
	"Slot",
	"Games",
	"Kills",
	"Placement Points",
	"Kill Points",
	"Total",
}

// LeaderboardXLSX returns the standings and the points table as a workbook.
func LeaderboardXLSX(lb *resultsservice.Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// A new file starts with "Sheet1"; rename it so the leaderboard opens first.
	if err := f.SetSheetName(f.GetSheetName(0), leaderboardSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	for i, h := range leaderboardHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(leaderboardSheet, cell, h)
	}

	for i, e := range lb.Entries {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(leaderboardSheet, cell, v)
		}
		write(1, i+1)
		write(2, e.TeamTag)
		write(3, e.TeamName)
		if e.Registered {
			write(4, e.Slot)
		}
		write(5, e.Games)
		write(6, e.Kills)
		write(7, e.PlacementPoints)
		write(8, e.KillPoints)
		write(9, e.Points)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(leaderboardSheet, 1, 1, style)
	}
	_ = f.SetColWidth(leaderboardSheet, "A", "A", 6)
	_ = f.SetColWidth(leaderboardSheet, "B", "B", 10)
	_ = f.SetColWidth(leaderboardSheet, "C", "C", 28)
	_ = f.SetColWidth(leaderboardSheet, "D", "I", 14)

	if _, err := f.NewSheet(scoringSheet); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}
	cfg := lb.Scoring
	scoring := [][2]any{
		{"Placement", "Points"},
		{"1", cfg.P1},
		{"2", cfg.P2},
		{"3", cfg.P3},
		{"4", cfg.P4},
		{"5", cfg.P5},
		{"6", cfg.P6},
		{"7", cfg.P7},
		{"8", cfg.P8},
		{"9+", cfg.P9Plus},
		{"Per kill", cfg.KillPoints},
	}
	for i, pair := range scoring {
		_ = f.SetCellValue(scoringSheet, fmt.Sprintf("A%d", i+1), pair[0])
		_ = f.SetCellValue(scoringSheet, fmt.Sprintf("B%d", i+1), pair[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
