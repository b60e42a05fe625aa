package usecase

import (
	"fmt"
	"math"

	"github.com/secmon-lab/gridiron/pkg/domain/model"
	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// Chart geometry in SVG user units
const (
	efficiencyWidth   = 320.0
	efficiencyHeight  = 240.0
	efficiencyPadding = 24.0

	pieSize   = 240.0
	pieRadius = 80.0

	standingsWidth     = 640.0
	standingsLabelW    = 50.0
	standingsRightPad  = 20.0
	standingsRowHeight = 24.0
	standingsBarHeight = 16.0

	// neutralBarColor fills teams other than the selected one
	neutralBarColor = "#d1d5db"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// valueDomain returns [lo, hi] covering values and zero, never empty
func valueDomain(values []float64) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// BuildEfficiencyChart compares pass and rush EPA/play of a team
func BuildEfficiencyChart(t model.TeamStat) *model.BarChart {
	colors := model.ColorsOf(t.Team)
	entries := []struct {
		label string
		value float64
		plays int
	}{
		{"Pass", round3(t.PassEPAPerPlay), t.PassPlays.Int()},
		{"Rush", round3(t.RushEPAPerPlay), t.RushPlays.Int()},
	}

	lo, hi := valueDomain([]float64{entries[0].value, entries[1].value})
	plotH := efficiencyHeight - 2*efficiencyPadding
	scale := plotH / (hi - lo)
	zeroY := efficiencyPadding + hi*scale

	slotW := (efficiencyWidth - 2*efficiencyPadding) / float64(len(entries))
	barW := slotW * 0.6

	chart := &model.BarChart{
		Width:  efficiencyWidth,
		Height: efficiencyHeight,
		ZeroY:  round2(zeroY),
	}
	for i, e := range entries {
		h := math.Abs(e.value) * scale
		y := zeroY - h
		if e.value < 0 {
			y = zeroY
		}
		chart.Bars = append(chart.Bars, model.Bar{
			Label:   e.label,
			Value:   e.value,
			Plays:   e.plays,
			X:       round2(efficiencyPadding + slotW*float64(i) + (slotW-barW)/2),
			Y:       round2(y),
			Width:   round2(barW),
			Height:  round2(h),
			Color:   colors.Primary,
			Tooltip: fmt.Sprintf("%s (%s plays)", model.FormatEPA(e.value), model.FormatCount(e.plays)),
		})
	}
	return chart
}

// BuildShareChart splits a team's plays into pass and rush sectors
func BuildShareChart(t model.TeamStat) *model.PieChart {
	colors := model.ColorsOf(t.Team)
	pass, rush := t.PassPlays.Int(), t.RushPlays.Int()

	chart := &model.PieChart{
		Size:    pieSize,
		Caption: fmt.Sprintf("%s pass plays · %s rush plays", model.FormatCount(pass), model.FormatCount(rush)),
	}

	total := pass + rush
	if total <= 0 {
		return chart
	}

	center := pieSize / 2
	start := -math.Pi / 2
	for _, s := range []struct {
		label string
		value int
		color string
	}{
		{"Pass", pass, colors.Primary},
		{"Rush", rush, colors.Secondary},
	} {
		if s.value <= 0 {
			continue
		}
		share := float64(s.value) / float64(total)
		end := start + share*2*math.Pi
		mid := (start + end) / 2

		chart.Slices = append(chart.Slices, model.PieSlice{
			Label:   s.label,
			Value:   s.value,
			Percent: int(math.Round(share * 100)),
			Path:    arcPath(center, center, pieRadius, start, end),
			Color:   s.color,
			LabelX:  round2(center + pieRadius*0.6*math.Cos(mid)),
			LabelY:  round2(center + pieRadius*0.6*math.Sin(mid)),
		})
		start = end
	}
	return chart
}

// arcPath returns an SVG path of the sector between two angles in radians
func arcPath(cx, cy, r, start, end float64) string {
	if end-start >= 2*math.Pi-1e-9 {
		// Full circle as two half arcs
		return fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f A %.2f %.2f 0 1 1 %.2f %.2f Z",
			cx, cy-r, r, r, cx, cy+r, r, r, cx, cy-r)
	}
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy,
		cx+r*math.Cos(start), cy+r*math.Sin(start),
		r, r, large,
		cx+r*math.Cos(end), cy+r*math.Sin(end))
}

// BuildStandingsChart ranks every team by EPA/play, highlighting selected
// and marking the league average
func BuildStandingsChart(teams []model.TeamStat, selected types.TeamCode) *model.RankingChart {
	sorted := SortTeams(teams, types.SortByEPAPerPlay)
	avg := model.MeanEPAPerPlay(teams)

	values := make([]float64, 0, len(sorted)+1)
	for _, t := range sorted {
		values = append(values, round3(t.EPAPerPlay))
	}
	if avg.Valid {
		values = append(values, avg.Value)
	}
	lo, hi := valueDomain(values)

	plotW := standingsWidth - standingsLabelW - standingsRightPad
	xOf := func(v float64) float64 {
		return standingsLabelW + (v-lo)/(hi-lo)*plotW
	}
	zeroX := xOf(0)

	chart := &model.RankingChart{
		Width:     standingsWidth,
		Height:    standingsRowHeight * float64(len(sorted)),
		LabelX:    standingsLabelW - 6,
		ZeroX:     round2(zeroX),
		Average:   avg,
		BarHeight: standingsBarHeight,
		Caption: fmt.Sprintf("All %d teams ranked by EPA/Play · %s highlighted · League average shown",
			len(sorted), selected),
	}
	if avg.Valid {
		chart.AverageX = round2(xOf(avg.Value))
	}

	highlight := model.ColorsOf(selected).Primary
	for i, t := range sorted {
		v := round3(t.EPAPerPlay)
		x := xOf(v)
		bar := model.RankingBar{
			Team:     t.Team,
			Value:    v,
			X:        round2(math.Min(x, zeroX)),
			Y:        round2(standingsRowHeight*float64(i) + (standingsRowHeight-standingsBarHeight)/2),
			Width:    round2(math.Abs(x - zeroX)),
			Color:    neutralBarColor,
			Selected: t.Team == selected,
		}
		if bar.Selected {
			bar.Color = highlight
		}
		chart.Bars = append(chart.Bars, bar)
	}
	return chart
}
