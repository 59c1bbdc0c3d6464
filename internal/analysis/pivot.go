package analysis

import (
	"fmt"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// PivotForChart 多年多类别的长格式图表数据
// 按调用方给定的 Maison 顺序与年份顺序展开，每个 (Maison, 年, 类别) 一行；
// Maison 当年无数据时整年跳过（不补零行）
func (e *Engine) PivotForChart(maisons, years []string) []model.ChartRow {
	rows := make([]model.ChartRow, 0, len(maisons)*len(years)*len(model.Categories))

	for _, maison := range maisons {
		for _, year := range years {
			ds := e.datasets[year]
			if ds == nil {
				continue
			}
			rec := ds.FindMention(maison)
			if rec == nil {
				continue
			}
			label := fmt.Sprintf("%s (%s)", maison, year)
			for _, c := range model.Categories {
				rows = append(rows, model.ChartRow{
					MaisonYear: label,
					Maison:     maison,
					Category:   c,
					Year:       year,
					Mentions:   rec.Count(c),
				})
			}
		}
	}

	return rows
}

// TopNComparisonChart 前 N Maison 的对比图数据
// 每个 Maison 的上一期柱紧挨在本期柱之前，便于逐 Maison 对比；
// OrderedLabels/Groups 供前端做分层横轴
func (e *Engine) TopNComparisonChart(year string, n int) *model.ComparisonChart {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}

	prevYear, hasPrev := e.PreviousPeriod(year)
	if hasPrev {
		if _, ok := e.datasets[prevYear]; !ok {
			hasPrev = false
		}
	}

	chart := &model.ComparisonChart{
		Rows:          []model.ChartRow{},
		OrderedLabels: []string{},
		Groups:        []model.MaisonGroup{},
		Year:          year,
	}
	if hasPrev {
		chart.PreviousYear = prevYear
	}

	for _, rec := range e.TopN(year, n) {
		years := make([]string, 0, 2)
		if hasPrev && e.datasets[prevYear].FindMention(rec.Maison) != nil {
			years = append(years, prevYear)
		}
		years = append(years, year)

		bars := make([]string, 0, len(years))
		for _, y := range years {
			bars = append(bars, fmt.Sprintf("%s (%s)", rec.Maison, y))
		}

		chart.Rows = append(chart.Rows, e.PivotForChart([]string{rec.Maison}, years)...)
		chart.OrderedLabels = append(chart.OrderedLabels, bars...)
		chart.Groups = append(chart.Groups, model.MaisonGroup{Name: rec.Maison, Bars: bars})
	}

	return chart
}

// CategoryYearTotals 各年各类别的全组合计提及数（总览堆叠图）
func (e *Engine) CategoryYearTotals() []model.CategoryYearTotal {
	out := make([]model.CategoryYearTotal, 0, len(e.periods)*len(model.Categories))

	for _, year := range e.periods {
		ds, ok := e.datasets[year]
		if !ok {
			continue
		}
		for _, c := range model.Categories {
			total := 0
			for _, r := range ds.Mentions {
				total += r.Count(c)
			}
			out = append(out, model.CategoryYearTotal{
				Year:     year,
				Category: c,
				Mentions: total,
			})
		}
	}

	return out
}

// MaisonTrend 单个 Maison 全部可用年份的长格式数据（逐年演变图）
func (e *Engine) MaisonTrend(maison string) []model.ChartRow {
	years := make([]string, 0, len(e.periods))
	for _, year := range e.periods {
		ds, ok := e.datasets[year]
		if !ok {
			continue
		}
		if ds.FindMention(maison) != nil {
			years = append(years, year)
		}
	}

	return e.PivotForChart([]string{maison}, years)
}
