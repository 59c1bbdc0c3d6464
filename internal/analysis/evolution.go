package analysis

import (
	"math"
	"sort"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// evolutionTopSize 同比榜单长度
const evolutionTopSize = 5

// Evolution 同比变动分析
// 只对本期与上一期都有数据的 Maison 做对比；上一期缺失返回 nil
func (e *Engine) Evolution(year string) *model.EvolutionReport {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}
	prevYear, ok := e.PreviousPeriod(year)
	if !ok {
		return nil
	}
	prev := e.datasets[prevYear]
	if prev == nil {
		return nil
	}

	report := &model.EvolutionReport{
		Year:         year,
		PreviousYear: prevYear,
		Rows:         []model.EvolutionRow{},
	}

	for _, prevRec := range prev.Mentions {
		cur := ds.FindMention(prevRec.Maison)
		if cur == nil {
			continue
		}

		row := model.EvolutionRow{
			Maison:   prevRec.Maison,
			Previous: prevRec.TotalMentions,
			Current:  cur.TotalMentions,
			Change:   cur.TotalMentions - prevRec.TotalMentions,
		}
		if prevRec.TotalMentions > 0 {
			pct := float64(row.Change) / float64(prevRec.TotalMentions) * 100
			row.ChangePercent = math.Round(pct*10) / 10
		}
		report.Rows = append(report.Rows, row)
	}

	improvers := make([]model.EvolutionRow, len(report.Rows))
	copy(improvers, report.Rows)
	sort.SliceStable(improvers, func(i, j int) bool {
		return improvers[i].Change > improvers[j].Change
	})

	decliners := make([]model.EvolutionRow, len(report.Rows))
	copy(decliners, report.Rows)
	sort.SliceStable(decliners, func(i, j int) bool {
		return decliners[i].Change < decliners[j].Change
	})

	// 榜单里只保留真正上升/下降的
	for _, r := range truncate(improvers, evolutionTopSize) {
		if r.Change > 0 {
			report.TopImprovers = append(report.TopImprovers, r)
		}
	}
	for _, r := range truncate(decliners, evolutionTopSize) {
		if r.Change < 0 {
			report.TopDecliners = append(report.TopDecliners, r)
		}
	}

	return report
}

// CategoryDistribution 某年各类别的分布统计
func (e *Engine) CategoryDistribution(year string) []model.CategoryStat {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}

	out := make([]model.CategoryStat, 0, len(model.Categories))
	for _, c := range model.Categories {
		stat := model.CategoryStat{
			Category:    c,
			MaisonCount: len(ds.Mentions),
		}

		var top *model.MentionRecord
		for _, r := range ds.Mentions {
			n := r.Count(c)
			stat.TotalMentions += n
			if n > 0 {
				stat.ActiveMaisons++
			}
			if top == nil || n > top.Count(c) {
				top = r
			}
		}

		if stat.MaisonCount > 0 {
			avg := float64(stat.TotalMentions) / float64(stat.MaisonCount)
			stat.AveragePerMaison = math.Round(avg*10) / 10
		}
		if top != nil && stat.TotalMentions > 0 {
			stat.TopMaison = top.Maison
			stat.TopMentions = top.Count(c)
		}

		out = append(out, stat)
	}

	return out
}

func truncate(rows []model.EvolutionRow, n int) []model.EvolutionRow {
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}
