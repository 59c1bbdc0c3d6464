package analysis

import "github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"

// KPIs 某年的 KPI 汇总（含上一期对比）
// 选定年份无数据时返回 nil
func (e *Engine) KPIs(year string) *model.KPIReport {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}

	report := &model.KPIReport{
		Year:            year,
		MostMentioned:   mostMentioned(ds.Mentions),
		TotalMentions:   sumTotals(ds.Mentions),
		MaisonCount:     len(ds.Mentions),
		CategoryLeaders: e.CategoryLeaders(year),
	}

	prevYear, ok := e.PreviousPeriod(year)
	if !ok {
		return report
	}
	prev := e.datasets[prevYear]
	if prev == nil {
		return report
	}

	report.PreviousYear = prevYear
	report.PreviousMostMentioned = mostMentioned(prev.Mentions)
	prevTotal := sumTotals(prev.Mentions)
	report.PreviousTotalMentions = &prevTotal
	prevCount := len(prev.Mentions)
	report.PreviousMaisonCount = &prevCount
	report.PreviousLeaders = e.CategoryLeaders(prevYear)

	return report
}

// mostMentioned 总提及数最高的 Maison（并列按行序先到先得）
func mostMentioned(records []*model.MentionRecord) *model.MaisonSummary {
	var best *model.MentionRecord
	for _, r := range records {
		if best == nil || r.TotalMentions > best.TotalMentions {
			best = r
		}
	}
	if best == nil {
		return nil
	}
	return &model.MaisonSummary{Maison: best.Maison, TotalMentions: best.TotalMentions}
}

func sumTotals(records []*model.MentionRecord) int {
	total := 0
	for _, r := range records {
		total += r.TotalMentions
	}
	return total
}
