package analysis

import (
	"sort"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/verify"
)

// CategoryActivities 某类别下各 Maison 按年份的活动清单
// 只包含至少有一条有效活动的 Maison；行按 Maison 名排序
func (e *Engine) CategoryActivities(c model.Category) []model.MaisonYearActivities {
	byMaison := make(map[string]map[string][]string)

	for _, year := range e.periods {
		ds, ok := e.datasets[year]
		if !ok {
			continue
		}
		for _, rec := range ds.Details {
			activities := verify.CleanedActivities(rec, c)
			if len(activities) == 0 {
				continue
			}
			if byMaison[rec.Maison] == nil {
				byMaison[rec.Maison] = make(map[string][]string)
			}
			byMaison[rec.Maison][year] = activities
		}
	}

	// 有数据的年份集合（保持财年顺序）
	yearsWithData := make([]string, 0, len(e.periods))
	for _, year := range e.periods {
		found := false
		for _, m := range byMaison {
			if _, ok := m[year]; ok {
				found = true
				break
			}
		}
		if found {
			yearsWithData = append(yearsWithData, year)
		}
	}

	maisons := make([]string, 0, len(byMaison))
	for m := range byMaison {
		maisons = append(maisons, m)
	}
	sort.Strings(maisons)

	out := make([]model.MaisonYearActivities, 0, len(maisons))
	for _, m := range maisons {
		out = append(out, model.MaisonYearActivities{
			Maison:     m,
			ByYear:     byMaison[m],
			YearsOrder: yearsWithData,
		})
	}
	return out
}

// MaisonActivities 某 Maison 按类别、按年份的活动清单
// 类别按固定展示顺序；只包含有有效活动的类别
func (e *Engine) MaisonActivities(maison string) []model.CategoryYearActivities {
	out := make([]model.CategoryYearActivities, 0, len(model.Categories))

	for _, c := range model.Categories {
		byYear := make(map[string][]string)
		for _, year := range e.periods {
			ds, ok := e.datasets[year]
			if !ok {
				continue
			}
			rec := ds.FindDetail(maison)
			if rec == nil {
				continue
			}
			activities := verify.CleanedActivities(rec, c)
			if len(activities) > 0 {
				byYear[year] = activities
			}
		}
		if len(byYear) > 0 {
			out = append(out, model.CategoryYearActivities{Category: c, ByYear: byYear})
		}
	}

	return out
}

// CompareActivities 选定年份下多个 Maison 的逐类别活动对照表
// 返回 类别 -> Maison -> 活动清单；Maison 当年无明细时不出现在该类别下
func (e *Engine) CompareActivities(year string, maisons []string) map[model.Category]map[string][]string {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}

	out := make(map[model.Category]map[string][]string, len(model.Categories))
	for _, c := range model.Categories {
		perMaison := make(map[string][]string)
		for _, maison := range maisons {
			rec := ds.FindDetail(maison)
			if rec == nil {
				continue
			}
			activities := verify.CleanedActivities(rec, c)
			if len(activities) > 0 {
				perMaison[maison] = activities
			}
		}
		out[c] = perMaison
	}

	return out
}
