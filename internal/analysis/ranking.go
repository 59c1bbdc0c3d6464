package analysis

import (
	"sort"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// RankWithinYear 年内标准竞争排名
// 并列者共享其中最小的名次，后续名次相应跳过：计数 [10,10,8,7] → 名次 [1,1,3,4]
func RankWithinYear(records []*model.MentionRecord) map[string]int {
	ranks := make(map[string]int, len(records))
	if len(records) == 0 {
		return ranks
	}

	totals := make([]int, len(records))
	for i, r := range records {
		totals[i] = r.TotalMentions
	}
	sort.Sort(sort.Reverse(sort.IntSlice(totals)))

	for _, r := range records {
		// 名次 = 严格大于自身计数的记录数 + 1
		rank := 1
		for _, t := range totals {
			if t > r.TotalMentions {
				rank++
			} else {
				break
			}
		}
		ranks[r.Maison] = rank
	}

	return ranks
}

// CrossYearRanking 跨年排名表
// 每个 Maison 一行（全年份并集），某年无数据记 (0, null)；行按 Maison 名排序
func (e *Engine) CrossYearRanking() []model.CrossYearRow {
	maisons := e.UnionMaisons()

	// 每年的排名各自独立计算
	yearRanks := make(map[string]map[string]int, len(e.datasets))
	for year, ds := range e.datasets {
		yearRanks[year] = RankWithinYear(ds.Mentions)
	}

	rows := make([]model.CrossYearRow, 0, len(maisons))
	for _, maison := range maisons {
		row := model.CrossYearRow{
			Maison: maison,
			Years:  make(map[string]model.YearCell, len(e.periods)),
		}

		for _, year := range e.periods {
			ds, ok := e.datasets[year]
			if !ok {
				continue // 整年缺席的不出现在表中
			}
			rec := ds.FindMention(maison)
			if rec == nil {
				row.Years[year] = model.YearCell{Mentions: 0, Rank: nil}
				continue
			}
			rank := yearRanks[year][maison]
			row.Years[year] = model.YearCell{Mentions: rec.TotalMentions, Rank: &rank}
		}

		rows = append(rows, row)
	}

	return rows
}
