package analysis

import (
	"sort"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// leaderThreshold 类别领先者的最低计数门槛
// 最大值为 0 或 1 时不评领先者：单次偶发提及不足以称为领先
const leaderThreshold = 1

// CategoryLeadersFor 某年某类别的领先者集合
// 并列时全部上榜并共享同一计数；无有效领先者返回空切片
func CategoryLeadersFor(records []*model.MentionRecord, c model.Category) []*model.MentionRecord {
	max := 0
	for _, r := range records {
		if r.Count(c) > max {
			max = r.Count(c)
		}
	}
	if max <= leaderThreshold {
		return []*model.MentionRecord{}
	}

	leaders := make([]*model.MentionRecord, 0, 1)
	for _, r := range records {
		if r.Count(c) == max {
			leaders = append(leaders, r)
		}
	}
	return leaders
}

// CategoryLeaders 某年全部类别的领先者表
// 只包含有领先者的类别；按（计数降序，类别名升序）排列
func (e *Engine) CategoryLeaders(year string) []model.CategoryLeader {
	ds := e.datasets[year]
	if ds == nil {
		return nil
	}

	out := make([]model.CategoryLeader, 0, len(model.Categories))
	for _, c := range model.Categories {
		leaders := CategoryLeadersFor(ds.Mentions, c)
		if len(leaders) == 0 {
			continue
		}

		maisons := make([]string, 0, len(leaders))
		for _, r := range leaders {
			maisons = append(maisons, r.Maison)
		}

		out = append(out, model.CategoryLeader{
			Category:      c,
			Maisons:       maisons,
			Mentions:      leaders[0].Count(c),
			TotalMentions: leaders[0].TotalMentions,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Mentions != out[j].Mentions {
			return out[i].Mentions > out[j].Mentions
		}
		return out[i].Category < out[j].Category
	})

	return out
}
