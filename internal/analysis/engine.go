package analysis

import (
	"sort"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// Engine 聚合引擎
// 对已加载的各年数据快照做纯函数式查询，不持有任何可变状态；
// 财年序列由配置注入，顺序即“上一期”查找顺序
type Engine struct {
	periods  []string
	datasets map[string]*model.YearDataset
}

// NewEngine 创建聚合引擎
func NewEngine(periods []string, datasets map[string]*model.YearDataset) *Engine {
	if datasets == nil {
		datasets = make(map[string]*model.YearDataset)
	}
	return &Engine{periods: periods, datasets: datasets}
}

// Periods 配置的财年序列
func (e *Engine) Periods() []string {
	return e.periods
}

// AvailablePeriods 实际有数据的财年（保持配置顺序）
func (e *Engine) AvailablePeriods() []string {
	out := make([]string, 0, len(e.periods))
	for _, year := range e.periods {
		if _, ok := e.datasets[year]; ok {
			out = append(out, year)
		}
	}
	return out
}

// Dataset 获取某年数据快照（无则返回 nil）
func (e *Engine) Dataset(year string) *model.YearDataset {
	return e.datasets[year]
}

// PreviousPeriod 上一期查找：财年序列中的严格前驱
// 最早一期没有前驱，返回 ok=false，表示无法做同比
func (e *Engine) PreviousPeriod(year string) (string, bool) {
	for i, p := range e.periods {
		if p == year {
			if i == 0 {
				return "", false
			}
			return e.periods[i-1], true
		}
	}
	return "", false
}

// UnionMaisons 所有已加载年份中出现过的 Maison 全集（排序后）
// 任何一年出现过就进入跨年排名表，缺席年份补零
func (e *Engine) UnionMaisons() []string {
	set := make(map[string]struct{})
	for _, ds := range e.datasets {
		for _, r := range ds.Mentions {
			set[r.Maison] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// TopN 某年总提及数最高的前 n 个 Maison
// 并列按来源表行序先到先得（单键稳定降序排序）
func (e *Engine) TopN(year string, n int) []*model.MentionRecord {
	ds := e.datasets[year]
	if ds == nil || n <= 0 {
		return nil
	}

	records := make([]*model.MentionRecord, len(ds.Mentions))
	copy(records, ds.Mentions)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalMentions > records[j].TotalMentions
	})

	if n > len(records) {
		n = len(records)
	}
	return records[:n]
}
