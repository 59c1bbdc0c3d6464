package verify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

var (
	// 引用标记，形如 【879963710027701†L3310-L3314】
	citationPattern   = regexp.MustCompile(`【[^】]*】`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanActivity 清理单条活动文本：去除引用标记、折叠空白、去首尾空白
func CleanActivity(text string) string {
	text = citationPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// countsAsMention 判断清理后的活动文本是否计为一次提及
// 空串、字面量 "0"、大小写不敏感的 "nan" 都是来源表里的占位值，不计数
func countsAsMention(cleaned string) bool {
	if cleaned == "" || cleaned == "0" {
		return false
	}
	return strings.ToLower(cleaned) != "nan"
}

// CountActivities 按类别统计一条明细记录中的有效活动数
func CountActivities(rec *model.DetailRecord) map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		n := 0
		for _, activity := range rec.Activities[c] {
			if countsAsMention(CleanActivity(activity)) {
				n++
			}
		}
		counts[c] = n
	}
	return counts
}

// CleanedActivities 返回清理后仍计数的活动文本（保持原有顺序）
func CleanedActivities(rec *model.DetailRecord, c model.Category) []string {
	out := make([]string, 0, len(rec.Activities[c]))
	for _, activity := range rec.Activities[c] {
		cleaned := CleanActivity(activity)
		if countsAsMention(cleaned) {
			out = append(out, cleaned)
		}
	}
	return out
}

// Derive 从明细记录重新生成核验后的提及计数
// 明细里逐条列出的活动文本是计数的信任锚点，
// 由它重算出的计数优先于来源表直接携带的数字；结果按总提及数降序
func Derive(details []*model.DetailRecord) []*model.MentionRecord {
	records := make([]*model.MentionRecord, 0, len(details))

	for _, d := range details {
		rec := &model.MentionRecord{
			Maison: d.Maison,
			Year:   d.Year,
			Counts: CountActivities(d),
		}
		rec.RecomputeTotal()
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalMentions > records[j].TotalMentions
	})

	return records
}

// Compare 对比原始计数与核验计数，输出逐 (Maison, 类别) 的差异
// 只对两边都出现的 Maison 做对比
func Compare(year string, original, verified []*model.MentionRecord) *model.VerifyDiffReport {
	report := &model.VerifyDiffReport{
		Year:          year,
		Rows:          []model.VerifyDiffRow{},
		NetByCategory: make(map[model.Category]int),
	}

	verifiedByMaison := make(map[string]*model.MentionRecord, len(verified))
	for _, r := range verified {
		verifiedByMaison[r.Maison] = r
	}

	maisons := make(map[string]struct{})
	categories := make(map[model.Category]struct{})

	for _, orig := range original {
		ver, ok := verifiedByMaison[orig.Maison]
		if !ok {
			continue
		}
		for _, c := range model.Categories {
			o := orig.Count(c)
			v := ver.Count(c)
			if o == v {
				continue
			}
			report.Rows = append(report.Rows, model.VerifyDiffRow{
				Maison:     orig.Maison,
				Category:   c,
				Original:   o,
				Verified:   v,
				Difference: v - o,
			})
			report.NetByCategory[c] += v - o
			maisons[orig.Maison] = struct{}{}
			categories[c] = struct{}{}
		}
	}

	report.MaisonsAffected = len(maisons)
	report.CategoriesAffected = len(categories)
	return report
}
