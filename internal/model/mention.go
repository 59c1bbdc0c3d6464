package model

// FileVariant 提及数据文件变体（按可信度排序的候选）
type FileVariant string

const (
	VariantStandardizedVerified FileVariant = "standardized_verified" // 标准化+核验
	VariantStandardized         FileVariant = "standardized"          // 标准化
	VariantVerified             FileVariant = "verified"              // 核验
	VariantOriginal             FileVariant = "original"              // 原始
)

// MentionVariantPriority 提及表候选变体的回退优先级（可信度从高到低）
var MentionVariantPriority = []FileVariant{
	VariantStandardizedVerified,
	VariantStandardized,
	VariantVerified,
	VariantOriginal,
}

// MentionRecord 单个 Maison 在一个财年的提及计数
type MentionRecord struct {
	Maison        string           `json:"maison"`
	Year          string           `json:"year"`
	Counts        map[Category]int `json:"counts"`
	TotalMentions int              `json:"totalMentions"`
}

// RecomputeTotal 重算总提及数（总数永远由十个类别求和得出，不信任来源数据）
func (r *MentionRecord) RecomputeTotal() {
	total := 0
	for _, c := range Categories {
		total += r.Counts[c]
	}
	r.TotalMentions = total
}

// Count 获取指定类别的提及数（缺失按 0 处理）
func (r *MentionRecord) Count(c Category) int {
	if r.Counts == nil {
		return 0
	}
	return r.Counts[c]
}

// DetailRecord 单个 Maison 在一个财年的活动明细
type DetailRecord struct {
	Maison     string                `json:"maison"`
	Year       string                `json:"year"`
	Activities map[Category][]string `json:"activities"`
}

// YearDataset 一个财年加载完成的数据快照
type YearDataset struct {
	Year     string           `json:"year"`
	Variant  FileVariant      `json:"variant"`
	Mentions []*MentionRecord `json:"mentions"`
	Details  []*DetailRecord  `json:"details"`
}

// FindMention 按 Maison 名查找提及记录
func (d *YearDataset) FindMention(maison string) *MentionRecord {
	for _, r := range d.Mentions {
		if r.Maison == maison {
			return r
		}
	}
	return nil
}

// FindDetail 按 Maison 名查找明细记录
func (d *YearDataset) FindDetail(maison string) *DetailRecord {
	for _, r := range d.Details {
		if r.Maison == maison {
			return r
		}
	}
	return nil
}
