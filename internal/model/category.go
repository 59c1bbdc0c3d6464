package model

// Category 活动类别
type Category string

// 十个固定活动类别
const (
	CategoryProduct     Category = "Product"     // 产品
	CategoryPlace       Category = "Place"       // 渠道/门店
	CategoryPartnership Category = "Partnership" // 合作
	CategoryESG         Category = "ESG"         // 环境社会治理
	CategoryPerformance Category = "Performance" // 业绩
	CategoryDigital     Category = "Digital"     // 数字化
	CategoryPricing     Category = "Pricing"     // 定价
	CategoryPromotion   Category = "Promotion"   // 推广
	CategoryPeople      Category = "People"      // 人事
	CategoryAwards      Category = "Awards"      // 奖项
)

// Categories 类别展示顺序（固定，新增/删除类别需要同步调整上游表格结构）
var Categories = []Category{
	CategoryProduct,
	CategoryPlace,
	CategoryPartnership,
	CategoryESG,
	CategoryPerformance,
	CategoryDigital,
	CategoryPricing,
	CategoryPromotion,
	CategoryPeople,
	CategoryAwards,
}

// DetailColumnCounts 明细表中每个类别的列数（Product_1..Product_5 等）
var DetailColumnCounts = map[Category]int{
	CategoryProduct:     5,
	CategoryPlace:       5,
	CategoryPartnership: 3,
	CategoryESG:         2,
	CategoryPerformance: 1,
	CategoryDigital:     2,
	CategoryPricing:     1,
	CategoryPromotion:   4,
	CategoryPeople:      1,
	CategoryAwards:      1,
}

// IsValidCategory 判断是否为合法类别
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if string(c) == name {
			return true
		}
	}
	return false
}

// CategoryNames 返回类别名称字符串列表（按展示顺序）
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, c := range Categories {
		names = append(names, string(c))
	}
	return names
}
