package normalize

import "strings"

// Rule 单条名称替换规则（字面量子串替换，非正则）
type Rule struct {
	Pattern     string
	Replacement string
}

// Normalizer Maison 名称规范化器
// 规则按顺序从左到右应用；所有来源的 Maison 名在任何聚合/排名/join 之前
// 必须先经过规范化，否则同一法人实体会被当成两个 Maison 参与跨年对比
type Normalizer struct {
	rules []Rule
}

// DefaultRules 默认规则：历史拼写 Bvlgari 统一为 Bulgari
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "Bvlgari", Replacement: "Bulgari"},
	}
}

// New 创建规范化器
func New(rules []Rule) *Normalizer {
	return &Normalizer{rules: rules}
}

// NewDefault 创建带默认规则的规范化器
func NewDefault() *Normalizer {
	return New(DefaultRules())
}

// Apply 规范化单个名称
func (n *Normalizer) Apply(name string) string {
	name = strings.TrimSpace(name)
	for _, r := range n.rules {
		name = strings.ReplaceAll(name, r.Pattern, r.Replacement)
	}
	return name
}

// Rules 返回当前规则列表
func (n *Normalizer) Rules() []Rule {
	return n.rules
}
