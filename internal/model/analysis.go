package model

// YearCell 跨年排名表中一个年份单元格
// Maison 当年无数据时 Mentions 为 0、Rank 为 null
type YearCell struct {
	Mentions int  `json:"mentions"`
	Rank     *int `json:"rank"`
}

// CrossYearRow 跨年排名表的一行（每个 Maison 一行）
type CrossYearRow struct {
	Maison string              `json:"maison"`
	Years  map[string]YearCell `json:"years"`
}

// CategoryLeader 某年某类别的领先者（并列时多个 Maison 共享同一计数）
type CategoryLeader struct {
	Category      Category `json:"category"`
	Maisons       []string `json:"maisons"`
	Mentions      int      `json:"mentions"`
	TotalMentions int      `json:"totalMentions"` // 首个并列者的年度总提及数
}

// ChartRow 图表长格式数据行（堆叠柱状图）
type ChartRow struct {
	MaisonYear string   `json:"maisonYear"` // 形如 "Dior (2024)"
	Maison     string   `json:"maison"`
	Category   Category `json:"category"`
	Year       string   `json:"year"`
	Mentions   int      `json:"mentions"`
}

// MaisonGroup 对比图中一个 Maison 的柱组（用于分层横轴标注）
type MaisonGroup struct {
	Name string   `json:"name"`
	Bars []string `json:"bars"`
}

// ComparisonChart 前 N Maison 的跨年对比图数据
type ComparisonChart struct {
	Rows          []ChartRow    `json:"rows"`
	OrderedLabels []string      `json:"orderedLabels"`
	Groups        []MaisonGroup `json:"groups"`
	Year          string        `json:"year"`
	PreviousYear  string        `json:"previousYear,omitempty"`
}

// CategoryYearTotal 某年某类别的全组合计提及数（总览堆叠图）
type CategoryYearTotal struct {
	Year     string   `json:"year"`
	Category Category `json:"category"`
	Mentions int      `json:"mentions"`
}

// MaisonSummary KPI 中的单个 Maison 摘要
type MaisonSummary struct {
	Maison        string `json:"maison"`
	TotalMentions int    `json:"totalMentions"`
}

// KPIReport 单年 KPI 汇总（含上一期对比）
type KPIReport struct {
	Year                  string           `json:"year"`
	PreviousYear          string           `json:"previousYear,omitempty"`
	MostMentioned         *MaisonSummary   `json:"mostMentioned"`
	PreviousMostMentioned *MaisonSummary   `json:"previousMostMentioned,omitempty"`
	TotalMentions         int              `json:"totalMentions"`
	PreviousTotalMentions *int             `json:"previousTotalMentions,omitempty"`
	MaisonCount           int              `json:"maisonCount"`
	PreviousMaisonCount   *int             `json:"previousMaisonCount,omitempty"`
	CategoryLeaders       []CategoryLeader `json:"categoryLeaders"`
	PreviousLeaders       []CategoryLeader `json:"previousLeaders,omitempty"`
}

// EvolutionRow 单个 Maison 的同比变动
type EvolutionRow struct {
	Maison        string  `json:"maison"`
	Previous      int     `json:"previous"`
	Current       int     `json:"current"`
	Change        int     `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// EvolutionReport 同比变动汇总
type EvolutionReport struct {
	Year         string         `json:"year"`
	PreviousYear string         `json:"previousYear"`
	Rows         []EvolutionRow `json:"rows"`
	TopImprovers []EvolutionRow `json:"topImprovers"`
	TopDecliners []EvolutionRow `json:"topDecliners"`
}

// CategoryStat 某年单个类别的分布统计
type CategoryStat struct {
	Category         Category `json:"category"`
	TotalMentions    int      `json:"totalMentions"`
	ActiveMaisons    int      `json:"activeMaisons"`
	MaisonCount      int      `json:"maisonCount"`
	AveragePerMaison float64  `json:"averagePerMaison"`
	TopMaison        string   `json:"topMaison,omitempty"`
	TopMentions      int      `json:"topMentions"`
}

// MaisonYearActivities 某类别下一个 Maison 按年份的活动清单
type MaisonYearActivities struct {
	Maison     string              `json:"maison"`
	ByYear     map[string][]string `json:"byYear"`
	YearsOrder []string            `json:"yearsOrder"`
}

// CategoryYearActivities 某 Maison 下一个类别按年份的活动清单
type CategoryYearActivities struct {
	Category Category            `json:"category"`
	ByYear   map[string][]string `json:"byYear"`
}

// VerifyDiffRow 原始计数与核验计数的差异行
type VerifyDiffRow struct {
	Maison     string   `json:"maison"`
	Category   Category `json:"category"`
	Original   int      `json:"original"`
	Verified   int      `json:"verified"`
	Difference int      `json:"difference"`
}

// VerifyDiffReport 单年原始/核验对比报告
type VerifyDiffReport struct {
	Year               string           `json:"year"`
	Rows               []VerifyDiffRow  `json:"rows"`
	MaisonsAffected    int              `json:"maisonsAffected"`
	CategoriesAffected int              `json:"categoriesAffected"`
	NetByCategory      map[Category]int `json:"netByCategory"`
}
