package analysis

import (
	"testing"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

func TestPivotForChartRowCount(t *testing.T) {
	t.Parallel()

	// Maison A 在 2023 与 2024 都有数据：10 类别 × 2 年 = 20 行
	e := newTestEngine(map[string][]*model.MentionRecord{
		"2023": {rec("A", "2023", 5, 1, 1, 1, 1, 1, 0, 1, 0, 1)},
		"2024": {rec("A", "2024", 3, 1, 1, 1, 1, 0, 0, 1, 0, 1)},
	})

	rows := e.PivotForChart([]string{"A"}, []string{"2023", "2024"})
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}

	// 行序：先 2023 的十个类别，再 2024 的十个类别
	if rows[0].Year != "2023" || rows[0].Category != model.CategoryProduct || rows[0].Mentions != 5 {
		t.Fatalf("first row = %+v", rows[0])
	}
	if rows[10].Year != "2024" || rows[10].Category != model.CategoryProduct || rows[10].Mentions != 3 {
		t.Fatalf("row 10 = %+v", rows[10])
	}
	if rows[0].MaisonYear != "A (2023)" {
		t.Fatalf("MaisonYear = %q", rows[0].MaisonYear)
	}
}

func TestPivotForChartSkipsMissing(t *testing.T) {
	t.Parallel()

	e := newTestEngine(map[string][]*model.MentionRecord{
		"2024": {rec("A", "2024", 1)},
	})

	// 2023 未加载、B 不存在：都整段跳过
	rows := e.PivotForChart([]string{"A", "B"}, []string{"2023", "2024"})
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(rows))
	}
}

func TestTopNComparisonChartClustersPreviousYearFirst(t *testing.T) {
	t.Parallel()

	e := newTestEngine(map[string][]*model.MentionRecord{
		"2023": {rec("A", "2023", 4), rec("B", "2023", 2)},
		"2024": {rec("A", "2024", 6), rec("C", "2024", 3)},
	})

	chart := e.TopNComparisonChart("2024", 2)
	if chart == nil {
		t.Fatal("expected chart")
	}
	if chart.PreviousYear != "2023" {
		t.Fatalf("PreviousYear = %q", chart.PreviousYear)
	}

	// A 有上一期：先 A (2023) 后 A (2024)；C 没有上一期：只有 C (2024)
	wantLabels := []string{"A (2023)", "A (2024)", "C (2024)"}
	if len(chart.OrderedLabels) != len(wantLabels) {
		t.Fatalf("OrderedLabels = %v", chart.OrderedLabels)
	}
	for i, want := range wantLabels {
		if chart.OrderedLabels[i] != want {
			t.Fatalf("OrderedLabels = %v, want %v", chart.OrderedLabels, wantLabels)
		}
	}

	if len(chart.Groups) != 2 || chart.Groups[0].Name != "A" || len(chart.Groups[0].Bars) != 2 {
		t.Fatalf("Groups = %+v", chart.Groups)
	}

	// 3 根柱 × 10 类别
	if len(chart.Rows) != 30 {
		t.Fatalf("expected 30 chart rows, got %d", len(chart.Rows))
	}
}

func TestTopNComparisonChartEarliestPeriod(t *testing.T) {
	t.Parallel()

	e := newTestEngine(map[string][]*model.MentionRecord{
		"2019": {rec("A", "2019", 3)},
	})

	chart := e.TopNComparisonChart("2019", 5)
	if chart == nil {
		t.Fatal("expected chart")
	}
	if chart.PreviousYear != "" {
		t.Fatalf("PreviousYear = %q, want empty", chart.PreviousYear)
	}
	if len(chart.OrderedLabels) != 1 || chart.OrderedLabels[0] != "A (2019)" {
		t.Fatalf("OrderedLabels = %v", chart.OrderedLabels)
	}
}

func TestCategoryYearTotals(t *testing.T) {
	t.Parallel()

	e := newTestEngine(map[string][]*model.MentionRecord{
		"2023": {rec("A", "2023", 2), rec("B", "2023", 3)},
		"2024": {rec("A", "2024", 1)},
	})

	totals := e.CategoryYearTotals()
	// 两个已加载年份 × 10 类别
	if len(totals) != 20 {
		t.Fatalf("expected 20 entries, got %d", len(totals))
	}
	if totals[0].Year != "2023" || totals[0].Category != model.CategoryProduct || totals[0].Mentions != 5 {
		t.Fatalf("first entry = %+v", totals[0])
	}
}

func TestMaisonTrend(t *testing.T) {
	t.Parallel()

	e := newTestEngine(map[string][]*model.MentionRecord{
		"2021": {rec("A", "2021", 2)},
		"2023": {rec("B", "2023", 1)},
		"2024": {rec("A", "2024", 4)},
	})

	rows := e.MaisonTrend("A")
	// A 在 2021 和 2024 有数据
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}
	if rows[0].Year != "2021" || rows[10].Year != "2024" {
		t.Fatalf("year order = %s, %s", rows[0].Year, rows[10].Year)
	}
}
