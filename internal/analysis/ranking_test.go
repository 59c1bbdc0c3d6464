package analysis

import (
	"testing"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

func TestRankWithinYearCompetitionRanking(t *testing.T) {
	t.Parallel()

	records := []*model.MentionRecord{
		rec("A", "2024", 10),
		rec("B", "2024", 10),
		rec("C", "2024", 8),
		rec("D", "2024", 7),
	}

	ranks := RankWithinYear(records)

	want := map[string]int{"A": 1, "B": 1, "C": 3, "D": 4}
	for maison, wantRank := range want {
		if ranks[maison] != wantRank {
			t.Errorf("rank[%s] = %d, want %d", maison, ranks[maison], wantRank)
		}
	}
}

func TestRankWithinYearEmpty(t *testing.T) {
	t.Parallel()

	if ranks := RankWithinYear(nil); len(ranks) != 0 {
		t.Fatalf("expected empty ranks, got %v", ranks)
	}
}

func TestCrossYearRankingZeroFill(t *testing.T) {
	t.Parallel()

	// Fendi 只在 2021 和 2024 出现，其余已加载年份应为 (0, null)
	e := newTestEngine(map[string][]*model.MentionRecord{
		"2021": {rec("Dior", "2021", 5), rec("Fendi", "2021", 3)},
		"2022": {rec("Dior", "2022", 4)},
		"2024": {rec("Fendi", "2024", 6), rec("Dior", "2024", 6)},
	})

	rows := e.CrossYearRanking()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	var fendi *model.CrossYearRow
	for i := range rows {
		if rows[i].Maison == "Fendi" {
			fendi = &rows[i]
		}
	}
	if fendi == nil {
		t.Fatal("Fendi row missing")
	}

	// 已加载的三个年份都要有单元格，未加载年份不出现
	if len(fendi.Years) != 3 {
		t.Fatalf("Fendi has %d year cells, want 3", len(fendi.Years))
	}

	cell := fendi.Years["2022"]
	if cell.Mentions != 0 || cell.Rank != nil {
		t.Fatalf("Fendi 2022 = %+v, want (0, null)", cell)
	}

	cell = fendi.Years["2021"]
	if cell.Mentions != 3 || cell.Rank == nil || *cell.Rank != 2 {
		t.Fatalf("Fendi 2021 = %+v, want (3, rank 2)", cell)
	}

	// 2024 两家并列第一
	cell = fendi.Years["2024"]
	if cell.Mentions != 6 || cell.Rank == nil || *cell.Rank != 1 {
		t.Fatalf("Fendi 2024 = %+v, want (6, rank 1)", cell)
	}
}
