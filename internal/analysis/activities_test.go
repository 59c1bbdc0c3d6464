package analysis

import (
	"testing"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/config"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

func newTestEngineWithDetails(details map[string][]*model.DetailRecord) *Engine {
	datasets := make(map[string]*model.YearDataset, len(details))
	for year, records := range details {
		datasets[year] = &model.YearDataset{
			Year:     year,
			Variant:  model.VariantOriginal,
			Mentions: []*model.MentionRecord{},
			Details:  records,
		}
	}
	return NewEngine(config.DefaultPeriods(), datasets)
}

func detail(maison, year string, activities map[model.Category][]string) *model.DetailRecord {
	return &model.DetailRecord{Maison: maison, Year: year, Activities: activities}
}

func TestCategoryActivities(t *testing.T) {
	t.Parallel()

	e := newTestEngineWithDetails(map[string][]*model.DetailRecord{
		"2023": {
			detail("Dior", "2023", map[model.Category][]string{
				model.CategoryProduct: {"Launched saddle bag【ref】", "0"},
			}),
			detail("Fendi", "2023", map[model.Category][]string{
				model.CategoryProduct: {"nan"},
			}),
		},
		"2024": {
			detail("Dior", "2024", map[model.Category][]string{
				model.CategoryProduct: {"New fragrance"},
			}),
		},
	})

	rows := e.CategoryActivities(model.CategoryProduct)

	// Fendi 的唯一条目是占位值，不应出现
	if len(rows) != 1 || rows[0].Maison != "Dior" {
		t.Fatalf("rows = %+v", rows)
	}
	if len(rows[0].ByYear) != 2 {
		t.Fatalf("ByYear = %+v", rows[0].ByYear)
	}
	if got := rows[0].ByYear["2023"]; len(got) != 1 || got[0] != "Launched saddle bag" {
		t.Fatalf("2023 activities = %v", got)
	}
	if len(rows[0].YearsOrder) != 2 || rows[0].YearsOrder[0] != "2023" || rows[0].YearsOrder[1] != "2024" {
		t.Fatalf("YearsOrder = %v", rows[0].YearsOrder)
	}
}

func TestMaisonActivities(t *testing.T) {
	t.Parallel()

	e := newTestEngineWithDetails(map[string][]*model.DetailRecord{
		"2024": {
			detail("Loewe", "2024", map[model.Category][]string{
				model.CategoryProduct: {"Puzzle bag rework"},
				model.CategoryAwards:  {"Craft prize"},
				model.CategoryESG:     {""},
			}),
		},
	})

	cats := e.MaisonActivities("Loewe")
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(cats), cats)
	}
	// 类别保持固定展示顺序：Product 在 Awards 之前
	if cats[0].Category != model.CategoryProduct || cats[1].Category != model.CategoryAwards {
		t.Fatalf("category order = %s, %s", cats[0].Category, cats[1].Category)
	}
}

func TestCompareActivities(t *testing.T) {
	t.Parallel()

	e := newTestEngineWithDetails(map[string][]*model.DetailRecord{
		"2024": {
			detail("Dior", "2024", map[model.Category][]string{
				model.CategoryPlace: {"Opened Omotesando store"},
			}),
			detail("Fendi", "2024", map[model.Category][]string{
				model.CategoryPlace: {"Roma flagship renovation"},
			}),
		},
	})

	table := e.CompareActivities("2024", []string{"Dior", "Fendi", "Ghost"})
	if table == nil {
		t.Fatal("expected table")
	}

	place := table[model.CategoryPlace]
	if len(place) != 2 {
		t.Fatalf("place comparison = %+v", place)
	}
	if _, ok := place["Ghost"]; ok {
		t.Fatal("maison without details should be absent")
	}
}
