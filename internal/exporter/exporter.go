package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/analysis"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

const (
	sheetRanking = "Cross-Year Ranking"
	sheetLeaders = "Category Leaders"
)

// ExportAnalysis 导出分析工作簿
// 包含跨年排名表、各年类别领先者表、以及每个已加载财年的提及表
func ExportAnalysis(engine *analysis.Engine, outPath string, progress func(ProgressEvent)) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)

	reportProgress(progress, 5, "准备导出")

	if err := writeRankingSheet(f, engine); err != nil {
		return err
	}
	reportProgress(progress, 35, "跨年排名表完成")

	if err := writeLeadersSheet(f, engine); err != nil {
		return err
	}
	reportProgress(progress, 55, "类别领先表完成")

	years := engine.AvailablePeriods()
	for i, year := range years {
		if err := writeMentionsSheet(f, engine, year); err != nil {
			return err
		}
		reportProgress(progress, 55+40*(i+1)/len(years), fmt.Sprintf("%s 财年明细完成", year))
	}

	// 删除默认空表
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(sheetRanking); err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	reportProgress(progress, 100, "导出完成")
	return nil
}

func writeRankingSheet(f *excelize.File, engine *analysis.Engine) error {
	if _, err := f.NewSheet(sheetRanking); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	years := engine.AvailablePeriods()

	header := []interface{}{"Maison"}
	for _, year := range years {
		header = append(header, year+"_mentions", year+"_rank")
	}
	if err := f.SetSheetRow(sheetRanking, "A1", &header); err != nil {
		return fmt.Errorf("failed to write ranking header: %w", err)
	}

	for i, row := range engine.CrossYearRanking() {
		values := []interface{}{row.Maison}
		for _, year := range years {
			cell := row.Years[year]
			values = append(values, cell.Mentions)
			if cell.Rank != nil {
				values = append(values, *cell.Rank)
			} else {
				values = append(values, nil)
			}
		}
		anchor, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetRanking, anchor, &values); err != nil {
			return fmt.Errorf("failed to write ranking row: %w", err)
		}
	}

	return nil
}

func writeLeadersSheet(f *excelize.File, engine *analysis.Engine) error {
	if _, err := f.NewSheet(sheetLeaders); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := []interface{}{"Year", "Category", "Maison", "Mentions", "Total Mentions"}
	if err := f.SetSheetRow(sheetLeaders, "A1", &header); err != nil {
		return fmt.Errorf("failed to write leaders header: %w", err)
	}

	rowIdx := 2
	for _, year := range engine.AvailablePeriods() {
		for _, leader := range engine.CategoryLeaders(year) {
			values := []interface{}{
				year,
				string(leader.Category),
				joinMaisons(leader.Maisons),
				leader.Mentions,
				leader.TotalMentions,
			}
			anchor, _ := excelize.CoordinatesToCellName(1, rowIdx)
			if err := f.SetSheetRow(sheetLeaders, anchor, &values); err != nil {
				return fmt.Errorf("failed to write leaders row: %w", err)
			}
			rowIdx++
		}
	}

	return nil
}

func writeMentionsSheet(f *excelize.File, engine *analysis.Engine, year string) error {
	ds := engine.Dataset(year)
	if ds == nil {
		return nil
	}

	if _, err := f.NewSheet(year); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", year, err)
	}

	if err := writeMentionRows(f, year, ds.Mentions); err != nil {
		return err
	}
	return nil
}

// writeMentionRows 写出提及表（列结构与数据源文件保持一致）
func writeMentionRows(f *excelize.File, sheet string, records []*model.MentionRecord) error {
	header := []interface{}{"Maison", "Year"}
	for _, c := range model.CategoryNames() {
		header = append(header, c)
	}
	header = append(header, "Total_Mentions")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range records {
		values := []interface{}{rec.Maison, rec.Year}
		for _, c := range model.Categories {
			values = append(values, rec.Count(c))
		}
		values = append(values, rec.TotalMentions)
		anchor, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, anchor, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return nil
}

// WriteVerifiedMentions 写出核验后的提及工作簿（列结构与原始提及文件一致）
func WriteVerifiedMentions(records []*model.MentionRecord, outPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := writeMentionRows(f, sheet, records); err != nil {
		return err
	}

	if err := f.SaveAs(outPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func joinMaisons(maisons []string) string {
	out := ""
	for i, m := range maisons {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
