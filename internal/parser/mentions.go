package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/normalize"
)

const (
	colMaison = "Maison"
	colYear   = "Year"
)

// SchemaError 表结构错误（上游契约破坏，需上报而非静默补零）
type SchemaError struct {
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet %q missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// CellError 单元格数据错误
type CellError struct {
	Sheet  string
	Row    int // 1 起始的 Excel 行号
	Column string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("sheet %q row %d column %q: %v", e.Sheet, e.Row, e.Column, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// MentionsParser 提及表解析器
type MentionsParser struct {
	normalizer *normalize.Normalizer
}

// NewMentionsParser 创建提及表解析器
func NewMentionsParser(n *normalize.Normalizer) *MentionsParser {
	if n == nil {
		n = normalize.NewDefault()
	}
	return &MentionsParser{normalizer: n}
}

// Parse 解析提及工作簿的第一个工作表
// 十个类别列是每年数据源必须满足的契约，缺列返回 SchemaError；
// 总提及数永远重算，不信任表内既有的 Total_Mentions 列
func (p *MentionsParser) Parse(reader io.Reader, year string) ([]*model.MentionRecord, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: append([]string{colMaison}, model.CategoryNames()...)}
	}

	colIndex := buildColIndex(rows[0])

	// 校验必需列
	missing := make([]string, 0)
	if _, ok := colIndex[colMaison]; !ok {
		missing = append(missing, colMaison)
	}
	for _, c := range model.Categories {
		if _, ok := colIndex[string(c)]; !ok {
			missing = append(missing, string(c))
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Sheet: sheet, Missing: missing}
	}

	records := make([]*model.MentionRecord, 0, len(rows)-1)
	seen := make(map[string]struct{})

	for i, row := range rows[1:] {
		excelRow := i + 2

		maison := p.normalizer.Apply(getCell(row, colIndex[colMaison]))
		if maison == "" {
			continue // 跳过空行
		}
		if _, dup := seen[maison]; dup {
			return nil, fmt.Errorf("sheet %q row %d: duplicate maison %q", sheet, excelRow, maison)
		}
		seen[maison] = struct{}{}

		rec := &model.MentionRecord{
			Maison: maison,
			Year:   year,
			Counts: make(map[model.Category]int, len(model.Categories)),
		}

		for _, c := range model.Categories {
			n, err := parseCount(getCell(row, colIndex[string(c)]))
			if err != nil {
				return nil, &CellError{Sheet: sheet, Row: excelRow, Column: string(c), Err: err}
			}
			if n < 0 {
				return nil, &CellError{Sheet: sheet, Row: excelRow, Column: string(c), Err: fmt.Errorf("negative count %d", n)}
			}
			rec.Counts[c] = n
		}
		rec.RecomputeTotal()

		records = append(records, rec)
	}

	return records, nil
}
