package parser

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/normalize"
)

// DetailsParser 活动明细表解析器
type DetailsParser struct {
	normalizer *normalize.Normalizer
}

// NewDetailsParser 创建明细表解析器
func NewDetailsParser(n *normalize.Normalizer) *DetailsParser {
	if n == nil {
		n = normalize.NewDefault()
	}
	return &DetailsParser{normalizer: n}
}

// detailColumn 形如 Product_3 的明细列
type detailColumn struct {
	category model.Category
	index    int // 类别内序号（1 起始）
	col      int // 表内列索引
}

// Parse 解析明细工作簿的第一个工作表
// 明细列按 {Category}_{序号} 命名，每个类别的列数逐年可变，
// 按表头实际出现的列解析，同类别内保持序号顺序
func (p *DetailsParser) Parse(reader io.Reader, year string) ([]*model.DetailRecord, error) {
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
		return nil, &SchemaError{Sheet: sheet, Missing: []string{colMaison}}
	}

	colIndex := buildColIndex(rows[0])
	maisonCol, ok := colIndex[colMaison]
	if !ok {
		return nil, &SchemaError{Sheet: sheet, Missing: []string{colMaison}}
	}

	detailCols := detectDetailColumns(rows[0])

	records := make([]*model.DetailRecord, 0, len(rows)-1)

	for _, row := range rows[1:] {
		maison := p.normalizer.Apply(getCell(row, maisonCol))
		if maison == "" {
			continue
		}

		rec := &model.DetailRecord{
			Maison:     maison,
			Year:       year,
			Activities: make(map[model.Category][]string, len(model.Categories)),
		}

		for _, dc := range detailCols {
			value := getCell(row, dc.col)
			rec.Activities[dc.category] = append(rec.Activities[dc.category], value)
		}

		records = append(records, rec)
	}

	return records, nil
}

// detectDetailColumns 从表头识别明细列并按（类别展示顺序，类别内序号）排序
func detectDetailColumns(header []string) []detailColumn {
	cols := make([]detailColumn, 0, len(header))

	for i, name := range header {
		name = strings.TrimSpace(name)
		pos := strings.LastIndex(name, "_")
		if pos <= 0 {
			continue
		}
		category := name[:pos]
		if !model.IsValidCategory(category) {
			continue
		}
		idx, err := strconv.Atoi(name[pos+1:])
		if err != nil || idx <= 0 {
			continue
		}
		cols = append(cols, detailColumn{
			category: model.Category(category),
			index:    idx,
			col:      i,
		})
	}

	order := make(map[model.Category]int, len(model.Categories))
	for i, c := range model.Categories {
		order[c] = i
	}

	sort.Slice(cols, func(i, j int) bool {
		if cols[i].category != cols[j].category {
			return order[cols[i].category] < order[cols[j].category]
		}
		return cols[i].index < cols[j].index
	})

	return cols
}
