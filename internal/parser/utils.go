package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// getCell 按列索引取单元格值（越界按空串处理）
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// buildColIndex 构建列名到列索引的映射
func buildColIndex(header []string) map[string]int {
	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	return colIndex
}

// parseCount 解析提及计数单元格
// 空单元格按 0 处理；Excel 浮点形式（"3"/"3.0"）取整数部分；
// 其余非数字内容视为数据错误上报，不做静默兜底
func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count value %q", raw)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("non-integer count value %q", raw)
	}
	return int(f), nil
}
