package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

// 纯年份标签（"2024"）带 FY 后缀，半年期标签（"2025H1"）不带
var fullYearPattern = regexp.MustCompile(`^\d{4}$`)

// periodLabel 文件名中的财年段
func periodLabel(year string) string {
	if fullYearPattern.MatchString(year) {
		return year + "FY"
	}
	return year
}

// variantSuffix 提及文件名中变体后缀
func variantSuffix(v model.FileVariant) string {
	if v == model.VariantOriginal {
		return ""
	}
	return "_" + string(v)
}

// MentionsFileName 某年某变体的提及文件名
func MentionsFileName(year string, v model.FileVariant) string {
	return fmt.Sprintf("lvmh_%s_maison_mentions%s.xlsx", periodLabel(year), variantSuffix(v))
}

// DetailsFileName 某年的明细文件名（standardized 为 true 时取标准化版本）
func DetailsFileName(year string, standardized bool) string {
	if standardized {
		return fmt.Sprintf("lvmh_%s_maison_details_standardized.xlsx", periodLabel(year))
	}
	return fmt.Sprintf("lvmh_%s_maison_details.xlsx", periodLabel(year))
}

// ResolveMentionsFile 按回退优先级选择某年的提及文件
// 优先级：standardized_verified > standardized > verified > original；
// 四个候选都不存在时返回 ok=false（该年直接缺席，不算错误）
func ResolveMentionsFile(dataDir, year string) (path string, variant model.FileVariant, ok bool) {
	for _, v := range model.MentionVariantPriority {
		candidate := filepath.Join(dataDir, MentionsFileName(year, v))
		if fileExists(candidate) {
			return candidate, v, true
		}
	}
	return "", "", false
}

// ResolveDetailsFile 选择某年的明细文件（标准化版本优先）
func ResolveDetailsFile(dataDir, year string) (path string, ok bool) {
	candidates := []string{
		filepath.Join(dataDir, DetailsFileName(year, true)),
		filepath.Join(dataDir, DetailsFileName(year, false)),
	}
	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
