package source

import (
	"fmt"
	"os"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/normalize"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/parser"
)

// YearError 单年加载失败（不影响其他年份）
type YearError struct {
	Year string
	Err  error
}

func (e *YearError) Error() string {
	return fmt.Sprintf("year %s: %v", e.Year, e.Err)
}

func (e *YearError) Unwrap() error {
	return e.Err
}

// Loader 数据源加载器
// 负责“选哪个文件”与“读成什么记录”，聚合引擎只消费它产出的快照
type Loader struct {
	dataDir    string
	normalizer *normalize.Normalizer
	cache      Cache

	mentionsParser *parser.MentionsParser
	detailsParser  *parser.DetailsParser
}

// NewLoader 创建加载器（cache 传 nil 则不缓存）
func NewLoader(dataDir string, n *normalize.Normalizer, cache Cache) *Loader {
	if n == nil {
		n = normalize.NewDefault()
	}
	if cache == nil {
		cache = NopCache()
	}
	return &Loader{
		dataDir:        dataDir,
		normalizer:     n,
		cache:          cache,
		mentionsParser: parser.NewMentionsParser(n),
		detailsParser:  parser.NewDetailsParser(n),
	}
}

// LoadYear 加载一个财年
// 提及文件缺失时返回 (nil, nil)：该年在所有聚合中直接缺席；
// 明细文件缺失不算错误，仅 Details 为空
func (l *Loader) LoadYear(year string) (*model.YearDataset, error) {
	path, variant, ok := ResolveMentionsFile(l.dataDir, year)
	if !ok {
		return nil, nil
	}

	if ds, hit := l.cache.Get(year, variant); hit {
		return ds, nil
	}

	mentions, err := l.parseMentions(path, year)
	if err != nil {
		return nil, err
	}

	ds := &model.YearDataset{
		Year:     year,
		Variant:  variant,
		Mentions: mentions,
		Details:  []*model.DetailRecord{},
	}

	if detailsPath, ok := ResolveDetailsFile(l.dataDir, year); ok {
		details, err := l.parseDetails(detailsPath, year)
		if err != nil {
			return nil, err
		}
		ds.Details = details
	}

	l.cache.Put(ds)
	return ds, nil
}

// LoadAll 加载所有配置财年
// 单年失败收集为 YearError 继续加载其余年份
func (l *Loader) LoadAll(periods []string) (map[string]*model.YearDataset, []*YearError) {
	datasets := make(map[string]*model.YearDataset)
	yearErrors := make([]*YearError, 0)

	for _, year := range periods {
		ds, err := l.LoadYear(year)
		if err != nil {
			yearErrors = append(yearErrors, &YearError{Year: year, Err: err})
			continue
		}
		if ds == nil {
			continue
		}
		datasets[year] = ds
	}

	return datasets, yearErrors
}

// Invalidate 清空缓存
func (l *Loader) Invalidate() {
	l.cache.Invalidate()
}

// DataDir 返回数据目录
func (l *Loader) DataDir() string {
	return l.dataDir
}

func (l *Loader) parseMentions(path, year string) ([]*model.MentionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.mentionsParser.Parse(f, year)
}

func (l *Loader) parseDetails(path, year string) ([]*model.DetailRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.detailsParser.Parse(f, year)
}
