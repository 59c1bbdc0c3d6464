package importer

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/source"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/store"
)

// Coordinator 导入协调器
// 扫描数据目录内配置的所有财年，解析后整年替换落库；
// 单年失败只记事件并跳过，不影响其余年份
type Coordinator struct {
	store  *store.Store
	loader *source.Loader
	logger *logrus.Logger
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store, loader *source.Loader, logger *logrus.Logger) *Coordinator {
	return &Coordinator{
		store:  st,
		loader: loader,
		logger: logger,
	}
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/year_start/year_done/year_skip/year_error/done
	Year      string      `json:"year,omitempty"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result 一次导入的汇总
type Result struct {
	YearsOK   []string `json:"yearsOk"`
	YearsSkip []string `json:"yearsSkip"`
	YearsErr  []string `json:"yearsErr"`
}

// Import 执行导入，返回进度通道
func (c *Coordinator) Import(periods []string) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(periods, progressChan)
	}()

	return progressChan
}

// ImportSync 同步执行导入（定时重扫使用）
func (c *Coordinator) ImportSync(periods []string) Result {
	var result Result
	for event := range c.Import(periods) {
		if event.Type == "done" {
			if r, ok := event.Data.(Result); ok {
				result = r
			}
		}
	}
	return result
}

func (c *Coordinator) doImport(periods []string, progressChan chan ProgressEvent) {
	startTime := time.Now()
	result := Result{
		YearsOK:   []string{},
		YearsSkip: []string{},
		YearsErr:  []string{},
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("开始扫描数据目录，共 %d 个财年", len(periods)),
		Timestamp: time.Now(),
	})

	// 重扫前清空会话缓存，确保读到最新文件
	c.loader.Invalidate()

	for _, year := range periods {
		c.sendProgress(progressChan, ProgressEvent{
			Type:      "year_start",
			Year:      year,
			Message:   fmt.Sprintf("处理 %s 财年", year),
			Timestamp: time.Now(),
		})

		ds, err := c.loader.LoadYear(year)
		if err != nil {
			result.YearsErr = append(result.YearsErr, year)
			c.logger.WithError(err).WithField("year", year).Warn("year import failed")
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "year_error",
				Year:      year,
				Message:   fmt.Sprintf("%s 财年导入失败: %v", year, err),
				Timestamp: time.Now(),
			})
			continue
		}
		if ds == nil {
			result.YearsSkip = append(result.YearsSkip, year)
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "year_skip",
				Year:      year,
				Message:   fmt.Sprintf("%s 财年无数据文件，跳过", year),
				Timestamp: time.Now(),
			})
			continue
		}

		if err := c.store.ReplaceYear(ds); err != nil {
			result.YearsErr = append(result.YearsErr, year)
			c.logger.WithError(err).WithField("year", year).Error("year persist failed")
			c.sendProgress(progressChan, ProgressEvent{
				Type:      "year_error",
				Year:      year,
				Message:   fmt.Sprintf("%s 财年入库失败: %v", year, err),
				Timestamp: time.Now(),
			})
			continue
		}

		result.YearsOK = append(result.YearsOK, year)
		c.sendProgress(progressChan, ProgressEvent{
			Type: "year_done",
			Year: year,
			Message: fmt.Sprintf("%s 财年导入完成（%s，%d 个 Maison）",
				year, ds.Variant, len(ds.Mentions)),
			Timestamp: time.Now(),
		})
	}

	logEntry := store.ImportLogEntry{
		StartedAt:  startTime,
		FinishedAt: time.Now(),
		YearsOK:    len(result.YearsOK),
		YearsErr:   len(result.YearsErr),
		Message:    fmt.Sprintf("ok=%v skip=%v err=%v", result.YearsOK, result.YearsSkip, result.YearsErr),
	}
	if err := c.store.AppendImportLog(logEntry); err != nil {
		c.logger.WithError(err).Warn("failed to append import log")
	}

	c.sendProgress(progressChan, ProgressEvent{
		Type: "done",
		Message: fmt.Sprintf("导入完成：成功 %d，跳过 %d，失败 %d",
			len(result.YearsOK), len(result.YearsSkip), len(result.YearsErr)),
		Data:      result,
		Timestamp: time.Now(),
	})
}

func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 消费方跟不上时丢弃进度事件，导入本身不受影响
	}
}
