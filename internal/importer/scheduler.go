package importer

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler 定时重扫调度器
// 上游不定期补发核验后的工作簿，按 cron 表达式周期性重扫数据目录
type Scheduler struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	onDone  func(Result)
	periods []string
	coord   *Coordinator
}

// NewScheduler 创建调度器（onDone 可为 nil）
func NewScheduler(coord *Coordinator, periods []string, logger *logrus.Logger, onDone func(Result)) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		logger:  logger,
		onDone:  onDone,
		periods: periods,
		coord:   coord,
	}
}

// Start 按 cron 表达式启动定时重扫
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("scheduled rescan started")
		result := s.coord.ImportSync(s.periods)
		s.logger.WithFields(logrus.Fields{
			"ok":  len(result.YearsOK),
			"err": len(result.YearsErr),
		}).Info("scheduled rescan finished")
		if s.onDone != nil {
			s.onDone(result)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	s.cron.Start()
	return nil
}

// Stop 停止调度
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
