package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/api"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/config"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/importer"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/logging"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/monitoring"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/normalize"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/server"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/source"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/store"
	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	// .env 不存在时静默忽略
	_ = godotenv.Load()

	fmt.Println("==========================================")
	fmt.Println("  MaisonLens - LVMH Maison 提及分析")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	logger := logging.NewLoggerWithService("maisonlens")

	// 确保数据目录存在
	resolvedDataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.WithError(err).Fatal("创建数据目录失败")
	}
	fmt.Printf("数据目录: %s\n", resolvedDataDir)

	// 初始化 SQLite Store
	st, err := store.New(filepath.Join(resolvedDataDir, "maisonlens.db"))
	if err != nil {
		logger.WithError(err).Fatal("初始化数据库失败")
	}
	defer st.Close()

	metrics := monitoring.NewMetricsCollector("maisonlens")
	loader := source.NewLoader(resolvedDataDir, normalize.NewDefault(), source.NewMemoryCache())

	exportDir := filepath.Join(resolvedDataDir, "exports")
	handler := api.NewHandler(cfg, st, loader, logger, metrics, exportDir)

	// 启动时扫描一次数据目录，拿到比上次快照更新的文件
	coord := importer.NewCoordinator(st, loader, logger)
	result := coord.ImportSync(cfg.Analysis.Periods)
	if len(result.YearsOK) > 0 || len(result.YearsErr) > 0 {
		if err := handler.ReloadEngine(); err != nil {
			logger.WithError(err).Warn("启动导入后重建分析数据失败")
		}
		metrics.RecordImport(len(result.YearsErr) > 0)
	}

	// 定时重扫（可选）
	if cfg.Data.RefreshCron != "" {
		scheduler := importer.NewScheduler(coord, cfg.Analysis.Periods, logger, func(r importer.Result) {
			if err := handler.ReloadEngine(); err != nil {
				logger.WithError(err).Warn("定时重扫后重建分析数据失败")
			}
			metrics.RecordImport(len(r.YearsErr) > 0)
		})
		if err := scheduler.Start(cfg.Data.RefreshCron); err != nil {
			logger.WithError(err).Warn("启动定时重扫失败")
		} else {
			defer scheduler.Stop()
			logger.WithField("cron", cfg.Data.RefreshCron).Info("scheduled rescan enabled")
		}
	}

	// 创建服务器
	srv := server.NewServer(cfg, handler, logger, metrics)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.WithError(err).Fatal("服务启动失败")
		}
	}()

	// 打开浏览器
	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
}
