package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fleet-tracker/backend/config"
	"fleet-tracker/backend/pkg/database"
	applogger "fleet-tracker/backend/pkg/logger"
)

// RootOptions 所有子命令共享的全局参数
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand 创建根命令
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fleet-tracker",
		Short: "AN-30 fleet utilization tracker",
		Long:  "Daily machine utilization records with lookup tables, calendar browsing and Excel export.",
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "配置文件路径（默认 ./config/config.yaml）")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}

// app 子命令共用的基础设施：配置、日志、数据库（已迁移）
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

// bootstrap 加载配置 → 初始化日志 → 连接数据库 → 执行迁移
func bootstrap(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, applogger.GormLevel(cfg.Log.Level), logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.Driver, logger); err != nil {
		_ = sqlDB.Close()
		_ = logger.Sync()
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db}, nil
}

// close 关闭数据库连接并刷新日志
func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
