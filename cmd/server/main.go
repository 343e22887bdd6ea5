package main

import (
	"github.com/blues/cls/internal/chain"
	"github.com/blues/cls/internal/config"
	"github.com/blues/cls/internal/database"
	"github.com/blues/cls/internal/logger"
	"github.com/blues/cls/internal/logic"
	"github.com/blues/cls/internal/router"
	"github.com/blues/cls/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化链上所有权查询客户端（未启用时认领状态一律为unknown）
	var ownership logic.OwnershipQuery
	if cfg.Chain.Enabled {
		chainClient, err := chain.Init(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize chain client: %v", err)
		}
		defer chainClient.Close()
		ownership = chainClient
	} else {
		logger.Warn("Chain ownership query disabled, claim status will be unknown")
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, ownership, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// initLogger 按配置初始化默认日志器
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" && cfg.File != "" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
