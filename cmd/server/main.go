package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QYW-woker/AI-Management-sub000/internal/api"
	"github.com/QYW-woker/AI-Management-sub000/internal/assistant"
	"github.com/QYW-woker/AI-Management-sub000/internal/config"
	"github.com/QYW-woker/AI-Management-sub000/internal/handlers"
	"github.com/QYW-woker/AI-Management-sub000/internal/llm"
	"github.com/QYW-woker/AI-Management-sub000/internal/logger"
	"github.com/QYW-woker/AI-Management-sub000/internal/store/sqlite"
)

// 日志实例
var log = logger.New("Main")

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Error("load config error: %v", err)
		os.Exit(1)
	}
	logger.SetGlobalLevel(cfg.LogLevel)

	// 2. 打开数据库
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("open store error: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("store ready: %s", cfg.DBPath)

	// 3. 创建模型客户端
	client, err := llm.NewClient(&cfg.AI)
	if err != nil {
		log.Error("create llm client error: %v", err)
		os.Exit(1)
	}
	log.Info("llm client ready: %s/%s", cfg.AI.Provider, client.Name())

	// 4. 组装助手服务
	service := assistant.NewService(client, assistant.Stores{
		Transactions: db,
		Todos:        db,
		Habits:       db,
		Goals:        db,
		Budgets:      db,
		Categories:   db,
	}, assistant.Options{
		ContextWindow:   cfg.ContextWindow,
		DuplicateWindow: cfg.DuplicateWindow,
		Temperature:     cfg.AI.Temperature,
		MaxTokens:       cfg.AI.MaxTokens,
	})

	// 5. 挂载路由并启动 HTTP 服务
	router := api.NewRouter(
		handlers.NewAssistantHandler(service),
		handlers.NewRecordHandler(service),
	)
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server listening on :%s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error: %v", err)
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error: %v", err)
	}
	log.Info("server stopped")
}
