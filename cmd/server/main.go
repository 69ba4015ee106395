package main

import (
	"context"
	"fmt"
	"time"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/logger"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/notification"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address": cfg.Address,
	}).Info("Starting Fiber server...")

	if err := app.Listen(cfg.Address); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()

	// Đăng ký trigger thông báo nhắc việc làm subscriber của event bus.
	// Mọi lần ghi quy trình thành công sẽ được diff và gửi push nếu có
	// nhắc việc vừa đến hạn.
	trigger, err := notification.NewTrigger()
	if err != nil {
		log.WithError(err).Error("Failed to create notification trigger, continuing without due-reminder notifications")
	} else {
		trigger.Register()
		log.Info("[NOTIFICATION] Due-reminder trigger registered")
	}

	// Chạy worker dọn delivery log trong goroutine riêng
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := global.ServerConfig
	cleanupWorker, err := worker.NewDeliveryLogCleanupWorker(
		time.Duration(cfg.DeliveryLogSweepMinutes)*time.Minute,
		cfg.DeliveryLogRetentionDays,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create delivery log cleanup worker, continuing without cleanup")
	} else {
		go cleanupWorker.Start(ctx)
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
