package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/MarioEggi/SportsTransferApp-sub002/config"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/database"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/utility"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initFirebase()         // Khởi tạo Firebase
}

// Hàm khởi tạo validator (global.InitValidator đăng ký các custom validators:
// transfer_status, transfer_priority, step_status)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các index cho các collection
	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateTransferIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create indexes: %v", err)
	} else {
		logrus.Info("Ensured collection indexes")
	}
}

// initFirebase khởi tạo Firebase Admin SDK (Auth cho middleware, FCM cho push)
func initFirebase() {
	cfg := global.ServerConfig

	// Kiểm tra Firebase config có đầy đủ không
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config không đầy đủ, bỏ qua khởi tạo Firebase")
		return
	}

	err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath)
	if err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		// Không fatal, chỉ log warning để hệ thống vẫn chạy được
		return
	}

	logrus.Info("Firebase initialized successfully")
}
