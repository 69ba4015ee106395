package logger

import (
	"os"
	"strconv"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	Level      string // Log level: debug, info, warn, error
	Format     string // Format: text hoặc json
	Output     string // Output: stdout, file, both
	LogPath    string // Thư mục chứa file log (relative từ root project)
	AppFile    string // File log chung của ứng dụng
	NotifyFile string // File log riêng cho pipeline notification (trigger + dispatcher)
	MaxSize    int    // Kích thước tối đa mỗi file (MB) trước khi rotate
	MaxBackups int    // Số file cũ giữ lại
	MaxAge     int    // Số ngày giữ file cũ
	Compress   bool   // Nén file cũ
}

// DefaultConfig trả về cấu hình mặc định, đọc override từ environment variables
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{
		Level:      "info",
		Format:     "text",
		Output:     "both",
		LogPath:    "logs",
		AppFile:    "app.log",
		NotifyFile: "notification.log",
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}
	if v := os.Getenv("LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxAge = n
		}
	}

	return cfg
}
