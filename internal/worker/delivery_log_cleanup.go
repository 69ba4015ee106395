package worker

import (
	"context"
	"time"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/logger"
	notifsvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/service"
)

// DeliveryLogCleanupWorker worker để tự động xóa delivery log cũ
// Chạy định kỳ để giữ collection notification_delivery_logs trong giới hạn lưu trữ
type DeliveryLogCleanupWorker struct {
	logService    *notifsvc.DeliveryLogService
	interval      time.Duration // Khoảng thời gian giữa các lần chạy
	retentionDays int           // Số ngày lưu delivery log
}

// NewDeliveryLogCleanupWorker tạo mới DeliveryLogCleanupWorker
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 1 giờ)
//   - retentionDays: Số ngày lưu delivery log (mặc định: 90 ngày)
func NewDeliveryLogCleanupWorker(interval time.Duration, retentionDays int) (*DeliveryLogCleanupWorker, error) {
	logService, err := notifsvc.NewDeliveryLogService()
	if err != nil {
		return nil, err
	}

	// Set defaults
	if interval < time.Minute {
		interval = time.Hour
	}
	if retentionDays <= 0 {
		retentionDays = 90
	}

	return &DeliveryLogCleanupWorker{
		logService:    logService,
		interval:      interval,
		retentionDays: retentionDays,
	}, nil
}

// Start bắt đầu background worker xóa delivery log cũ.
// Worker chạy định kỳ theo interval, panic trong một lượt chạy được recover
// và không ảnh hưởng các lượt sau.
func (w *DeliveryLogCleanupWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval":      w.interval.String(),
		"retentionDays": w.retentionDays,
	}).Info("[DELIVERY_LOG_CLEANUP] Starting Delivery Log Cleanup Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("[DELIVERY_LOG_CLEANUP] Delivery Log Cleanup Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("[DELIVERY_LOG_CLEANUP] Panic khi xóa delivery log cũ, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				cutoff := notifsvc.CutoffForRetentionDays(w.retentionDays)
				deleted, err := w.logService.PruneOlderThan(ctx, cutoff)
				if err != nil {
					log.WithError(err).Error("[DELIVERY_LOG_CLEANUP] Failed to prune delivery logs")
					return
				}

				if deleted > 0 {
					log.WithFields(map[string]interface{}{
						"deleted":       deleted,
						"retentionDays": w.retentionDays,
					}).Info("[DELIVERY_LOG_CLEANUP] Pruned old delivery logs")
				}
				// Nếu deleted = 0, không log (giảm log noise)
			}()
		}
	}
}
