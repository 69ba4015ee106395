// Package notifsvc - Service delivery log của pipeline thông báo.
package notifsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
	notifmodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/models"
)

// DeliveryLogService là cấu trúc chứa các phương thức liên quan đến delivery log
type DeliveryLogService struct {
	*basesvc.BaseServiceMongoImpl[notifmodels.DeliveryLog]
}

// NewDeliveryLogService tạo mới DeliveryLogService
func NewDeliveryLogService() (*DeliveryLogService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.NotificationDelivery)
	if !exist {
		return nil, fmt.Errorf("failed to get notification_delivery_logs collection: %v", common.ErrNotFound)
	}

	return &DeliveryLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[notifmodels.DeliveryLog](collection),
	}, nil
}

// Record ghi một dòng lịch sử cho một lần xử lý nhắc việc.
func (s *DeliveryLogService) Record(ctx context.Context, log notifmodels.DeliveryLog) error {
	_, err := s.InsertOne(ctx, log)
	return err
}

// PruneOlderThan xóa các dòng lịch sử cũ hơn cutoff (UnixMilli).
// Trả về số dòng đã xóa, dùng bởi cleanup worker.
func (s *DeliveryLogService) PruneOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	return s.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
}

// CutoffForRetentionDays tính mốc thời gian xóa theo số ngày lưu.
func CutoffForRetentionDays(days int) int64 {
	return time.Now().AddDate(0, 0, -days).UnixMilli()
}
