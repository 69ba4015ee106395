// Package database - Index cho các collection của domain transfer.
package database

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
)

// CreateTransferIndexes tạo index cho transfer_processes, staff và delivery log.
// Gọi một lần khi khởi động server; index đã tồn tại được bỏ qua.
func CreateTransferIndexes(ctx context.Context, db *mongo.Database) error {
	processes := db.Collection(global.MongoDB_ColNames.TransferProcesses)

	// (assignedStaffId, status) — dashboard lọc quy trình theo nhân viên phụ trách
	if _, err := processes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "assignedStaffId", Value: 1},
			{Key: "status", Value: 1},
		},
		Options: options.Index().SetName("transfer_staff_status").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// reminders.dueAt multikey — quét reminder đến hạn
	if _, err := processes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "reminders.dueAt", Value: 1}},
		Options: options.Index().SetName("transfer_reminder_due").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// (clientId, clubId) — tra cứu quy trình theo cặp khách hàng/câu lạc bộ
	if _, err := processes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "clientId", Value: 1},
			{Key: "clubId", Value: 1},
		},
		Options: options.Index().SetName("transfer_client_club"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// staff: firebaseUid unique — auth middleware resolve nhân viên từ ID token
	staff := db.Collection(global.MongoDB_ColNames.Staff)
	if _, err := staff.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
		Options: options.Index().SetName("staff_firebase_uid").SetUnique(true).SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery log: (processId, reminderId, createdAt) — tra cứu lịch sử gửi theo reminder
	deliveryLogs := db.Collection(global.MongoDB_ColNames.NotificationDelivery)
	if _, err := deliveryLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "processId", Value: 1},
			{Key: "reminderId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("delivery_process_reminder_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// delivery log: createdAt — cleanup worker xóa log cũ theo thời gian
	if _, err := deliveryLogs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: 1}},
		Options: options.Index().SetName("delivery_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

// isIndexExistsError kiểm tra lỗi index đã tồn tại (IndexOptionsConflict / IndexKeySpecsConflict)
func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "IndexOptionsConflict") ||
		strings.Contains(msg, "IndexKeySpecsConflict") ||
		strings.Contains(msg, "already exists")
}
