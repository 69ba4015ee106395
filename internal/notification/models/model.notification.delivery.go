// Package models - DeliveryLog thuộc pipeline thông báo nhắc việc.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các trạng thái kết quả của một lần xử lý nhắc việc đến hạn.
const (
	DeliveryStatusSent    = "sent"
	DeliveryStatusSkipped = "skipped"
	DeliveryStatusFailed  = "failed"
)

// Các kênh gửi thông báo.
const (
	DeliveryChannelFCM   = "fcm"
	DeliveryChannelEmail = "email"
)

// DeliveryLog - Một dòng lịch sử cho mỗi nhắc việc đến hạn được dispatcher
// xử lý (notification_delivery_logs). Ghi cả khi bỏ qua hay thất bại để
// vận hành có đủ ngữ cảnh theo dõi thủ công.
type DeliveryLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ProcessID  string `json:"processId" bson:"processId" index:"compound:delivery_process_reminder"`
	ReminderID string `json:"reminderId" bson:"reminderId" index:"compound:delivery_process_reminder"`
	StaffID    string `json:"staffId,omitempty" bson:"staffId,omitempty"`
	Category   string `json:"category,omitempty" bson:"category,omitempty"`

	Status  string `json:"status" bson:"status"`                     // sent, skipped, failed
	Channel string `json:"channel,omitempty" bson:"channel,omitempty"` // fcm, email
	Reason  string `json:"reason,omitempty" bson:"reason,omitempty"`

	SentAt *int64 `json:"sentAt,omitempty" bson:"sentAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
