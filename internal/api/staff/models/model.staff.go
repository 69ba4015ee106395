// Package models - Staff thuộc domain Staff (staff).
// Nhân viên môi giới của agency, đồng thời là đích nhận thông báo nhắc việc.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff lưu hồ sơ nhân viên (staff).
type Staff struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	FirebaseUid string `json:"firebaseUid" bson:"firebaseUid" index:"single:1,unique,sparse"`
	Name        string `json:"name" bson:"name"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`

	// FcmToken là push token của thiết bị, được đăng ký ở nơi khác
	// (ngoài phạm vi service này). Rỗng nghĩa là nhân viên chưa có thiết bị nhận.
	FcmToken string `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`

	// IsAdmin cho phép sửa quy trình của nhân viên khác.
	IsAdmin bool `json:"isAdmin" bson:"isAdmin"`

	IsBlock   bool   `json:"isBlock" bson:"isBlock"`
	BlockNote string `json:"blockNote,omitempty" bson:"blockNote,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
