// Package models - TransferProcess thuộc domain Transfer (transfer_processes).
// Root aggregate cho một vụ chuyển nhượng hoặc gia hạn hợp đồng giữa client và club.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransferProcess lưu toàn bộ quy trình chuyển nhượng (transfer_processes).
// Steps/Reminders/Notes là mảng nhúng, luôn được ghi đè toàn bộ khi cập nhật
// (read-modify-write cả document, không merge từng field).
type TransferProcess struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ClientID string `json:"clientId" bson:"clientId" index:"single:1,compound:transfer_client_club"`
	ClubID   string `json:"clubId" bson:"clubId" index:"compound:transfer_client_club"`

	Status   string `json:"status" bson:"status" index:"compound:transfer_staff_status"`
	Kind     string `json:"kind,omitempty" bson:"kind,omitempty"`
	Priority string `json:"priority" bson:"priority"`

	// StartDate đặt khi tạo, không đổi về sau.
	StartDate int64 `json:"startDate" bson:"startDate"`

	// Steps giữ nguyên thứ tự chèn (thứ tự hiển thị, không phải thứ tự thực hiện).
	Steps     []Step     `json:"steps,omitempty" bson:"steps,omitempty"`
	Reminders []Reminder `json:"reminders,omitempty" bson:"reminders,omitempty"`
	Notes     []Note     `json:"notes,omitempty" bson:"notes,omitempty"`

	TransferDetails *TransferDetails `json:"transferDetails,omitempty" bson:"transferDetails,omitempty"`

	// AssignedStaffID là nhân viên phụ trách, dùng để định tuyến thông báo
	// và kiểm tra quyền ghi trên các sub-item.
	AssignedStaffID string `json:"assignedStaffId,omitempty" bson:"assignedStaffId,omitempty" index:"compound:transfer_staff_status"`

	// Version tăng sau mỗi lần ghi thành công. Ghi với version cũ sẽ bị từ chối.
	Version int64 `json:"version" bson:"version"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// Step là một bước trong quy trình. ID do client sinh, duy nhất trong mảng.
type Step struct {
	ID     string `json:"id" bson:"id"`
	Type   string `json:"type" bson:"type"`
	Status string `json:"status" bson:"status"`
	Date   int64  `json:"date,omitempty" bson:"date,omitempty"`
	Notes  string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Reminder là một nhắc việc nhúng trong quy trình. Trạng thái "đến hạn"
// là thuộc tính suy diễn (dueAt <= thời điểm đánh giá), không lưu boolean.
type Reminder struct {
	ID          string `json:"id" bson:"id"`
	DueAt       int64  `json:"dueAt" bson:"dueAt" index:"single:1,sparse"`
	Description string `json:"description" bson:"description"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`

	// NotifiedAt do dispatcher đặt sau khi gửi thông báo thành công.
	// Reminder đã có NotifiedAt sẽ không bao giờ được gửi lại.
	NotifiedAt *int64 `json:"notifiedAt,omitempty" bson:"notifiedAt,omitempty"`
}

// Note là ghi chú tự do nhúng trong quy trình.
type Note struct {
	ID          string `json:"id" bson:"id"`
	Description string `json:"description" bson:"description"`
}

// TransferDetails là kết quả chốt của quy trình, tối đa một bản mỗi process,
// ghi đè toàn bộ khi sửa. Chỉ có ý nghĩa khi status = completed nhưng
// server không ép buộc điều đó.
type TransferDetails struct {
	Date      int64   `json:"date,omitempty" bson:"date,omitempty"`
	FeeAmount float64 `json:"feeAmount,omitempty" bson:"feeAmount,omitempty"`
	FeeFree   bool    `json:"feeFree" bson:"feeFree"`
	Details   string  `json:"details,omitempty" bson:"details,omitempty"`
}

// FindReminder tìm reminder theo id trong danh sách. Trả về nil nếu không có.
// Danh sách nil và danh sách rỗng được coi như nhau.
func FindReminder(reminders []Reminder, id string) *Reminder {
	for i := range reminders {
		if reminders[i].ID == id {
			return &reminders[i]
		}
	}
	return nil
}
