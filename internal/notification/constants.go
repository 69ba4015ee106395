// Package notification chứa trigger diff nhắc việc và dispatcher gửi push
// cho nhân viên phụ trách.
package notification

// NotificationTitle là tiêu đề cố định của push nhắc việc; phần body lấy
// từ mô tả của chính nhắc việc.
const NotificationTitle = "Reminder due"

// Các key trong phần data của payload, client mobile dùng để deep-link.
const (
	DataKeyProcessID  = "processId"
	DataKeyReminderID = "reminderId"
	DataKeyCategory   = "category"
)
