// Package models - Constants cho domain Transfer.
package models

// Các trạng thái của quy trình chuyển nhượng.
// Mọi trạng thái có thể chuyển sang mọi trạng thái khác — không có guard,
// nhân viên được phép sửa sai bất cứ lúc nào.
const (
	ProcessStatusInProgress = "in_progress"
	ProcessStatusCompleted  = "completed"
	ProcessStatusCancelled  = "cancelled"
)

// Các mức ưu tiên của quy trình. Mặc định là Medium khi không truyền.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Các trạng thái của một bước trong quy trình.
const (
	StepStatusPlanned = "planned"
	StepStatusDone    = "done"
)

// IsValidProcessStatus kiểm tra giá trị trạng thái quy trình.
func IsValidProcessStatus(s string) bool {
	switch s {
	case ProcessStatusInProgress, ProcessStatusCompleted, ProcessStatusCancelled:
		return true
	}
	return false
}

// IsValidPriority kiểm tra giá trị mức ưu tiên.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// IsValidStepStatus kiểm tra giá trị trạng thái bước.
func IsValidStepStatus(s string) bool {
	switch s {
	case StepStatusPlanned, StepStatusDone:
		return true
	}
	return false
}
