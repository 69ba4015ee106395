package global

import (
	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Đăng ký các custom validator cho domain transfer
	_ = Validate.RegisterValidation("transfer_status", validateTransferStatus)
	_ = Validate.RegisterValidation("transfer_priority", validateTransferPriority)
	_ = Validate.RegisterValidation("step_status", validateStepStatus)
}

// validateTransferStatus kiểm tra status của quy trình chuyển nhượng.
// Giá trị hợp lệ: in_progress, completed, cancelled.
func validateTransferStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in_progress", "completed", "cancelled":
		return true
	}
	return false
}

// validateTransferPriority kiểm tra priority. Rỗng = optional (mặc định medium).
func validateTransferPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "high", "medium", "low":
		return true
	}
	return false
}

// validateStepStatus kiểm tra status của một bước trong quy trình.
func validateStepStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "planned", "done":
		return true
	}
	return false
}
