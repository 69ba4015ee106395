// Package dto - DTO cho domain Transfer.
package dto

import (
	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
)

// TransferProcessCreateInput dữ liệu tạo quy trình chuyển nhượng mới.
// Status luôn khởi tạo in_progress phía server, client không truyền.
type TransferProcessCreateInput struct {
	ClientID        string `json:"clientId" validate:"required"`
	ClubID          string `json:"clubId" validate:"required"`
	Kind            string `json:"kind,omitempty"`
	Priority        string `json:"priority,omitempty" validate:"transfer_priority"`
	StartDate       int64  `json:"startDate" validate:"required"`
	AssignedStaffID string `json:"assignedStaffId,omitempty"`
}

// SetStatusInput dữ liệu đổi trạng thái quy trình.
type SetStatusInput struct {
	Status  string `json:"status" validate:"required,transfer_status"`
	Version int64  `json:"version"`
}

// UpsertStepInput dữ liệu thêm/sửa một bước. ID do client sinh.
type UpsertStepInput struct {
	Step    transfermodels.Step `json:"step" validate:"required"`
	Version int64               `json:"version"`
}

// UpsertReminderInput dữ liệu thêm/sửa một nhắc việc. ID do client sinh.
type UpsertReminderInput struct {
	Reminder transfermodels.Reminder `json:"reminder" validate:"required"`
	Version  int64                   `json:"version"`
}

// UpsertNoteInput dữ liệu thêm/sửa một ghi chú. ID do client sinh.
type UpsertNoteInput struct {
	Note    transfermodels.Note `json:"note" validate:"required"`
	Version int64               `json:"version"`
}

// RemoveItemInput dữ liệu xóa một sub-item theo id, kèm version hiện tại.
type RemoveItemInput struct {
	Version int64 `json:"version"`
}

// SetTransferDetailsInput dữ liệu gắn kết quả chốt chuyển nhượng.
type SetTransferDetailsInput struct {
	Details transfermodels.TransferDetails `json:"details"`
	Version int64                          `json:"version"`
}

// DueReminderItem là một nhắc việc đến hạn kèm ngữ cảnh quy trình,
// dùng cho dashboard nhắc việc của nhân viên.
type DueReminderItem struct {
	ProcessID       string                  `json:"processId"`
	ClientID        string                  `json:"clientId"`
	ClubID          string                  `json:"clubId"`
	AssignedStaffID string                  `json:"assignedStaffId,omitempty"`
	Reminder        transfermodels.Reminder `json:"reminder"`
}
