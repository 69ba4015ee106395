// Package transferhdl - Handler quy trình chuyển nhượng.
package transferhdl

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/handler"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/api/middleware"
	transferdto "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/dto"
	transfersvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
)

// TransferProcessHandler xử lý các route quy trình chuyển nhượng.
type TransferProcessHandler struct {
	ProcessService *transfersvc.TransferProcessService
}

// NewTransferProcessHandler tạo TransferProcessHandler mới.
func NewTransferProcessHandler() (*TransferProcessHandler, error) {
	svc, err := transfersvc.NewTransferProcessService()
	if err != nil {
		return nil, fmt.Errorf("tạo TransferProcessService: %w", err)
	}
	return &TransferProcessHandler{ProcessService: svc}, nil
}

// callerFromContext dựng danh tính caller từ locals do auth middleware nạp.
func callerFromContext(c fiber.Ctx) transfersvc.Caller {
	return transfersvc.Caller{
		StaffID: middleware.StaffIDFromContext(c),
		IsAdmin: middleware.IsAdminFromContext(c),
	}
}

// HandleCreate xử lý POST /transfer-processes.
func (h *TransferProcessHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.TransferProcessCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}

		// Quy trình mới mặc định thuộc về người tạo nếu không chỉ định
		if input.AssignedStaffID == "" {
			input.AssignedStaffID = middleware.StaffIDFromContext(c)
		}

		created, err := h.ProcessService.Create(c.Context(), &input)
		return basehdl.HandleResponse(c, created, err)
	})
}

// HandleList xử lý GET /transfer-processes với phân trang.
// Query: page, limit, status, assignedStaffId.
func (h *TransferProcessHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

		filter := map[string]interface{}{}
		if status := c.Query("status"); status != "" {
			filter["status"] = status
		}
		if staffID := c.Query("assignedStaffId"); staffID != "" {
			filter["assignedStaffId"] = staffID
		}

		result, err := h.ProcessService.FindWithPagination(c.Context(), filter, page, limit, nil)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleGetById xử lý GET /transfer-processes/:id.
func (h *TransferProcessHandler) HandleGetById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		p, err := h.ProcessService.GetById(c.Context(), c.Params("id"))
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleDueReminders xử lý GET /transfer-processes/due-reminders.
// Query: at (UnixMilli, mặc định now), assignedStaffId (mặc định caller).
func (h *TransferProcessHandler) HandleDueReminders(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		at := time.Now().UnixMilli()
		if raw := c.Query("at"); raw != "" {
			parsed, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return basehdl.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat, "at phải là UnixMilli", common.StatusBadRequest, nil))
			}
			at = parsed
		}

		staffID := c.Query("assignedStaffId")
		if staffID == "" && !middleware.IsAdminFromContext(c) {
			staffID = middleware.StaffIDFromContext(c)
		}

		items, err := h.ProcessService.FindDueReminders(c.Context(), at, staffID)
		return basehdl.HandleResponse(c, items, err)
	})
}

// HandleSetStatus xử lý PUT /transfer-processes/:id/status.
func (h *TransferProcessHandler) HandleSetStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.SetStatusInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		p, err := h.ProcessService.SetStatus(c.Context(), callerFromContext(c), c.Params("id"), &input)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleUpsertStep xử lý PUT /transfer-processes/:id/steps.
func (h *TransferProcessHandler) HandleUpsertStep(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.UpsertStepInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		p, err := h.ProcessService.UpsertStep(c.Context(), callerFromContext(c), c.Params("id"), &input)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleRemoveStep xử lý DELETE /transfer-processes/:id/steps/:stepId?version=.
func (h *TransferProcessHandler) HandleRemoveStep(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		version, err := versionFromQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		p, err := h.ProcessService.RemoveStep(c.Context(), callerFromContext(c), c.Params("id"), c.Params("stepId"), version)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleUpsertReminder xử lý PUT /transfer-processes/:id/reminders.
func (h *TransferProcessHandler) HandleUpsertReminder(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.UpsertReminderInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		p, err := h.ProcessService.UpsertReminder(c.Context(), callerFromContext(c), c.Params("id"), &input)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleRemoveReminder xử lý DELETE /transfer-processes/:id/reminders/:reminderId?version=.
func (h *TransferProcessHandler) HandleRemoveReminder(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		version, err := versionFromQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		p, err := h.ProcessService.RemoveReminder(c.Context(), callerFromContext(c), c.Params("id"), c.Params("reminderId"), version)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleUpsertNote xử lý PUT /transfer-processes/:id/notes.
func (h *TransferProcessHandler) HandleUpsertNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.UpsertNoteInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		p, err := h.ProcessService.UpsertNote(c.Context(), callerFromContext(c), c.Params("id"), &input)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleRemoveNote xử lý DELETE /transfer-processes/:id/notes/:noteId?version=.
func (h *TransferProcessHandler) HandleRemoveNote(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		version, err := versionFromQuery(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		p, err := h.ProcessService.RemoveNote(c.Context(), callerFromContext(c), c.Params("id"), c.Params("noteId"), version)
		return basehdl.HandleResponse(c, p, err)
	})
}

// HandleSetDetails xử lý PUT /transfer-processes/:id/details.
func (h *TransferProcessHandler) HandleSetDetails(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input transferdto.SetTransferDetailsInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
		}
		p, err := h.ProcessService.SetTransferDetails(c.Context(), callerFromContext(c), c.Params("id"), &input)
		return basehdl.HandleResponse(c, p, err)
	})
}

// versionFromQuery đọc version bắt buộc từ query string cho các route DELETE.
func versionFromQuery(c fiber.Ctx) (int64, error) {
	raw := c.Query("version")
	if raw == "" {
		return 0, common.NewError(common.ErrCodeValidationInput, "Thiếu version hiện tại của quy trình", common.StatusBadRequest, nil)
	}
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.NewError(common.ErrCodeValidationFormat, "version phải là số nguyên", common.StatusBadRequest, nil)
	}
	return version, nil
}
