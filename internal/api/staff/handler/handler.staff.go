// Package staffhdl - Handler tra cứu nhân viên.
package staffhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/handler"
	staffsvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/staff/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
)

// StaffHandler xử lý các route nhân viên (chỉ đọc — hồ sơ và token được
// quản lý ở hệ thống khác).
type StaffHandler struct {
	StaffService *staffsvc.StaffService
}

// NewStaffHandler tạo StaffHandler mới.
func NewStaffHandler() (*StaffHandler, error) {
	svc, err := staffsvc.NewStaffService()
	if err != nil {
		return nil, fmt.Errorf("tạo StaffService: %w", err)
	}
	return &StaffHandler{StaffService: svc}, nil
}

// HandleList xử lý GET /staff với phân trang. Query: page, limit.
func (h *StaffHandler) HandleList(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

		result, err := h.StaffService.FindWithPagination(c.Context(), nil, page, limit, nil)
		return basehdl.HandleResponse(c, result, err)
	})
}

// HandleGetById xử lý GET /staff/:id.
func (h *StaffHandler) HandleGetById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		oid, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "id không đúng định dạng ObjectId", common.StatusBadRequest, nil))
		}
		staff, err := h.StaffService.FindOneById(c.Context(), oid)
		return basehdl.HandleResponse(c, staff, err)
	})
}
