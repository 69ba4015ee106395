// Package router đăng ký các route thuộc domain Transfer.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/api/middleware"
	apirouter "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/router"
	transferhdl "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/handler"
)

// Register đăng ký tất cả route Transfer lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	processHandler, err := transferhdl.NewTransferProcessHandler()
	if err != nil {
		return fmt.Errorf("tạo TransferProcessHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// POST /transfer-processes — tạo quy trình mới (status luôn in_progress)
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "POST", "/", middlewares, processHandler.HandleCreate)

	// GET /transfer-processes — danh sách phân trang. Query: page, limit, status, assignedStaffId
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "GET", "/", middlewares, processHandler.HandleList)

	// GET /transfer-processes/due-reminders — dashboard nhắc việc đến hạn. Query: at, assignedStaffId
	// Đăng ký trước /:id để Fiber không nuốt path này làm param
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "GET", "/due-reminders", middlewares, processHandler.HandleDueReminders)

	// GET /transfer-processes/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "GET", "/:id", middlewares, processHandler.HandleGetById)

	// PUT /transfer-processes/:id/status — đổi trạng thái, mọi chuyển tiếp đều hợp lệ
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "PUT", "/:id/status", middlewares, processHandler.HandleSetStatus)

	// PUT /transfer-processes/:id/steps — upsert theo id (thay tại chỗ hoặc nối cuối)
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "PUT", "/:id/steps", middlewares, processHandler.HandleUpsertStep)
	// DELETE /transfer-processes/:id/steps/:stepId?version=
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "DELETE", "/:id/steps/:stepId", middlewares, processHandler.HandleRemoveStep)

	// PUT /transfer-processes/:id/reminders
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "PUT", "/:id/reminders", middlewares, processHandler.HandleUpsertReminder)
	// DELETE /transfer-processes/:id/reminders/:reminderId?version=
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "DELETE", "/:id/reminders/:reminderId", middlewares, processHandler.HandleRemoveReminder)

	// PUT /transfer-processes/:id/notes
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "PUT", "/:id/notes", middlewares, processHandler.HandleUpsertNote)
	// DELETE /transfer-processes/:id/notes/:noteId?version=
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "DELETE", "/:id/notes/:noteId", middlewares, processHandler.HandleRemoveNote)

	// PUT /transfer-processes/:id/details — ghi đè toàn bộ transferDetails
	apirouter.RegisterRouteWithMiddleware(v1, "/transfer-processes", "PUT", "/:id/details", middlewares, processHandler.HandleSetDetails)

	return nil
}
