// Package router đăng ký các route thuộc domain Staff.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/api/middleware"
	apirouter "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/router"
	staffhdl "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/staff/handler"
)

// Register đăng ký tất cả route Staff lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	staffHandler, err := staffhdl.NewStaffHandler()
	if err != nil {
		return fmt.Errorf("tạo StaffHandler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /staff — danh sách nhân viên phân trang
	apirouter.RegisterRouteWithMiddleware(v1, "/staff", "GET", "/", middlewares, staffHandler.HandleList)

	// GET /staff/:id
	apirouter.RegisterRouteWithMiddleware(v1, "/staff", "GET", "/:id", middlewares, staffHandler.HandleGetById)

	return nil
}
