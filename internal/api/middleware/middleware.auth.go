// Package middleware chứa các middleware dùng chung cho API.
package middleware

import (
	"context"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	basehdl "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/handler"
	staffsvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/staff/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/logger"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/utility"
)

// Các key lưu trong fiber locals sau khi xác thực thành công.
const (
	LocalStaffID = "staff_id"
	LocalIsAdmin = "is_admin"
)

var (
	staffServiceInstance *staffsvc.StaffService
	staffServiceOnce     sync.Once
)

// getStaffService trả về instance duy nhất của StaffService (singleton pattern)
func getStaffService() *staffsvc.StaffService {
	staffServiceOnce.Do(func() {
		svc, err := staffsvc.NewStaffService()
		if err != nil {
			panic(err)
		}
		staffServiceInstance = svc
	})
	return staffServiceInstance
}

// AuthMiddleware xác thực Firebase ID token và nạp hồ sơ nhân viên vào locals.
// Token gửi qua header Authorization: Bearer <idToken>.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing Authorization header")
			return basehdl.HandleResponse(c, nil, common.ErrTokenMissing)
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		// Verify với Firebase
		decoded, err := utility.VerifyIDToken(context.Background(), parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("[AUTH] Firebase ID token verification failed")
			return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		// Tìm nhân viên theo Firebase UID
		staff, err := getStaffService().FindByFirebaseUid(context.Background(), decoded.UID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path": c.Path(),
				"uid":  decoded.UID,
			}).Warn("[AUTH] Staff not found for Firebase UID")
			return basehdl.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		// Kiểm tra nhân viên có bị khóa không
		if staff.IsBlock {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeAuthToken,
				"Tài khoản đã bị khóa: "+staff.BlockNote,
				common.StatusForbidden,
				nil,
			))
		}

		c.Locals(LocalStaffID, staff.ID.Hex())
		c.Locals(LocalIsAdmin, staff.IsAdmin)
		return c.Next()
	}
}

// StaffIDFromContext lấy id nhân viên (hex) đã xác thực từ fiber locals.
func StaffIDFromContext(c fiber.Ctx) string {
	if v, ok := c.Locals(LocalStaffID).(string); ok {
		return v
	}
	return ""
}

// IsAdminFromContext cho biết nhân viên đã xác thực có quyền admin hay không.
func IsAdminFromContext(c fiber.Ctx) bool {
	if v, ok := c.Locals(LocalIsAdmin).(bool); ok {
		return v
	}
	return false
}
