// Package staffsvc - Service nhân viên (staff).
package staffsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/service"
	staffmodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/staff/models"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
)

// StaffService xử lý tra cứu nhân viên và push token.
type StaffService struct {
	*basesvc.BaseServiceMongoImpl[staffmodels.Staff]
}

// NewStaffService tạo StaffService mới.
func NewStaffService() (*StaffService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Staff)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Staff, common.ErrNotFound)
	}
	return &StaffService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[staffmodels.Staff](coll),
	}, nil
}

// FindByFirebaseUid tìm nhân viên theo Firebase UID (dùng bởi auth middleware).
func (s *StaffService) FindByFirebaseUid(ctx context.Context, uid string) (staffmodels.Staff, error) {
	return s.FindOne(ctx, bson.M{"firebaseUid": uid}, nil)
}

// LookupDeliveryToken tra push token của nhân viên theo id (dạng hex string).
// Trả về chuỗi rỗng, không lỗi, khi nhân viên tồn tại nhưng chưa có token —
// caller tự quyết định bỏ qua và ghi log.
func (s *StaffService) LookupDeliveryToken(ctx context.Context, staffID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return "", common.NewError(
			common.ErrCodeValidationFormat,
			"staffId không đúng định dạng ObjectId",
			common.StatusBadRequest,
			err,
		)
	}

	staff, err := s.FindOneById(ctx, oid)
	if err != nil {
		return "", err
	}
	return staff.FcmToken, nil
}

// LookupEmailAddress tra địa chỉ email của nhân viên theo id (dạng hex
// string). Cùng contract với LookupDeliveryToken: rỗng + không lỗi khi nhân
// viên chưa khai email.
func (s *StaffService) LookupEmailAddress(ctx context.Context, staffID string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(staffID)
	if err != nil {
		return "", common.NewError(
			common.ErrCodeValidationFormat,
			"staffId không đúng định dạng ObjectId",
			common.StatusBadRequest,
			err,
		)
	}

	staff, err := s.FindOneById(ctx, oid)
	if err != nil {
		return "", err
	}
	return staff.Email, nil
}
