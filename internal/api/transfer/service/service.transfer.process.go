// Package transfersvc - Service quy trình chuyển nhượng (transfer_processes).
// Mọi mutation đều theo mẫu read-modify-write cả document: nạp bản hiện tại,
// kiểm tra quyền, áp mutation thuần trên bản in-memory rồi ghi đè có kiểm soát version.
package transfersvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/base/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/api/events"
	transferdto "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/dto"
	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/common"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
)

// Caller là danh tính nhân viên đã xác thực, do middleware cung cấp.
type Caller struct {
	StaffID string
	IsAdmin bool
}

// TransferProcessService xử lý vòng đời quy trình chuyển nhượng.
type TransferProcessService struct {
	*basesvc.BaseServiceMongoImpl[transfermodels.TransferProcess]
}

// NewTransferProcessService tạo TransferProcessService mới.
func NewTransferProcessService() (*TransferProcessService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.TransferProcesses)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.TransferProcesses, common.ErrNotFound)
	}
	return &TransferProcessService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[transfermodels.TransferProcess](coll),
	}, nil
}

// Create tạo quy trình mới. Status luôn là in_progress, version bắt đầu từ 1,
// startDate lấy từ input và không đổi về sau.
func (s *TransferProcessService) Create(ctx context.Context, input *transferdto.TransferProcessCreateInput) (*transfermodels.TransferProcess, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, "Dữ liệu quy trình không hợp lệ", common.StatusBadRequest, err.Error())
	}

	priority := input.Priority
	if priority == "" {
		priority = transfermodels.PriorityMedium
	}

	doc := transfermodels.TransferProcess{
		ClientID:        input.ClientID,
		ClubID:          input.ClubID,
		Status:          transfermodels.ProcessStatusInProgress,
		Kind:            input.Kind,
		Priority:        priority,
		StartDate:       input.StartDate,
		AssignedStaffID: input.AssignedStaffID,
		Version:         1,
	}

	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	events.EmitProcessChanged(ctx, events.ProcessChangeEvent{
		ProcessID: created.ID.Hex(),
		Before:    nil,
		After:     &created,
	})
	return &created, nil
}

// GetById nạp một quy trình theo id hex.
func (s *TransferProcessService) GetById(ctx context.Context, processID string) (*transfermodels.TransferProcess, error) {
	oid, err := parseProcessID(processID)
	if err != nil {
		return nil, err
	}
	p, err := s.FindOneById(ctx, oid)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStatus đổi trạng thái quy trình. Mọi trạng thái đều có thể chuyển
// sang mọi trạng thái khác.
func (s *TransferProcessService) SetStatus(ctx context.Context, caller Caller, processID string, input *transferdto.SetStatusInput) (*transfermodels.TransferProcess, error) {
	if err := global.Validate.Struct(input); err != nil {
		return nil, common.NewError(common.ErrCodeValidationInput, "Trạng thái không hợp lệ", common.StatusBadRequest, err.Error())
	}
	return s.mutate(ctx, caller, processID, input.Version, func(p *transfermodels.TransferProcess) error {
		p.Status = input.Status
		return nil
	})
}

// UpsertStep thêm hoặc sửa một bước: thay tại chỗ nếu trùng id (giữ thứ tự),
// ngược lại nối vào cuối.
func (s *TransferProcessService) UpsertStep(ctx context.Context, caller Caller, processID string, input *transferdto.UpsertStepInput) (*transfermodels.TransferProcess, error) {
	if input.Step.ID == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Bước phải có id", common.StatusBadRequest, nil)
	}
	if !transfermodels.IsValidStepStatus(input.Step.Status) {
		return nil, common.NewError(common.ErrCodeValidationInput, "Trạng thái bước không hợp lệ", common.StatusBadRequest, nil)
	}
	return s.mutate(ctx, caller, processID, input.Version, func(p *transfermodels.TransferProcess) error {
		p.Steps = UpsertStepList(p.Steps, input.Step)
		return nil
	})
}

// RemoveStep xóa một bước theo id. Không lỗi khi id không tồn tại.
func (s *TransferProcessService) RemoveStep(ctx context.Context, caller Caller, processID, stepID string, version int64) (*transfermodels.TransferProcess, error) {
	return s.mutate(ctx, caller, processID, version, func(p *transfermodels.TransferProcess) error {
		p.Steps = RemoveStepList(p.Steps, stepID)
		return nil
	})
}

// UpsertReminder thêm hoặc sửa một nhắc việc. Sửa một nhắc việc (đổi hạn,
// đổi mô tả) giữ nguyên NotifiedAt đã có — chỉ client chủ động đổi dueAt
// mới reset trạng thái đã thông báo.
func (s *TransferProcessService) UpsertReminder(ctx context.Context, caller Caller, processID string, input *transferdto.UpsertReminderInput) (*transfermodels.TransferProcess, error) {
	if input.Reminder.ID == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Nhắc việc phải có id", common.StatusBadRequest, nil)
	}
	if input.Reminder.DueAt <= 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Nhắc việc phải có hạn (dueAt)", common.StatusBadRequest, nil)
	}
	return s.mutate(ctx, caller, processID, input.Version, func(p *transfermodels.TransferProcess) error {
		p.Reminders = UpsertReminderList(p.Reminders, input.Reminder)
		return nil
	})
}

// RemoveReminder xóa một nhắc việc theo id.
func (s *TransferProcessService) RemoveReminder(ctx context.Context, caller Caller, processID, reminderID string, version int64) (*transfermodels.TransferProcess, error) {
	return s.mutate(ctx, caller, processID, version, func(p *transfermodels.TransferProcess) error {
		p.Reminders = RemoveReminderList(p.Reminders, reminderID)
		return nil
	})
}

// UpsertNote thêm hoặc sửa một ghi chú.
func (s *TransferProcessService) UpsertNote(ctx context.Context, caller Caller, processID string, input *transferdto.UpsertNoteInput) (*transfermodels.TransferProcess, error) {
	if input.Note.ID == "" {
		return nil, common.NewError(common.ErrCodeValidationInput, "Ghi chú phải có id", common.StatusBadRequest, nil)
	}
	return s.mutate(ctx, caller, processID, input.Version, func(p *transfermodels.TransferProcess) error {
		p.Notes = UpsertNoteList(p.Notes, input.Note)
		return nil
	})
}

// RemoveNote xóa một ghi chú theo id.
func (s *TransferProcessService) RemoveNote(ctx context.Context, caller Caller, processID, noteID string, version int64) (*transfermodels.TransferProcess, error) {
	return s.mutate(ctx, caller, processID, version, func(p *transfermodels.TransferProcess) error {
		p.Notes = RemoveNoteList(p.Notes, noteID)
		return nil
	})
}

// SetTransferDetails ghi đè toàn bộ kết quả chốt của quy trình.
// Không ràng buộc status = completed — UI tự gate, server không ép.
func (s *TransferProcessService) SetTransferDetails(ctx context.Context, caller Caller, processID string, input *transferdto.SetTransferDetailsInput) (*transfermodels.TransferProcess, error) {
	return s.mutate(ctx, caller, processID, input.Version, func(p *transfermodels.TransferProcess) error {
		details := input.Details
		p.TransferDetails = &details
		return nil
	})
}

// mutate nạp quy trình, kiểm tra quyền sở hữu, áp mutation rồi ghi đè cả
// document với điều kiện version. Ghi trên bản stale trả về ErrVersionConflict.
// StartDate và Version của bản in-memory không cho fn đụng tới.
func (s *TransferProcessService) mutate(ctx context.Context, caller Caller, processID string, version int64, fn func(*transfermodels.TransferProcess) error) (*transfermodels.TransferProcess, error) {
	oid, err := parseProcessID(processID)
	if err != nil {
		return nil, err
	}

	current, err := s.FindOneById(ctx, oid)
	if err != nil {
		return nil, err
	}

	// Chỉ nhân viên phụ trách (hoặc admin) được sửa
	if err := checkOwnership(&current, caller); err != nil {
		return nil, err
	}

	// Client gửi version nó đã đọc; lệch với bản trong DB nghĩa là có phiên
	// khác đã ghi đè từ lúc client load
	if version != current.Version {
		return nil, common.ErrVersionConflict
	}

	before := current
	next := current
	if err := fn(&next); err != nil {
		return nil, err
	}

	// Các field bất biến không cho mutation đổi
	next.ID = current.ID
	next.StartDate = current.StartDate
	next.CreatedAt = current.CreatedAt
	next.Version = current.Version + 1

	filter := bson.M{"_id": oid, "version": current.Version}
	replaced, err := s.ReplaceOne(ctx, filter, next)
	if err != nil {
		// Không khớp filter nghĩa là version đã bị bump bởi phiên khác
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrVersionConflict
		}
		return nil, err
	}

	events.EmitProcessChanged(ctx, events.ProcessChangeEvent{
		ProcessID: processID,
		Before:    &before,
		After:     &replaced,
	})
	return &replaced, nil
}

// MarkReminderNotified đóng dấu notifiedAt cho một nhắc việc sau khi gửi
// thông báo thành công. Ghi targeted bằng array filter, đồng thời bump version
// để client đang giữ bản cũ phải reload thay vì ghi đè mất dấu đã thông báo.
func (s *TransferProcessService) MarkReminderNotified(ctx context.Context, processID, reminderID string, notifiedAt int64) error {
	oid, err := parseProcessID(processID)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": oid}
	update := bson.M{
		"$set": bson.M{"reminders.$[r].notifiedAt": notifiedAt},
		"$inc": bson.M{"version": 1},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"r.id": reminderID}},
	})

	_, err = s.UpdateOne(ctx, filter, update, opts)
	return err
}

// checkOwnership kiểm tra caller có quyền ghi trên quy trình hay không.
// Quy trình chưa gán phụ trách thì nhân viên nào cũng sửa được.
func checkOwnership(p *transfermodels.TransferProcess, caller Caller) error {
	if caller.IsAdmin {
		return nil
	}
	if p.AssignedStaffID == "" || p.AssignedStaffID == caller.StaffID {
		return nil
	}
	return common.ErrNotOwner
}

func parseProcessID(processID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(processID)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"processId không đúng định dạng ObjectId",
			common.StatusBadRequest,
			err,
		)
	}
	return oid, nil
}

// UpsertStepList thay bước trùng id tại chỗ (giữ thứ tự hiển thị),
// không trùng thì nối vào cuối. Hàm thuần, trả về slice mới.
func UpsertStepList(steps []transfermodels.Step, step transfermodels.Step) []transfermodels.Step {
	out := make([]transfermodels.Step, len(steps))
	copy(out, steps)
	for i := range out {
		if out[i].ID == step.ID {
			out[i] = step
			return out
		}
	}
	return append(out, step)
}

// RemoveStepList lọc bỏ bước theo id. Hàm thuần.
func RemoveStepList(steps []transfermodels.Step, id string) []transfermodels.Step {
	out := make([]transfermodels.Step, 0, len(steps))
	for _, st := range steps {
		if st.ID != id {
			out = append(out, st)
		}
	}
	return out
}

// UpsertReminderList thay nhắc việc trùng id tại chỗ, không trùng thì nối
// vào cuối. NotifiedAt do server quản lý nên giá trị client gửi lên bị bỏ
// qua hoàn toàn: dueAt không đổi thì giữ dấu cũ (sửa mô tả không gửi lại),
// dueAt đổi thì xóa dấu để nhắc việc dời lịch được thông báo lại.
func UpsertReminderList(reminders []transfermodels.Reminder, reminder transfermodels.Reminder) []transfermodels.Reminder {
	out := make([]transfermodels.Reminder, len(reminders))
	copy(out, reminders)
	for i := range out {
		if out[i].ID == reminder.ID {
			if out[i].DueAt == reminder.DueAt {
				reminder.NotifiedAt = out[i].NotifiedAt
			} else {
				reminder.NotifiedAt = nil
			}
			out[i] = reminder
			return out
		}
	}
	reminder.NotifiedAt = nil
	return append(out, reminder)
}

// RemoveReminderList lọc bỏ nhắc việc theo id. Hàm thuần.
func RemoveReminderList(reminders []transfermodels.Reminder, id string) []transfermodels.Reminder {
	out := make([]transfermodels.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// UpsertNoteList thay ghi chú trùng id tại chỗ, không trùng thì nối vào cuối. Hàm thuần.
func UpsertNoteList(notes []transfermodels.Note, note transfermodels.Note) []transfermodels.Note {
	out := make([]transfermodels.Note, len(notes))
	copy(out, notes)
	for i := range out {
		if out[i].ID == note.ID {
			out[i] = note
			return out
		}
	}
	return append(out, note)
}

// RemoveNoteList lọc bỏ ghi chú theo id. Hàm thuần.
func RemoveNoteList(notes []transfermodels.Note, id string) []transfermodels.Note {
	out := make([]transfermodels.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
