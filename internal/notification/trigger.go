package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/MarioEggi/SportsTransferApp-sub002/internal/api/events"
	staffsvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/staff/service"
	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
	transfersvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/global"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/channels"
	notifsvc "github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/service"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/utility"
)

// Trigger là subscriber duy nhất của event thay đổi quy trình: diff hai
// snapshot reminder rồi đẩy các nhắc việc vừa đến hạn sang dispatcher.
type Trigger struct {
	dispatcher *Dispatcher
}

// NewTrigger khởi tạo trigger với dispatcher nối đủ các collaborator thật:
// StaffService tra token/email, FCM gửi push (email SMTP dự phòng nếu cấu
// hình), TransferProcessService đóng dấu notifiedAt, DeliveryLogService ghi
// lịch sử.
func NewTrigger() (*Trigger, error) {
	staffSvc, err := staffsvc.NewStaffService()
	if err != nil {
		return nil, fmt.Errorf("tạo StaffService: %w", err)
	}
	processSvc, err := transfersvc.NewTransferProcessService()
	if err != nil {
		return nil, fmt.Errorf("tạo TransferProcessService: %w", err)
	}
	logSvc, err := notifsvc.NewDeliveryLogService()
	if err != nil {
		return nil, fmt.Errorf("tạo DeliveryLogService: %w", err)
	}
	fcm, err := channels.NewFCMChannel(utility.GetFirebaseMessaging())
	if err != nil {
		return nil, fmt.Errorf("tạo FCMChannel: %w", err)
	}

	dispatcher := NewDispatcher(staffSvc, fcm, processSvc, logSvc)

	// Kênh email dự phòng, chỉ bật khi có cấu hình SMTP
	if cfg := global.ServerConfig; cfg != nil && cfg.SMTP_Host != "" {
		mail, err := channels.NewEmailChannel(cfg.SMTP_Host, cfg.SMTP_Port, cfg.SMTP_Username, cfg.SMTP_Password, cfg.SMTP_From)
		if err != nil {
			return nil, fmt.Errorf("tạo EmailChannel: %w", err)
		}
		dispatcher.SetEmailFallback(staffSvc, mail)
	}

	return &Trigger{
		dispatcher: dispatcher,
	}, nil
}

// Register đăng ký trigger làm subscriber của event bus.
func (t *Trigger) Register() {
	events.OnProcessChanged(t.OnProcessUpdated)
}

// OnProcessUpdated là entry point duy nhất của trigger, gọi trên mỗi lần
// ghi quy trình thành công. Thời điểm đánh giá là lúc nhận event, không
// phải lúc client ghi. Hàm an toàn khi bị gọi lặp: nhắc việc đã đóng dấu
// notifiedAt sẽ không được diff ra lần nữa.
func (t *Trigger) OnProcessUpdated(ctx context.Context, e events.ProcessChangeEvent) {
	if e.After == nil {
		return
	}

	nowAfter := time.Now().UnixMilli()

	// Insert không có snapshot before — diff với danh sách rỗng
	var beforeReminders []transfermodels.Reminder
	if e.Before != nil {
		beforeReminders = e.Before.Reminders
	}

	newlyDue := transfersvc.DiffNewlyDue(beforeReminders, e.After.Reminders, nowAfter)
	if len(newlyDue) == 0 {
		return
	}

	t.dispatcher.Dispatch(ctx, e.After, newlyDue)
}
