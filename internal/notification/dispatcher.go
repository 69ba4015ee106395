package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/logger"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/channels"
	notifmodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/models"
)

// TokenResolver tra push token của nhân viên. Implement bởi StaffService.
type TokenResolver interface {
	LookupDeliveryToken(ctx context.Context, staffID string) (string, error)
}

// PushChannel gửi một push tới token thiết bị. Implement bởi channels.FCMChannel.
type PushChannel interface {
	Send(ctx context.Context, token string, payload channels.Payload) error
}

// ReminderStamper đóng dấu notifiedAt sau khi gửi thành công.
// Implement bởi TransferProcessService.
type ReminderStamper interface {
	MarkReminderNotified(ctx context.Context, processID, reminderID string, notifiedAt int64) error
}

// DeliveryRecorder ghi lịch sử mỗi lần xử lý. Implement bởi DeliveryLogService.
type DeliveryRecorder interface {
	Record(ctx context.Context, log notifmodels.DeliveryLog) error
}

// EmailResolver tra địa chỉ email của nhân viên. Implement bởi StaffService.
type EmailResolver interface {
	LookupEmailAddress(ctx context.Context, staffID string) (string, error)
}

// MailSender gửi một email nhắc việc. Implement bởi channels.EmailChannel.
type MailSender interface {
	Send(ctx context.Context, to string, payload channels.Payload) error
}

// Dispatcher gửi push cho từng nhắc việc vừa đến hạn. Mỗi nhắc việc được xử
// lý độc lập: thiếu nhân viên phụ trách, thiếu token hay gửi thất bại đều
// chỉ ghi log rồi đi tiếp, không bao giờ làm hỏng các nhắc việc còn lại.
type Dispatcher struct {
	tokens  TokenResolver
	channel PushChannel
	stamper ReminderStamper
	history DeliveryRecorder
	emails  EmailResolver
	mailer  MailSender
	log     *logrus.Logger
}

// NewDispatcher tạo Dispatcher mới.
func NewDispatcher(tokens TokenResolver, channel PushChannel, stamper ReminderStamper, history DeliveryRecorder) *Dispatcher {
	return &Dispatcher{
		tokens:  tokens,
		channel: channel,
		stamper: stamper,
		history: history,
		log:     logger.GetNotifyLogger(),
	}
}

// SetEmailFallback bật kênh email dự phòng: nhân viên chưa có push token sẽ
// nhận nhắc việc qua email thay vì bị bỏ qua.
func (d *Dispatcher) SetEmailFallback(emails EmailResolver, mailer MailSender) {
	d.emails = emails
	d.mailer = mailer
}

// Dispatch xử lý danh sách nhắc việc vừa đến hạn của một quy trình.
// Gửi ở đây là best-effort, tối đa một lần mỗi lượt đánh giá — không có
// retry queue; thất bại chỉ để lại log đủ ngữ cảnh cho theo dõi thủ công.
func (d *Dispatcher) Dispatch(ctx context.Context, process *transfermodels.TransferProcess, newlyDue []transfermodels.Reminder) {
	processID := process.ID.Hex()

	for _, reminder := range newlyDue {
		d.dispatchOne(ctx, processID, process.AssignedStaffID, reminder)
	}
}

// dispatchOne xử lý một nhắc việc. Không trả lỗi — mọi kết quả đều được
// ghi vào log vận hành và delivery log.
func (d *Dispatcher) dispatchOne(ctx context.Context, processID, staffID string, reminder transfermodels.Reminder) {
	fields := logrus.Fields{
		"processId":  processID,
		"reminderId": reminder.ID,
		"staffId":    staffID,
	}

	if staffID == "" {
		d.log.WithFields(fields).Warn("Bỏ qua nhắc việc: quy trình chưa gán nhân viên phụ trách")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSkipped, "", "no assigned staff", nil)
		return
	}

	token, err := d.tokens.LookupDeliveryToken(ctx, staffID)
	if err != nil {
		d.log.WithFields(fields).WithError(err).Warn("Bỏ qua nhắc việc: tra nhân viên thất bại")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSkipped, "", "staff lookup failed: "+err.Error(), nil)
		return
	}

	payload := channels.Payload{
		Title: NotificationTitle,
		Body:  reminder.Description,
		Data: map[string]string{
			DataKeyProcessID:  processID,
			DataKeyReminderID: reminder.ID,
			DataKeyCategory:   reminder.Category,
		},
	}

	if token == "" {
		// Không có push token: thử kênh email dự phòng nếu đã cấu hình
		if d.emails != nil && d.mailer != nil {
			d.dispatchEmail(ctx, fields, processID, staffID, reminder, payload)
			return
		}
		d.log.WithFields(fields).Warn("Bỏ qua nhắc việc: nhân viên chưa có push token")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSkipped, "", "no delivery token", nil)
		return
	}

	if err := d.channel.Send(ctx, token, payload); err != nil {
		d.log.WithFields(fields).WithError(err).Error("Gửi push nhắc việc thất bại")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusFailed, notifmodels.DeliveryChannelFCM, err.Error(), nil)
		return
	}

	now := time.Now().UnixMilli()
	d.log.WithFields(fields).Info("Đã gửi push nhắc việc")
	d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSent, notifmodels.DeliveryChannelFCM, "", &now)
	d.stamp(ctx, fields, processID, reminder.ID, now)
}

// dispatchEmail gửi nhắc việc qua email khi nhân viên không có push token.
// Cùng contract với nhánh push: mọi kết quả đều được ghi delivery log.
func (d *Dispatcher) dispatchEmail(ctx context.Context, fields logrus.Fields, processID, staffID string, reminder transfermodels.Reminder, payload channels.Payload) {
	address, err := d.emails.LookupEmailAddress(ctx, staffID)
	if err != nil {
		d.log.WithFields(fields).WithError(err).Warn("Bỏ qua nhắc việc: tra email nhân viên thất bại")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSkipped, "", "staff lookup failed: "+err.Error(), nil)
		return
	}
	if address == "" {
		d.log.WithFields(fields).Warn("Bỏ qua nhắc việc: nhân viên không có push token lẫn email")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSkipped, "", "no delivery token", nil)
		return
	}

	if err := d.mailer.Send(ctx, address, payload); err != nil {
		d.log.WithFields(fields).WithError(err).Error("Gửi email nhắc việc thất bại")
		d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusFailed, notifmodels.DeliveryChannelEmail, err.Error(), nil)
		return
	}

	now := time.Now().UnixMilli()
	d.log.WithFields(fields).Info("Đã gửi email nhắc việc")
	d.record(ctx, processID, staffID, reminder, notifmodels.DeliveryStatusSent, notifmodels.DeliveryChannelEmail, "", &now)
	d.stamp(ctx, fields, processID, reminder.ID, now)
}

// stamp đóng dấu notifiedAt để nhắc việc này không bao giờ phát lại.
func (d *Dispatcher) stamp(ctx context.Context, fields logrus.Fields, processID, reminderID string, now int64) {
	if d.stamper == nil {
		return
	}
	if err := d.stamper.MarkReminderNotified(ctx, processID, reminderID, now); err != nil {
		d.log.WithFields(fields).WithError(err).Error("Đóng dấu notifiedAt thất bại")
	}
}

func (d *Dispatcher) record(ctx context.Context, processID, staffID string, reminder transfermodels.Reminder, status, channel, reason string, sentAt *int64) {
	if d.history == nil {
		return
	}
	err := d.history.Record(ctx, notifmodels.DeliveryLog{
		ProcessID:  processID,
		ReminderID: reminder.ID,
		StaffID:    staffID,
		Category:   reminder.Category,
		Status:     status,
		Channel:    channel,
		Reason:     reason,
		SentAt:     sentAt,
	})
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"processId":  processID,
			"reminderId": reminder.ID,
		}).WithError(err).Error("Ghi delivery log thất bại")
	}
}
