// Package notification - Test cách ly lỗi của dispatcher: một nhắc việc
// thất bại không được ảnh hưởng các nhắc việc còn lại.
package notification

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
	"github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/channels"
	notifmodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/notification/models"
)

// fakeResolver trả token theo map, lỗi với staffId nằm trong failFor.
type fakeResolver struct {
	tokens  map[string]string
	failFor map[string]bool
}

func (f *fakeResolver) LookupDeliveryToken(ctx context.Context, staffID string) (string, error) {
	if f.failFor[staffID] {
		return "", errors.New("staff lookup failed")
	}
	return f.tokens[staffID], nil
}

// fakeChannel ghi lại các lần gửi, lỗi với token nằm trong failFor.
type fakeChannel struct {
	sent    []string // tokens đã gửi thành công
	failFor map[string]bool
}

func (f *fakeChannel) Send(ctx context.Context, token string, payload channels.Payload) error {
	if f.failFor[token] {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, token)
	return nil
}

// fakeStamper ghi lại các cặp (processId, reminderId) đã đóng dấu.
type fakeStamper struct {
	stamped [][2]string
}

func (f *fakeStamper) MarkReminderNotified(ctx context.Context, processID, reminderID string, notifiedAt int64) error {
	f.stamped = append(f.stamped, [2]string{processID, reminderID})
	return nil
}

// fakeRecorder gom các dòng delivery log.
type fakeRecorder struct {
	logs []notifmodels.DeliveryLog
}

func (f *fakeRecorder) Record(ctx context.Context, log notifmodels.DeliveryLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func newTestDispatcher(resolver *fakeResolver, channel PushChannel, stamper *fakeStamper, recorder *fakeRecorder) *Dispatcher {
	return NewDispatcher(resolver, channel, stamper, recorder)
}

func process(staffID string) *transfermodels.TransferProcess {
	return &transfermodels.TransferProcess{
		ID:              primitive.NewObjectID(),
		AssignedStaffID: staffID,
	}
}

func statusCount(logs []notifmodels.DeliveryLog, status string) int {
	n := 0
	for _, l := range logs {
		if l.Status == status {
			n++
		}
	}
	return n
}

func TestDispatch_SuccessStampsNotifiedAt(t *testing.T) {
	resolver := &fakeResolver{tokens: map[string]string{"staff-a": "token-a"}}
	channel := &fakeChannel{}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	d := newTestDispatcher(resolver, channel, stamper, recorder)

	p := process("staff-a")
	d.Dispatch(context.Background(), p, []transfermodels.Reminder{
		{ID: "r1", DueAt: 1000, Description: "gọi lại CLB", Category: "call"},
	})

	if len(channel.sent) != 1 || channel.sent[0] != "token-a" {
		t.Fatalf("phải gửi đúng 1 push tới token-a, got: %v", channel.sent)
	}
	if len(stamper.stamped) != 1 || stamper.stamped[0][1] != "r1" {
		t.Fatalf("gửi thành công phải đóng dấu r1, got: %v", stamper.stamped)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSent) != 1 {
		t.Errorf("phải có 1 dòng log sent, logs: %v", recorder.logs)
	}
}

func TestDispatch_LookupFailureDoesNotBlockOthers(t *testing.T) {
	// Tra nhân viên của A lỗi, của B thành công: B vẫn phải được gửi
	resolver := &fakeResolver{
		tokens:  map[string]string{"staff-b": "token-b"},
		failFor: map[string]bool{"staff-a": true},
	}
	channel := &fakeChannel{}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	d := newTestDispatcher(resolver, channel, stamper, recorder)

	d.Dispatch(context.Background(), process("staff-a"), []transfermodels.Reminder{{ID: "ra", DueAt: 1}})
	d.Dispatch(context.Background(), process("staff-b"), []transfermodels.Reminder{{ID: "rb", DueAt: 1}})

	if len(channel.sent) != 1 || channel.sent[0] != "token-b" {
		t.Fatalf("B phải được gửi dù A lỗi, got: %v", channel.sent)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSkipped) != 1 {
		t.Errorf("A phải có dòng log skipped, logs: %v", recorder.logs)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSent) != 1 {
		t.Errorf("B phải có dòng log sent, logs: %v", recorder.logs)
	}
}

func TestDispatch_MissingStaffAndTokenSkipped(t *testing.T) {
	resolver := &fakeResolver{tokens: map[string]string{}} // staff-c tồn tại nhưng không có token
	channel := &fakeChannel{}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	d := newTestDispatcher(resolver, channel, stamper, recorder)

	// Quy trình chưa gán phụ trách
	d.Dispatch(context.Background(), process(""), []transfermodels.Reminder{{ID: "r1", DueAt: 1}})
	// Nhân viên không có token
	d.Dispatch(context.Background(), process("staff-c"), []transfermodels.Reminder{{ID: "r2", DueAt: 1}})

	if len(channel.sent) != 0 {
		t.Fatalf("không được gửi push nào, got: %v", channel.sent)
	}
	if len(stamper.stamped) != 0 {
		t.Fatalf("bỏ qua thì không đóng dấu notifiedAt, got: %v", stamper.stamped)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSkipped) != 2 {
		t.Errorf("cả hai trường hợp đều phải ghi log skipped, logs: %v", recorder.logs)
	}
}

func TestDispatch_DeliveryFailureIsolatedPerReminder(t *testing.T) {
	// Hai nhắc việc cùng một quy trình: cái đầu gửi lỗi, cái sau vẫn phải thử
	resolver := &fakeResolver{tokens: map[string]string{"staff-a": "token-a"}}
	failing := &flakyChannel{failOnCall: 1}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	d := newTestDispatcher(resolver, failing, stamper, recorder)

	d.Dispatch(context.Background(), process("staff-a"), []transfermodels.Reminder{
		{ID: "r1", DueAt: 1},
		{ID: "r2", DueAt: 2},
	})

	if failing.calls != 2 {
		t.Fatalf("cả hai nhắc việc đều phải được thử gửi, got %d lần", failing.calls)
	}
	if len(stamper.stamped) != 1 || stamper.stamped[0][1] != "r2" {
		t.Fatalf("chỉ r2 gửi thành công mới được đóng dấu, got: %v", stamper.stamped)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusFailed) != 1 {
		t.Errorf("r1 phải có dòng log failed, logs: %v", recorder.logs)
	}
}

// fakeMailer ghi lại các địa chỉ đã nhận email.
type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(ctx context.Context, to string, payload channels.Payload) error {
	f.sent = append(f.sent, to)
	return nil
}

// fakeEmailResolver trả email theo map.
type fakeEmailResolver struct {
	emails map[string]string
}

func (f *fakeEmailResolver) LookupEmailAddress(ctx context.Context, staffID string) (string, error) {
	return f.emails[staffID], nil
}

func TestDispatch_EmailFallbackWhenNoToken(t *testing.T) {
	// staff-a không có push token nhưng có email: gửi qua kênh email,
	// vẫn đóng dấu notifiedAt và ghi log sent
	resolver := &fakeResolver{tokens: map[string]string{}}
	channel := &fakeChannel{}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	mailer := &fakeMailer{}
	d := newTestDispatcher(resolver, channel, stamper, recorder)
	d.SetEmailFallback(&fakeEmailResolver{emails: map[string]string{"staff-a": "a@club.vn"}}, mailer)

	d.Dispatch(context.Background(), process("staff-a"), []transfermodels.Reminder{{ID: "r1", DueAt: 1}})

	if len(channel.sent) != 0 {
		t.Fatalf("không có token thì không được gửi push, got: %v", channel.sent)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@club.vn" {
		t.Fatalf("phải gửi email dự phòng tới a@club.vn, got: %v", mailer.sent)
	}
	if len(stamper.stamped) != 1 || stamper.stamped[0][1] != "r1" {
		t.Fatalf("gửi email thành công cũng phải đóng dấu notifiedAt, got: %v", stamper.stamped)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSent) != 1 ||
		recorder.logs[0].Channel != notifmodels.DeliveryChannelEmail {
		t.Errorf("phải ghi log sent với channel email, logs: %v", recorder.logs)
	}
}

func TestDispatch_EmailFallbackSkipsWhenNoEmail(t *testing.T) {
	// Bật kênh email nhưng nhân viên không có token lẫn email: vẫn skipped
	resolver := &fakeResolver{tokens: map[string]string{}}
	stamper := &fakeStamper{}
	recorder := &fakeRecorder{}
	mailer := &fakeMailer{}
	d := newTestDispatcher(resolver, &fakeChannel{}, stamper, recorder)
	d.SetEmailFallback(&fakeEmailResolver{emails: map[string]string{}}, mailer)

	d.Dispatch(context.Background(), process("staff-c"), []transfermodels.Reminder{{ID: "r1", DueAt: 1}})

	if len(mailer.sent) != 0 || len(stamper.stamped) != 0 {
		t.Fatalf("không có email thì không được gửi hay đóng dấu, mail: %v, stamp: %v", mailer.sent, stamper.stamped)
	}
	if statusCount(recorder.logs, notifmodels.DeliveryStatusSkipped) != 1 {
		t.Errorf("phải ghi log skipped, logs: %v", recorder.logs)
	}
}

// flakyChannel lỗi ở lượt gọi thứ failOnCall, thành công các lượt khác.
type flakyChannel struct {
	calls      int
	failOnCall int
}

func (f *flakyChannel) Send(ctx context.Context, token string, payload channels.Payload) error {
	f.calls++
	if f.calls == f.failOnCall {
		return errors.New("delivery failed")
	}
	return nil
}
