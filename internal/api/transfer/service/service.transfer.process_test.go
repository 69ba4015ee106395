// Package transfersvc - Test các mutation thuần trên mảng nhúng của quy trình.
package transfersvc

import (
	"testing"

	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
)

func TestUpsertStepList_ReplaceInPlacePreservesOrder(t *testing.T) {
	steps := []transfermodels.Step{
		{ID: "s1", Type: "initial contact", Status: transfermodels.StepStatusDone},
		{ID: "s2", Type: "negotiation", Status: transfermodels.StepStatusPlanned},
		{ID: "s3", Type: "medical", Status: transfermodels.StepStatusPlanned},
	}

	got := UpsertStepList(steps, transfermodels.Step{ID: "s2", Type: "negotiation", Status: transfermodels.StepStatusDone})

	if len(got) != 3 {
		t.Fatalf("thay tại chỗ không được đổi độ dài, got %d", len(got))
	}
	wantOrder := []string{"s1", "s2", "s3"}
	for i, want := range wantOrder {
		if got[i].ID != want {
			t.Errorf("vị trí %d: muốn %s, có %s", i, want, got[i].ID)
		}
	}
	if got[1].Status != transfermodels.StepStatusDone {
		t.Errorf("bước s2 phải được cập nhật status done, có %s", got[1].Status)
	}
}

func TestUpsertStepList_AppendWhenAbsent(t *testing.T) {
	steps := []transfermodels.Step{{ID: "s1", Type: "initial contact", Status: transfermodels.StepStatusDone}}

	got := UpsertStepList(steps, transfermodels.Step{ID: "s9", Type: "signing", Status: transfermodels.StepStatusPlanned})

	if len(got) != 2 {
		t.Fatalf("id mới phải được nối vào cuối, got %d phần tử", len(got))
	}
	if got[1].ID != "s9" {
		t.Errorf("phần tử cuối phải là s9, có %s", got[1].ID)
	}
}

func TestUpsertStepList_DoesNotMutateInput(t *testing.T) {
	steps := []transfermodels.Step{{ID: "s1", Status: transfermodels.StepStatusPlanned}}

	_ = UpsertStepList(steps, transfermodels.Step{ID: "s1", Status: transfermodels.StepStatusDone})

	if steps[0].Status != transfermodels.StepStatusPlanned {
		t.Error("hàm thuần không được sửa slice input")
	}
}

func TestRemoveStepList(t *testing.T) {
	steps := []transfermodels.Step{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}

	got := RemoveStepList(steps, "s2")
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s3" {
		t.Fatalf("xóa s2 phải giữ s1, s3 đúng thứ tự, got: %v", got)
	}

	// Xóa id không tồn tại không lỗi, không đổi danh sách
	got = RemoveStepList(steps, "missing")
	if len(got) != 3 {
		t.Errorf("xóa id không tồn tại không được đổi danh sách, got %d phần tử", len(got))
	}
}

func TestUpsertReminderList_PreservesNotifiedAtWhenDueAtUnchanged(t *testing.T) {
	notified := int64(1_700_000_000_000)
	reminders := []transfermodels.Reminder{
		{ID: "r1", DueAt: 1000, Description: "cũ", NotifiedAt: &notified},
	}

	// Client sửa mô tả nhưng giữ nguyên hạn: dấu notifiedAt phải được giữ
	got := UpsertReminderList(reminders, transfermodels.Reminder{ID: "r1", DueAt: 1000, Description: "mới"})

	if got[0].NotifiedAt == nil || *got[0].NotifiedAt != notified {
		t.Fatal("sửa mô tả không được xóa dấu notifiedAt")
	}
	if got[0].Description != "mới" {
		t.Errorf("mô tả phải được cập nhật, có %s", got[0].Description)
	}
}

func TestUpsertReminderList_ResetNotifiedAtWhenDueAtChanges(t *testing.T) {
	notified := int64(1_700_000_000_000)
	reminders := []transfermodels.Reminder{
		{ID: "r1", DueAt: 1000, NotifiedAt: &notified},
	}

	// Dời hạn sang thời điểm khác: nhắc việc coi như mới, được thông báo lại
	got := UpsertReminderList(reminders, transfermodels.Reminder{ID: "r1", DueAt: 2000})

	if got[0].NotifiedAt != nil {
		t.Fatal("đổi dueAt phải reset dấu notifiedAt")
	}
}

func TestUpsertReminderList_IgnoresClientNotifiedAt(t *testing.T) {
	notified := int64(1_700_000_000_000)
	reminders := []transfermodels.Reminder{
		{ID: "r1", DueAt: 1000, NotifiedAt: &notified},
	}

	// Client đọc-sửa-ghi thường echo lại notifiedAt từ response. Dời hạn
	// kèm echo: dấu vẫn phải bị xóa để nhắc việc dời lịch được gửi lại
	echoed := notified
	got := UpsertReminderList(reminders, transfermodels.Reminder{ID: "r1", DueAt: 2000, NotifiedAt: &echoed})
	if got[0].NotifiedAt != nil {
		t.Fatal("đổi dueAt phải reset dấu notifiedAt kể cả khi client echo lại dấu cũ")
	}

	// Giữ nguyên hạn nhưng client gửi dấu giả: server vẫn dùng dấu đang lưu
	forged := int64(1)
	got = UpsertReminderList(reminders, transfermodels.Reminder{ID: "r1", DueAt: 1000, NotifiedAt: &forged})
	if got[0].NotifiedAt == nil || *got[0].NotifiedAt != notified {
		t.Fatal("dấu notifiedAt do server quản lý, không được nhận giá trị từ client")
	}

	// Nhắc việc mới toanh kèm dấu giả: phải vào danh sách với dấu trống
	got = UpsertReminderList(reminders, transfermodels.Reminder{ID: "r2", DueAt: 3000, NotifiedAt: &forged})
	if got[1].NotifiedAt != nil {
		t.Fatal("nhắc việc mới không được mang sẵn dấu notifiedAt từ client")
	}
}

func TestUpsertNoteList_ReplaceAndAppend(t *testing.T) {
	notes := []transfermodels.Note{{ID: "n1", Description: "a"}}

	got := UpsertNoteList(notes, transfermodels.Note{ID: "n1", Description: "b"})
	if len(got) != 1 || got[0].Description != "b" {
		t.Fatalf("n1 phải được thay tại chỗ, got: %v", got)
	}

	got = UpsertNoteList(notes, transfermodels.Note{ID: "n2", Description: "c"})
	if len(got) != 2 || got[1].ID != "n2" {
		t.Fatalf("n2 phải được nối vào cuối, got: %v", got)
	}
}

func TestRemoveReminderAndNoteList(t *testing.T) {
	reminders := []transfermodels.Reminder{{ID: "r1"}, {ID: "r2"}}
	if got := RemoveReminderList(reminders, "r1"); len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("xóa r1 phải còn r2, got: %v", got)
	}

	notes := []transfermodels.Note{{ID: "n1"}}
	if got := RemoveNoteList(notes, "n1"); len(got) != 0 {
		t.Fatalf("xóa n1 phải cho danh sách rỗng, got: %v", got)
	}
}

func TestCheckOwnership(t *testing.T) {
	p := &transfermodels.TransferProcess{AssignedStaffID: "staff-a"}

	if err := checkOwnership(p, Caller{StaffID: "staff-a"}); err != nil {
		t.Errorf("nhân viên phụ trách phải được sửa: %v", err)
	}
	if err := checkOwnership(p, Caller{StaffID: "staff-b"}); err == nil {
		t.Error("nhân viên khác không được sửa quy trình đã gán")
	}
	if err := checkOwnership(p, Caller{StaffID: "staff-b", IsAdmin: true}); err != nil {
		t.Errorf("admin phải được sửa mọi quy trình: %v", err)
	}

	unassigned := &transfermodels.TransferProcess{}
	if err := checkOwnership(unassigned, Caller{StaffID: "staff-b"}); err != nil {
		t.Errorf("quy trình chưa gán phụ trách thì ai cũng sửa được: %v", err)
	}
}

func TestIsValidProcessStatus(t *testing.T) {
	valid := []string{
		transfermodels.ProcessStatusInProgress,
		transfermodels.ProcessStatusCompleted,
		transfermodels.ProcessStatusCancelled,
	}
	for _, s := range valid {
		if !transfermodels.IsValidProcessStatus(s) {
			t.Errorf("%s phải là trạng thái hợp lệ", s)
		}
	}
	if transfermodels.IsValidProcessStatus("paused") {
		t.Error("paused không phải trạng thái hợp lệ")
	}
	if transfermodels.IsValidProcessStatus("") {
		t.Error("chuỗi rỗng không phải trạng thái hợp lệ")
	}
}
