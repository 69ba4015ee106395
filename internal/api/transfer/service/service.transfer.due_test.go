// Package transfersvc - Test các hàm suy diễn nhắc việc đến hạn.
package transfersvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
)

const hourMs = int64(60 * 60 * 1000)

func reminder(id string, dueAt int64) transfermodels.Reminder {
	return transfermodels.Reminder{ID: id, DueAt: dueAt, Description: "desc " + id}
}

func TestDiffNewlyDue_UnchangedReminderPastDue(t *testing.T) {
	// r1 có hạn T+1h, đánh giá tại T+2h: chưa từng thông báo nên phải phát,
	// dù before và after giống hệt nhau
	T := int64(1_700_000_000_000)
	before := []transfermodels.Reminder{reminder("r1", T+hourMs)}
	after := []transfermodels.Reminder{reminder("r1", T+hourMs)}

	got := DiffNewlyDue(before, after, T+2*hourMs)
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("r1 phải được phát khi đến hạn và chưa có notifiedAt, got: %v", got)
	}
}

func TestDiffNewlyDue_NewOverdueReminder(t *testing.T) {
	// Nhắc việc mới tạo đã quá hạn sẵn vẫn phải phát ngay lượt ghi đầu tiên
	T := int64(1_700_000_000_000)
	after := []transfermodels.Reminder{reminder("r2", T-hourMs)}

	got := DiffNewlyDue(nil, after, T)
	if len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("r2 quá hạn mới tạo phải được phát, got: %v", got)
	}
}

func TestDiffNewlyDue_DeletedReminderNeverEmitted(t *testing.T) {
	// Nhắc việc bị xóa khỏi after không bao giờ được phát
	T := int64(1_700_000_000_000)
	before := []transfermodels.Reminder{reminder("r3", T-hourMs)}

	got := DiffNewlyDue(before, []transfermodels.Reminder{}, T)
	if len(got) != 0 {
		t.Fatalf("nhắc việc đã xóa không được phát, got: %v", got)
	}
}

func TestDiffNewlyDue_NotifiedReminderNeverRefires(t *testing.T) {
	// Nhắc việc đã đóng dấu notifiedAt không phát lại trên các lần ghi sau
	T := int64(1_700_000_000_000)
	notified := T - hourMs
	r := reminder("r4", T-2*hourMs)
	r.NotifiedAt = &notified

	got := DiffNewlyDue([]transfermodels.Reminder{r}, []transfermodels.Reminder{r}, T)
	if len(got) != 0 {
		t.Fatalf("nhắc việc đã có notifiedAt không được phát lại, got: %v", got)
	}
}

func TestDiffNewlyDue_NotYetDue(t *testing.T) {
	T := int64(1_700_000_000_000)
	after := []transfermodels.Reminder{reminder("r5", T+hourMs)}

	got := DiffNewlyDue(nil, after, T)
	if len(got) != 0 {
		t.Fatalf("nhắc việc chưa đến hạn không được phát, got: %v", got)
	}
}

func TestDiffNewlyDue_NilAndEmptyEquivalent(t *testing.T) {
	T := int64(1_700_000_000_000)
	if got := DiffNewlyDue(nil, nil, T); len(got) != 0 {
		t.Fatalf("danh sách nil phải cho kết quả rỗng, got: %v", got)
	}
	if got := DiffNewlyDue([]transfermodels.Reminder{}, []transfermodels.Reminder{}, T); len(got) != 0 {
		t.Fatalf("danh sách rỗng phải cho kết quả rỗng, got: %v", got)
	}
}

func TestComputeDueReminders_SortedAscendingAcrossProcesses(t *testing.T) {
	T := int64(1_700_000_000_000)
	p1 := transfermodels.TransferProcess{
		ID:       primitive.NewObjectID(),
		ClientID: "client-1",
		Reminders: []transfermodels.Reminder{
			reminder("a", T-hourMs),
			reminder("b", T-3*hourMs),
			reminder("future", T+hourMs),
		},
	}
	p2 := transfermodels.TransferProcess{
		ID:       primitive.NewObjectID(),
		ClientID: "client-2",
		Reminders: []transfermodels.Reminder{
			reminder("c", T-2*hourMs),
		},
	}

	got := ComputeDueReminders(T, []transfermodels.TransferProcess{p1, p2})
	if len(got) != 3 {
		t.Fatalf("phải có đúng 3 nhắc việc đến hạn, got %d", len(got))
	}

	// Sắp xếp tăng dần theo dueAt bất kể thứ tự input: b, c, a
	wantOrder := []string{"b", "c", "a"}
	for i, want := range wantOrder {
		if got[i].Reminder.ID != want {
			t.Errorf("vị trí %d: muốn %s, có %s", i, want, got[i].Reminder.ID)
		}
	}

	// Ngữ cảnh quy trình phải đi kèm từng nhắc việc
	if got[1].ClientID != "client-2" {
		t.Errorf("nhắc việc c phải mang ngữ cảnh của process p2, có clientId %s", got[1].ClientID)
	}
}

func TestComputeDueReminders_Idempotent(t *testing.T) {
	T := int64(1_700_000_000_000)
	processes := []transfermodels.TransferProcess{
		{
			ID:        primitive.NewObjectID(),
			Reminders: []transfermodels.Reminder{reminder("x", T - hourMs), reminder("y", T)},
		},
	}

	first := ComputeDueReminders(T, processes)
	second := ComputeDueReminders(T, processes)

	if len(first) != len(second) {
		t.Fatalf("hai lần gọi cùng input phải cho cùng số kết quả: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Reminder.ID != second[i].Reminder.ID {
			t.Errorf("vị trí %d khác nhau giữa hai lần gọi: %s vs %s", i, first[i].Reminder.ID, second[i].Reminder.ID)
		}
	}

	// Hạn đúng bằng now vẫn tính là đến hạn (dueAt <= now)
	if len(first) != 2 {
		t.Errorf("dueAt == now phải tính là đến hạn, got %d kết quả", len(first))
	}
}

func TestComputeDueReminders_AllStatusesIncluded(t *testing.T) {
	// Dashboard chiếu nhắc việc trên quy trình ở mọi trạng thái: hoàn tất
	// hay đã hủy vẫn hiện cho tới khi được xử lý
	T := int64(1_700_000_000_000)
	processes := []transfermodels.TransferProcess{
		{
			ID:        primitive.NewObjectID(),
			Status:    transfermodels.ProcessStatusCompleted,
			Reminders: []transfermodels.Reminder{reminder("rc", T - hourMs)},
		},
		{
			ID:        primitive.NewObjectID(),
			Status:    transfermodels.ProcessStatusCancelled,
			Reminders: []transfermodels.Reminder{reminder("rx", T - 2*hourMs)},
		},
	}

	got := ComputeDueReminders(T, processes)
	if len(got) != 2 {
		t.Fatalf("nhắc việc trên quy trình hoàn tất/hủy vẫn phải hiện, got: %v", got)
	}
}
