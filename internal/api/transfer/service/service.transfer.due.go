// Các hàm suy diễn trạng thái "đến hạn" của nhắc việc. "Đến hạn" là thuộc
// tính tính từ thời điểm đánh giá (dueAt <= now), không phải cờ lưu sẵn,
// nên mọi kết quả ở đây phải được tính lại trên mỗi lần gọi.
package transfersvc

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	transferdto "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/dto"
	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
)

// ComputeDueReminders trả về mọi nhắc việc trên toàn bộ danh sách quy trình
// có dueAt <= now, sắp xếp tăng dần theo dueAt. Hàm thuần: không cache,
// không side effect, gọi hai lần cùng input cho cùng output.
func ComputeDueReminders(now int64, processes []transfermodels.TransferProcess) []transferdto.DueReminderItem {
	items := make([]transferdto.DueReminderItem, 0)
	for i := range processes {
		p := &processes[i]
		for _, r := range p.Reminders {
			if r.DueAt <= now {
				items = append(items, transferdto.DueReminderItem{
					ProcessID:       p.ID.Hex(),
					ClientID:        p.ClientID,
					ClubID:          p.ClubID,
					AssignedStaffID: p.AssignedStaffID,
					Reminder:        r,
				})
			}
		}
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].Reminder.DueAt < items[b].Reminder.DueAt
	})
	return items
}

// DiffNewlyDue xác định các nhắc việc "vừa đến hạn" giữa hai snapshot của
// cùng một quy trình, đánh giá tại now. Một nhắc việc được phát khi nó đến
// hạn và chưa từng được thông báo thành công (notifiedAt còn trống) — nhắc
// việc đã có dấu notifiedAt không bao giờ phát lại. Nhắc việc bị xóa khỏi
// after không bao giờ được phát. Danh sách nil và rỗng tương đương nhau.
func DiffNewlyDue(before, after []transfermodels.Reminder, now int64) []transfermodels.Reminder {
	_ = before // giữ đủ cặp snapshot theo contract của trigger

	newlyDue := make([]transfermodels.Reminder, 0)
	for _, r := range after {
		if r.DueAt <= now && r.NotifiedAt == nil {
			newlyDue = append(newlyDue, r)
		}
	}
	return newlyDue
}

// FindDueReminders nạp quy trình ở mọi trạng thái và chiếu ra danh sách
// nhắc việc đến hạn tại thời điểm at — query surface cho dashboard nhân
// viên. Không lọc theo status: nhắc việc trên quy trình đã hoàn tất hay đã
// hủy vẫn hiện cho tới khi được xử lý hoặc xóa.
func (s *TransferProcessService) FindDueReminders(ctx context.Context, at int64, staffID string) ([]transferdto.DueReminderItem, error) {
	filter := bson.M{}
	if staffID != "" {
		filter["assignedStaffId"] = staffID
	}

	processes, err := s.Find(ctx, filter, nil)
	if err != nil {
		return nil, err
	}
	return ComputeDueReminders(at, processes), nil
}
