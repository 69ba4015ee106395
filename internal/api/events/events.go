// Package events cung cấp cơ chế event trung tâm khi quy trình chuyển nhượng thay đổi.
// Service workflow không cần biết ai lắng nghe — pipeline thông báo đăng ký qua OnProcessChanged.
package events

import (
	"context"
	"sync"

	transfermodels "github.com/MarioEggi/SportsTransferApp-sub002/internal/api/transfer/models"
)

// ProcessChangeEvent mô tả một lần ghi đè quy trình chuyển nhượng.
// Before là bản ghi trước khi ghi (nil nếu insert), After là bản ghi sau khi ghi.
type ProcessChangeEvent struct {
	ProcessID string
	Before    *transfermodels.TransferProcess
	After     *transfermodels.TransferProcess
}

// ProcessChangeHandler xử lý sự kiện thay đổi quy trình.
type ProcessChangeHandler func(ctx context.Context, e ProcessChangeEvent)

var (
	handlers   []ProcessChangeHandler
	handlersMu sync.RWMutex
)

// OnProcessChanged đăng ký handler. Gọi khi init (ví dụ từ notification package).
func OnProcessChanged(h ProcessChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitProcessChanged phát sự kiện. Gọi từ service workflow sau mỗi lần ghi thành công.
// Mỗi handler chạy trong goroutine riêng, panic được recover để không ảnh hưởng handler khác.
func EmitProcessChanged(ctx context.Context, e ProcessChangeEvent) {
	handlersMu.RLock()
	list := make([]ProcessChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		go func(fn ProcessChangeHandler) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic nhưng không làm sập app
					// Logger có thể chưa init khi event chạy sớm
					_ = r
				}
			}()
			fn(ctx, e)
		}(h)
	}
}
