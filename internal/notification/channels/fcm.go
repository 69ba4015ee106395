// Package channels chứa các kênh gửi thông báo: Firebase Cloud Messaging
// là kênh chính, email SMTP là kênh dự phòng.
package channels

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Payload là nội dung một push nhắc việc.
type Payload struct {
	Title string
	Body  string
	Data  map[string]string
}

// FCMChannel gửi push qua Firebase Cloud Messaging.
type FCMChannel struct {
	client *messaging.Client
}

// NewFCMChannel tạo FCMChannel mới. Client lấy từ Firebase app đã init.
func NewFCMChannel(client *messaging.Client) (*FCMChannel, error) {
	if client == nil {
		return nil, fmt.Errorf("messaging client chưa được khởi tạo")
	}
	return &FCMChannel{client: client}, nil
}

// Send gửi một push tới token thiết bị. Lỗi trả về nguyên trạng cho
// dispatcher ghi log — không retry tại đây.
func (ch *FCMChannel) Send(ctx context.Context, token string, payload Payload) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	_, err := ch.client.Send(ctx, msg)
	return err
}
