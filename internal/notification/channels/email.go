package channels

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailChannel gửi nhắc việc qua SMTP — kênh dự phòng khi nhân viên chưa
// đăng ký push token.
type EmailChannel struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewEmailChannel tạo EmailChannel mới từ cấu hình SMTP.
func NewEmailChannel(host string, port int, username, password, from string) (*EmailChannel, error) {
	if host == "" || from == "" {
		return nil, fmt.Errorf("thiếu cấu hình SMTP host hoặc from")
	}
	if port == 0 {
		port = 587
	}
	return &EmailChannel{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}, nil
}

// Send gửi một email nhắc việc tới địa chỉ to. Body là text thuần, các
// trường Data được nối vào cuối để người nhận mở đúng quy trình.
func (ch *EmailChannel) Send(ctx context.Context, to string, payload Payload) error {
	body := payload.Body
	for k, v := range payload.Data {
		body += fmt.Sprintf("\n%s: %s", k, v)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", ch.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", payload.Title)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(ch.host, ch.port, ch.username, ch.password)
	return dialer.DialAndSend(msg)
}
