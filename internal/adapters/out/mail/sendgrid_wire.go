package mail

import (
	"log"
	"strings"
)

// NewOrderMailerWithSendGrid は、SendGrid を使った OrderMailer を生成します。
// 設定が揃っていない場合は nil を返します（通知なしで動作）。
//
//   - apiKey : SendGrid の API キー
//   - from   : 送信元メールアドレス
//   - to     : 注文通知の宛先
func NewOrderMailerWithSendGrid(apiKey, from, to string) *OrderMailer {
	if strings.TrimSpace(apiKey) == "" {
		log.Printf("[mail] SENDGRID_API_KEY is empty. order notification disabled.")
		return nil
	}
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		log.Printf("[mail] WARN: SENDGRID_FROM / ORDER_NOTIFY_TO is empty. order notification disabled.")
		return nil
	}

	mailer := NewOrderMailer(NewSendGridClient(apiKey), from, to)
	log.Printf("[mail] OrderMailerWithSendGrid initialized. from=%s to=%s", from, to)
	return mailer
}
