package httpin

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

// TestMailer is the SendGrid-backed order mailer as seen by the debug route.
type TestMailer interface {
	SendTest(ctx context.Context) error
}

// DebugSendGridHandler sends a test mail to the order notification address.
// mailer が nil（SendGrid 未設定）のときは 503。
func DebugSendGridHandler(mailer TestMailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if mailer == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "SendGrid env not set"})
			return
		}

		if err := mailer.SendTest(r.Context()); err != nil {
			log.Printf("[debug_sendgrid] send failed: %v", err)
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "sendgrid error"})
			return
		}

		log.Printf("[debug_sendgrid] test mail sent")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
