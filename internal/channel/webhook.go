package channel

import (
	"log"
	"net/http"
)

type WebhookSender interface {
	Send(url string, payload any) Result
}

// HTTPWebhookSender posts a JSON payload to an outbound webhook URL.
type HTTPWebhookSender struct {
	Client *http.Client
}

func NewHTTPWebhookSender() *HTTPWebhookSender {
	return &HTTPWebhookSender{Client: defaultClient()}
}

func (s *HTTPWebhookSender) Send(url string, payload any) Result {
	if err := postJSON(s.Client, url, payload); err != nil {
		log.Println("failed to send webhook:", err)
		return failure(err)
	}
	return success()
}
