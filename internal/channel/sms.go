package channel

import (
	"log"
	"net/http"
)

type SmsSender interface {
	Send(phone, body string, meta Meta) Result
}

// HTTPSmsSender delivers through the SMS bridge API.
type HTTPSmsSender struct {
	URL    string
	Client *http.Client
}

func NewHTTPSmsSender(url string) *HTTPSmsSender {
	return &HTTPSmsSender{URL: url, Client: defaultClient()}
}

func (s *HTTPSmsSender) Send(phone, body string, meta Meta) Result {
	payload := map[string]string{
		"phoneNo":     phone,
		"body":        body,
		"userID":      meta.CustomerID,
		"isRecurring": boolString(meta.IsRecurring),
		"serviceName": meta.ServiceName,
	}
	if err := postJSON(s.Client, s.URL, payload); err != nil {
		log.Println("failed to send SMS:", err)
		return failure(err)
	}
	return success()
}
