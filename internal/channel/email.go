package channel

import (
	"log"
	"net/http"
	"regexp"
	"strings"
)

type EmailSender interface {
	Send(to, subject, body string, meta Meta) Result
}

// HTTPEmailSender delivers through the mail bridge API.
type HTTPEmailSender struct {
	URL    string
	Client *http.Client
}

func NewHTTPEmailSender(url string) *HTTPEmailSender {
	return &HTTPEmailSender{URL: url, Client: defaultClient()}
}

func (s *HTTPEmailSender) Send(to, subject, body string, meta Meta) Result {
	payload := map[string]string{
		"receiverEmail": to,
		"Subject":       subject,
		"Body":          htmlToPlainText(body),
		"userID":        meta.CustomerID,
		"isRecurring":   boolString(meta.IsRecurring),
		"serviceName":   meta.ServiceName,
	}
	if err := postJSON(s.Client, s.URL, payload); err != nil {
		log.Println("failed to send email:", err)
		return failure(err)
	}
	return success()
}

var (
	brTagRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	pCloseRe = regexp.MustCompile(`(?i)</p>`)
	anyTagRe = regexp.MustCompile(`<[^>]*>?`)
)

// htmlToPlainText turns template markup into mail-safe plain text: line
// breaks survive, everything else is dropped.
func htmlToPlainText(html string) string {
	s := brTagRe.ReplaceAllString(html, "\n")
	s = pCloseRe.ReplaceAllString(s, "\n")
	s = anyTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
