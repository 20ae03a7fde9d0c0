// Package channel holds the outbound delivery transports. Each channel is a
// thin JSON POST bridge; the engine only depends on the per-channel Send
// contract and its Result.
package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Result statuses mirror the action log statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Result is the outcome of one delivery attempt.
type Result struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func success() Result {
	return Result{Status: StatusSuccess}
}

func failure(err error) Result {
	return Result{Status: StatusFailure, Error: err.Error()}
}

// Meta carries event context the bridge APIs expect alongside the content.
type Meta struct {
	CustomerID  string
	IsRecurring bool
	ServiceName string
}

func defaultClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

func postJSON(client *http.Client, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
