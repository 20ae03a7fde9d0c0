// Package booking is the thin client for the upstream booking platform.
// The engine depends only on the API interface; the HTTP client here is
// glue around the platform's customer and event endpoints.
package booking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Customer is the contact record the platform returns for a booking's
// customer.
type Customer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	PhoneCountryCode string `json:"phone_country_code"`
	PhoneNumber      string `json:"phone_number"`
}

// Phone joins country code and number; either part may be missing upstream.
func (c *Customer) Phone() string {
	return c.PhoneCountryCode + c.PhoneNumber
}

type API interface {
	GetCustomer(customerID string) (*Customer, error)
	UpdateEvent(eventID string, fields map[string]any) error
	ConfirmEvent(eventID string) error
}

type Client struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) GetCustomer(customerID string) (*Customer, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/customers/"+customerID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch customer %s: status %d", customerID, resp.StatusCode)
	}

	var customer Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) UpdateEvent(eventID string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, c.BaseURL+"/events/"+eventID, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("update event %s: status %d", eventID, resp.StatusCode)
	}
	return nil
}

func (c *Client) ConfirmEvent(eventID string) error {
	return c.UpdateEvent(eventID, map[string]any{"confirmed": true})
}

var _ API = (*Client)(nil)
