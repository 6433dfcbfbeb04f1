package otp

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
)

// Sender delivers a code to a mobile number.
type Sender interface {
	SendCode(ctx context.Context, mobile, code string) error
}

// SMSSender delivers codes through a Fast2SMS-style bulk SMS endpoint.
type SMSSender struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewSMSSender creates a sender against the given endpoint.
func NewSMSSender(apiKey, endpoint string, client *http.Client) *SMSSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &SMSSender{apiKey: apiKey, endpoint: endpoint, client: client}
}

// SendCode posts the OTP request to the SMS gateway.
func (s *SMSSender) SendCode(ctx context.Context, mobile, code string) error {
	form := url.Values{}
	form.Set("route", "otp")
	form.Set("variables_values", code)
	form.Set("numbers", mobile)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogSender writes codes to the process log instead of sending SMS. Used
// when no gateway key is configured, so the flow stays testable locally.
type LogSender struct{}

func (LogSender) SendCode(_ context.Context, mobile, code string) error {
	log.Printf("otp: code for %s is %s (no SMS gateway configured)", mobile, code)
	return nil
}
