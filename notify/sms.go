package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// SMSClient posts plain text messages to the SMS vendor's REST endpoint.
type SMSClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	sender     string
}

func NewSMSClientFromEnv() *SMSClient {
	return &SMSClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     os.Getenv("SMS_API_URL"),
		apiKey:     os.Getenv("SMS_API_KEY"),
		sender:     os.Getenv("SMS_SENDER"),
	}
}

type smsResult struct {
	ResultCode string `json:"result_code"`
	Message    string `json:"message"`
}

// Send delivers one message. Vendor-level failures surface as errors so the
// dispatcher can log them.
func (c *SMSClient) Send(to, message string) error {
	if c.apiURL == "" {
		return fmt.Errorf("sms: SMS_API_URL not configured")
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("sender", c.sender)
	form.Set("receiver", to)
	form.Set("msg", message)

	resp, err := c.httpClient.PostForm(c.apiURL, form)
	if err != nil {
		return fmt.Errorf("sms: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sms: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms: status %d: %s", resp.StatusCode, string(body))
	}

	var result smsResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("sms: unmarshal: %w", err)
	}
	if result.ResultCode != "1" {
		return fmt.Errorf("sms: vendor rejected: %s", result.Message)
	}
	return nil
}

// Substitute fills "{placeholder}" variables in an SMS template.
func Substitute(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
