package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Template purposes. Each maps to a pre-approved vendor template code.
const (
	PurposeRequestAdmin     = "request_notify_admin"
	PurposeGuestCancelAdmin = "guest_cancel_notify_admin"
	PurposeConfirmGuest     = "confirm_guest"
	PurposeRejectGuest      = "reject_guest"
	PurposeAdminCancelGuest = "admin_cancel_guest"
)

// AlimtalkClient sends templated Kakao Alimtalk pushes through the vendor's
// REST endpoint. Variables use the vendor's "#{name}" placeholder form.
type AlimtalkClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	sender     string
	templates  map[string]string // purpose -> template code
}

func NewAlimtalkClientFromEnv() *AlimtalkClient {
	templates := map[string]string{
		PurposeRequestAdmin:     envOr("ALIMTALK_TPL_REQUEST_ADMIN", "RESV_REQ_01"),
		PurposeGuestCancelAdmin: envOr("ALIMTALK_TPL_GUEST_CANCEL_ADMIN", "RESV_GCXL_01"),
		PurposeConfirmGuest:     envOr("ALIMTALK_TPL_CONFIRM_GUEST", "RESV_OK_01"),
		PurposeRejectGuest:      envOr("ALIMTALK_TPL_REJECT_GUEST", "RESV_NO_01"),
		PurposeAdminCancelGuest: envOr("ALIMTALK_TPL_ADMIN_CANCEL_GUEST", "RESV_ACXL_01"),
	}
	return &AlimtalkClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     os.Getenv("ALIMTALK_API_URL"),
		apiKey:     os.Getenv("ALIMTALK_API_KEY"),
		sender:     os.Getenv("ALIMTALK_SENDER_KEY"),
		templates:  templates,
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

type alimtalkRequest struct {
	SenderKey    string            `json:"senderKey"`
	TemplateCode string            `json:"templateCode"`
	To           string            `json:"to"`
	Variables    map[string]string `json:"variables,omitempty"`
}

type alimtalkResult struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Send pushes one templated message for the given purpose.
func (c *AlimtalkClient) Send(purpose, phone string, vars map[string]string) error {
	if c.apiURL == "" {
		return fmt.Errorf("alimtalk: ALIMTALK_API_URL not configured")
	}
	code, ok := c.templates[purpose]
	if !ok {
		return fmt.Errorf("alimtalk: unknown purpose %q", purpose)
	}

	payload, err := json.Marshal(alimtalkRequest{
		SenderKey:    c.sender,
		TemplateCode: code,
		To:           strings.ReplaceAll(phone, "-", ""),
		Variables:    vars,
	})
	if err != nil {
		return fmt.Errorf("alimtalk: marshal: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("alimtalk: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("alimtalk: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("alimtalk: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("alimtalk: status %d: %s", resp.StatusCode, string(body))
	}

	var result alimtalkResult
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("alimtalk: unmarshal: %w", err)
	}
	if result.Code != "0000" {
		return fmt.Errorf("alimtalk: vendor rejected [%s] %s", result.Code, result.Message)
	}
	return nil
}
