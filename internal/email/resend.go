package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// resendClient is the concrete Sender backed by the Resend API.
type resendClient struct {
	apiKey     string
	fromAddr   string // e.g. "hello@vowly.app"
	fromName   string // e.g. "Vowly"
	baseURL    string // dashboard URL base, e.g. "https://vowly.app"
	httpClient *http.Client
}

// NewResendClient returns a Sender that delivers email via Resend.
func NewResendClient(apiKey, fromAddr, fromName, baseURL string) Sender {
	return &resendClient{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ─── RESEND API SHAPES ────────────────────────────────────────────────────────

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

// ─── SENDER IMPLEMENTATION ────────────────────────────────────────────────────

// SendProfileReminder sends reminder N of the incomplete-profile sequence.
func (c *resendClient) SendProfileReminder(ctx context.Context, p ProfileReminderParams) error {
	var subject string
	switch p.Ordinal {
	case 1:
		subject = "Finish setting up your Vowly profile"
	case 2:
		subject = "Your Vowly profile is almost there"
	default:
		subject = "Last nudge — complete your Vowly profile"
	}

	target := c.baseURL + "/onboarding"
	pitch := "Couples planning their wedding are browsing Vowly right now — a finished profile is what gets you in front of them."
	if !p.Provider {
		target = c.baseURL + "/getting-started"
		pitch = "Tell us a little about your wedding and we will match you with photographers, caterers and venues that fit."
	}

	html := nudgeHTML(p.Name, subject, pitch, target, "Complete your profile")
	return c.send(ctx, p.To, subject, html)
}

// SendPendingRequestsReminder sends the waiting-requests nudge with the count.
func (c *resendClient) SendPendingRequestsReminder(ctx context.Context, p PendingRequestsParams) error {
	subject := fmt.Sprintf("%d couples are waiting to hear from you", p.PendingCount)
	if p.PendingCount == 1 {
		subject = "A couple is waiting to hear from you"
	}

	noun := "requests"
	if p.PendingCount == 1 {
		noun = "request"
	}
	pitch := fmt.Sprintf(
		"You have %d unanswered quote %s from the last two days. Couples usually book the first provider who replies — a quick answer goes a long way.",
		p.PendingCount, noun,
	)

	html := nudgeHTML(p.Name, subject, pitch, c.baseURL+"/requests", "View requests")
	return c.send(ctx, p.To, subject, html)
}

// SendInactivityNudge sends the re-engagement email.
func (c *resendClient) SendInactivityNudge(ctx context.Context, p InactivityParams) error {
	subject := "Still planning? Pick up where you left off"
	pitch := "It has been a couple of weeks since your last visit. New providers join Vowly every day — come see what's new in your area."

	html := nudgeHTML(p.Name, subject, pitch, c.baseURL+"/dashboard", "Back to Vowly")
	return c.send(ctx, p.To, subject, html)
}

// SendCompletionReminder sends reminder N of the low-completion sequence with
// the live percentage and the outstanding checklist items.
func (c *resendClient) SendCompletionReminder(ctx context.Context, p CompletionReminderParams) error {
	subject := fmt.Sprintf("Your profile is %d%% complete", p.Percentage)
	if p.BusinessName != "" {
		subject = fmt.Sprintf("%s — your profile is %d%% complete", p.BusinessName, p.Percentage)
	}

	html := completionHTML(p.BusinessName, p.Percentage, p.MissingItems, c.baseURL+"/dashboard/profile")
	return c.send(ctx, p.To, subject, html)
}

// ─── HTTP SEND ────────────────────────────────────────────────────────────────

func (c *resendClient) send(ctx context.Context, to, subject, html string) error {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromAddr)

	reqBody := resendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("email: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.resend.com/emails",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("email: read response: %w", err)
	}

	var parsed resendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return fmt.Errorf("email: unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		return fmt.Errorf("email: Resend error %s: %s", parsed.Error.Name, parsed.Error.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	return nil
}

// ─── HTML TEMPLATES ───────────────────────────────────────────────────────────

func nudgeHTML(name, heading, pitch, targetURL, buttonLabel string) string {
	greeting := "Hello"
	if name != "" {
		greeting = fmt.Sprintf("Hello %s", name)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">%s</h2>
  <p>%s,</p>
  <p>%s</p>
  <p style="margin: 32px 0;">
    <a href="%s"
       style="background: #831843; color: #ffffff; padding: 12px 24px;
              border-radius: 6px; text-decoration: none; font-weight: 600;">
      %s
    </a>
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    Vowly · The wedding marketplace
  </p>
</body>
</html>`, heading, greeting, pitch, targetURL, buttonLabel)
}

func completionHTML(bizName string, percentage int, missingItems []string, targetURL string) string {
	greeting := "Hello"
	if bizName != "" {
		greeting = fmt.Sprintf("Hello %s", bizName)
	}

	var items strings.Builder
	for _, item := range missingItems {
		fmt.Fprintf(&items, "    <li style=\"margin-bottom: 6px;\">%s</li>\n", item)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">Your profile is %d%% complete</h2>
  <p>%s,</p>
  <p>Profiles over 70%% complete get significantly more enquiries from couples.
  Here is what is still missing from yours:</p>
  <ul style="color: #374151;">
%s  </ul>
  <p style="margin: 32px 0;">
    <a href="%s"
       style="background: #831843; color: #ffffff; padding: 12px 24px;
              border-radius: 6px; text-decoration: none; font-weight: 600;">
      Finish your profile
    </a>
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    Vowly · The wedding marketplace
  </p>
</body>
</html>`, percentage, greeting, items.String(), targetURL)
}
