// Package notify has webhook delivery logic for health results.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dorascope/dorascope/internal/contract"
	"github.com/dorascope/dorascope/schema"
)

// Default timeout for webhook delivery. Notifications are best effort and
// must not hold up the command for long.
const deliverTimeout = 10 * time.Second

// Notifier delivers health summaries to a single webhook target.
type Notifier struct {
	url    string
	kind   string
	client *http.Client
}

var _ contract.Notifier = (*Notifier)(nil) // Compile-time check

// NewNotifier builds a notifier for the configured webhook target.
// It returns nil when no webhook URL is configured; a nil notifier
// delivers nothing.
func NewNotifier(cfg *contract.Config) *Notifier {
	if cfg.WebhookURL == "" {
		return nil
	}
	return &Notifier{
		url:    cfg.WebhookURL,
		kind:   cfg.WebhookType,
		client: &http.Client{Timeout: deliverTimeout},
	}
}

// Send delivers the health result to the configured target.
func (n *Notifier) Send(ctx context.Context, result schema.HealthResult) error {
	if n == nil {
		return nil
	}

	switch n.kind {
	case contract.WebhookTeams:
		return n.sendTeams(ctx, result)
	case contract.WebhookHTTP:
		return n.sendHTTP(ctx, result)
	default:
		// Config validation defaults the kind to slack
		return n.sendSlack(ctx, result)
	}
}

func (n *Notifier) sendSlack(ctx context.Context, result schema.HealthResult) error {
	body, err := json.Marshal(map[string]string{
		"text": fmt.Sprintf("*%s* %s", statusTag(result.Overall), summaryMessage(result)),
	})
	if err != nil {
		return err
	}
	return n.post(ctx, body)
}

func (n *Notifier) sendTeams(ctx context.Context, result schema.HealthResult) error {
	payload := map[string]any{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": statusColor(result.Overall),
		"summary":    "DORA health " + string(result.Overall),
		"title":      "DORA Health: " + contract.GetPlainStatusLabel(result.Overall),
		"text":       summaryMessage(result),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return n.post(ctx, body)
}

func (n *Notifier) sendHTTP(ctx context.Context, result schema.HealthResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return n.post(ctx, body)
}

func (n *Notifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

// summaryMessage renders one line naming the repositories that are not good.
func summaryMessage(result schema.HealthResult) string {
	var critical, warning []string
	for i := range result.Reports {
		switch result.Reports[i].Overall {
		case schema.CriticalStatus:
			critical = append(critical, result.Reports[i].Repository)
		case schema.WarningStatus:
			warning = append(warning, result.Reports[i].Repository)
		}
	}

	msg := fmt.Sprintf("DORA health across %d repositories", len(result.Reports))
	if len(result.Reports) == 1 {
		msg = "DORA health for " + result.Reports[0].Repository
	}

	var details []string
	if len(critical) > 0 {
		details = append(details, "critical: "+strings.Join(critical, ", "))
	}
	if len(warning) > 0 {
		details = append(details, "warning: "+strings.Join(warning, ", "))
	}
	if len(details) > 0 {
		return msg + " (" + strings.Join(details, "; ") + ")"
	}
	return msg + ": all good"
}

func statusTag(status schema.HealthStatus) string {
	switch status {
	case schema.CriticalStatus:
		return "[CRITICAL]"
	case schema.WarningStatus:
		return "[WARNING]"
	default:
		return "[OK]"
	}
}

func statusColor(status schema.HealthStatus) string {
	switch status {
	case schema.CriticalStatus:
		return "c4314b"
	case schema.WarningStatus:
		return "f1c232"
	default:
		return "2eb886"
	}
}
