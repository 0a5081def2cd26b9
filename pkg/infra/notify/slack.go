// Package notify posts the run summary to Slack via an incoming webhook.
package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ferry/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// SlackNotifier posts migration summaries to an incoming webhook. A nil
// notifier (no webhook configured) is valid and does nothing.
type SlackNotifier struct {
	webhookURL string
}

// NewSlack returns a notifier, or nil when webhookURL is empty
func NewSlack(webhookURL string) *SlackNotifier {
	if webhookURL == "" {
		return nil
	}
	return &SlackNotifier{webhookURL: webhookURL}
}

// NotifyResult posts the run summary. Notification failure is the caller's
// problem to log; it never fails a migration.
func (n *SlackNotifier) NotifyResult(ctx context.Context, result *model.MigrationResult) error {
	if n == nil {
		return nil
	}

	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("ferry: migrated %d, kept %d, dropped %d (%d URLs in list)",
			result.Migrated, result.Kept, result.Dropped, len(result.URLs)),
	}
	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack notification")
	}

	return nil
}
