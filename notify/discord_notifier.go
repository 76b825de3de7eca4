package notify

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"caseodds/events"
	"caseodds/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// webhookExecutor is the part of *discordgo.Session used to post to a webhook
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts run summaries to a Discord webhook
type DiscordNotifier struct {
	session   webhookExecutor
	webhookID string
	token     string
}

// ParseWebhookURL extracts the id and token from a webhook URL of the form
// https://discord.com/api/webhooks/{id}/{token}
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("invalid webhook URL: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" {
			id, token = parts[i+1], parts[i+2]
			break
		}
	}
	if id == "" || token == "" {
		return "", "", fmt.Errorf("invalid webhook URL: expected .../webhooks/{id}/{token}")
	}
	return id, token, nil
}

// NewDiscordNotifier creates a notifier for the given webhook URL. Webhooks
// need no bot token, so the session is created without one.
func NewDiscordNotifier(webhookURL string) (*DiscordNotifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return newDiscordNotifier(session, id, token), nil
}

func newDiscordNotifier(session webhookExecutor, id, token string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		webhookID: id,
		token:     token,
	}
}

// Notify posts the summary embed, attaching the chart when chartPath is set
func (n *DiscordNotifier) Notify(report *models.Report, chartPath string) error {
	embed := BuildSummaryEmbed(report)
	params := &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}

	if chartPath != "" {
		f, err := os.Open(chartPath)
		if err != nil {
			return fmt.Errorf("failed to open chart: %w", err)
		}
		defer f.Close()

		name := filepath.Base(chartPath)
		params.Files = []*discordgo.File{{
			Name:        name,
			ContentType: "image/png",
			Reader:      f,
		}}
		embed.Image = &discordgo.MessageEmbedImage{URL: "attachment://" + name}
	}

	if _, err := n.session.WebhookExecute(n.webhookID, n.token, false, params); err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	return nil
}

// HandleSimulationCompleted is an events.Handler for SimulationCompletedEvent.
// Notification is best effort; failures are logged.
func (n *DiscordNotifier) HandleSimulationCompleted(ctx context.Context, event events.Event) {
	e, ok := event.(events.SimulationCompletedEvent)
	if !ok {
		return
	}

	if err := n.Notify(e.Report, e.ChartPath); err != nil {
		log.WithError(err).Warn("Failed to send Discord summary")
		return
	}

	log.WithField("runID", e.Report.RunID).Info("Sent Discord summary")
}
