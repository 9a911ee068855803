package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/taskup-dev/taskup/internal/cascade"
	"github.com/taskup-dev/taskup/internal/models"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Color       int                   `json:"color"`
	Fields      []DiscordWebhookField `json:"fields"`
	Timestamp   string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackAttachment struct {
	Color     string `json:"color"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Timestamp int64  `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	colorOrange = 16753920 // #FFA500

	webhookUsername = "TaskUp"
)

// Notifier posts project lifecycle events to configured Discord/Slack
// webhooks. Delivery is best-effort and happens outside the cascade
// transaction; a failed webhook never fails the cascade.
type Notifier struct{}

// ProjectDeleted announces a completed project cascade. The caller passes
// the project snapshot taken before deletion, since the row is gone by now.
func (n *Notifier) ProjectDeleted(project models.Project, summary cascade.Summary) {
	text := fmt.Sprintf("%d members removed, %d tasks abandoned, %d resources retired",
		summary.MembersRemoved, summary.TasksDeleted, summary.ResourcesDeleted)

	if project.DiscordWebhook != "" {
		payload := DiscordWebhookRequest{
			Username: webhookUsername,
			Embeds: []DiscordEmbed{
				{
					Title:       "Project deleted",
					Description: fmt.Sprintf("**%s** has been erased by its owner.", project.Name),
					Color:       colorOrange,
					Fields: []DiscordWebhookField{
						{Name: "Summary", Value: text, Inline: false},
					},
					Timestamp: time.Now().Format(time.RFC3339),
				},
			},
		}
		if err := postWebhook(project.DiscordWebhook, payload); err != nil {
			log.Printf("discord webhook for project %d: %v", project.ID, err)
		}
	}

	if project.SlackWebhook != "" {
		payload := SlackWebhookRequest{
			Username: webhookUsername,
			Text:     fmt.Sprintf("Project *%s* deleted", project.Name),
			Attachments: []SlackAttachment{
				{Color: "warning", Title: "Cascade summary", Text: text, Timestamp: time.Now().Unix()},
			},
		}
		if err := postWebhook(project.SlackWebhook, payload); err != nil {
			log.Printf("slack webhook for project %d: %v", project.ID, err)
		}
	}
}

func postWebhook(webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := http.Post(webhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
