package services

import (
	"SaudeSync/config"
	"SaudeSync/models"
	"SaudeSync/repositories"
	"context"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// NotificationSink receives fire-and-forget notifications. Implementations log their own
// failures; callers never see them.
type NotificationSink interface {
	Notify(ctx context.Context, n models.Notification)
}

// LogSink writes notifications to the structured log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(ctx context.Context, n models.Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Action != nil {
		fields = append(fields, zap.String("action_href", n.Action.Href))
	}
	s.log.Info("Notification", fields...)
}

// FeedSink appends notifications to the recent-notifications feed.
type FeedSink struct {
	repo *repositories.NotificationRepository
	log  *zap.Logger
}

func NewFeedSink(repo *repositories.NotificationRepository, log *zap.Logger) *FeedSink {
	return &FeedSink{repo: repo, log: log}
}

func (s *FeedSink) Notify(ctx context.Context, n models.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if err := s.repo.Push(ctx, n); err != nil {
		s.log.Warn("Failed to store notification", zap.String("title", n.Title), zap.Error(err))
	}
}

// MailSink emails notifications to a single recipient over SMTP.
type MailSink struct {
	from      string
	recipient string
	baseURL   string
	send      func(...*gomail.Message) error
	log       *zap.Logger
}

func NewMailSink(cfg config.SMTPConfig, baseURL string, log *zap.Logger) *MailSink {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	return &MailSink{
		from:      cfg.From,
		recipient: cfg.Recipient,
		baseURL:   baseURL,
		send:      dialer.DialAndSend,
		log:       log,
	}
}

func (s *MailSink) Notify(ctx context.Context, n models.Notification) {
	if err := s.send(s.buildMessage(n)); err != nil {
		s.log.Warn("Failed to send notification email",
			zap.String("recipient", s.recipient),
			zap.String("title", n.Title),
			zap.Error(err),
		)
	}
}

func (s *MailSink) buildMessage(n models.Notification) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipient)
	m.SetHeader("Subject", n.Title)
	m.SetBody("text/plain", n.Description)

	link := ""
	if n.Action != nil {
		link = fmt.Sprintf(`<p><a href="%s%s">%s</a></p>`,
			html.EscapeString(s.baseURL), html.EscapeString(n.Action.Href), html.EscapeString(n.Action.Label))
	}
	m.AddAlternative("text/html", `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h1>`+html.EscapeString(n.Title)+`</h1>
	<p>`+html.EscapeString(n.Description)+`</p>
	`+link+`
</body>
</html>`)
	return m
}

// FanoutSink delivers to every wrapped sink in order.
type FanoutSink []NotificationSink

func (f FanoutSink) Notify(ctx context.Context, n models.Notification) {
	for _, sink := range f {
		sink.Notify(ctx, n)
	}
}
