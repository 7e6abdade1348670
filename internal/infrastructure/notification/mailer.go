// Package notification delivers review round status notices. The SMTP
// mailer is used in deployments; the log notifier serves development and
// tests.
package notification

import (
	"context"
	"fmt"

	mail "github.com/go-mail/mail/v2"
	"github.com/openpress/editorial/internal/application/port"
	"github.com/openpress/editorial/internal/domain/entity"
	"go.uber.org/zap"
)

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// To receives every review round status notice, typically an editorial
	// office alias.
	To string
}

// Mailer sends review round notices over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	cfg    SMTPConfig
	logger *zap.Logger
}

// NewMailer creates an SMTP-backed notifier.
func NewMailer(cfg SMTPConfig, logger *zap.Logger) *Mailer {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	return &Mailer{dialer: d, cfg: cfg, logger: logger}
}

// NotifyReviewRoundStatus implements port.ReviewRoundNotifier.
func (m *Mailer) NotifyReviewRoundStatus(ctx context.Context, contextID int64, rr *entity.ReviewRound) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", fmt.Sprintf("Review round update for submission %d", rr.SubmissionID))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Submission %d has entered review round %d at the %s stage.\n",
		rr.SubmissionID, rr.Round, rr.StageID))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send review round notice",
			zap.Int64("context_id", contextID),
			zap.Int64("review_round_id", rr.ID),
			zap.Error(err))
		return fmt.Errorf("failed to send review round notice: %w", err)
	}

	m.logger.Info("Sent review round notice",
		zap.Int64("submission_id", rr.SubmissionID), zap.Int("round", rr.Round))
	return nil
}

// LogNotifier records notices in the log without delivering mail.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyReviewRoundStatus implements port.ReviewRoundNotifier.
func (n *LogNotifier) NotifyReviewRoundStatus(_ context.Context, contextID int64, rr *entity.ReviewRound) error {
	n.logger.Info("Review round status notice",
		zap.Int64("context_id", contextID),
		zap.Int64("submission_id", rr.SubmissionID),
		zap.Int("round", rr.Round),
		zap.Int("status", int(rr.Status)))
	return nil
}

var (
	_ port.ReviewRoundNotifier = (*Mailer)(nil)
	_ port.ReviewRoundNotifier = (*LogNotifier)(nil)
)
