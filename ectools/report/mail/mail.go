// Package mail composes report emails and delivers them, either through an
// SMTP server or as an .eml file any mail client can open.
package mail

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"envirocar-tools/ectools/report"

	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog/log"
	gomail "github.com/wneessen/go-mail"
)

const (
	// ReportingAddress receives every report
	ReportingAddress = "envirocar@52north.org"
	// Subject of report emails
	Subject = "enviroCar Log Report"
)

// Report is the content of a report email
type Report struct {
	From     string
	Contents string
	Bundle   string
}

// Deliverer delivers a composed message
type Deliverer interface {
	Deliver(ctx context.Context, msg *gomail.Msg) (string, error)
}

// Compose builds the report email with the bundle attached
func Compose(r Report) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if r.From != "" {
		if err := m.From(r.From); err != nil {
			return nil, fmt.Errorf("invalid sender address '%s': %w", r.From, err)
		}
	}
	if err := m.To(ReportingAddress); err != nil {
		return nil, err
	}

	m.Subject(Subject)
	m.SetBodyString(gomail.TypeTextPlain, r.Contents)
	if r.Bundle != "" {
		m.AttachFile(r.Bundle, gomail.WithFileName(filepath.Base(r.Bundle)))
	}

	return m, nil
}

// SMTP delivers messages through an SMTP server
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Deliver sends the message and returns the server it was sent through
func (s *SMTP) Deliver(ctx context.Context, msg *gomail.Msg) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mail.smtp")
	defer span.Finish()

	opts := []gomail.Option{
		gomail.WithPort(s.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.Username),
			gomail.WithPassword(s.Password),
		)
	}

	c, err := gomail.NewClient(s.Host, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return "", fmt.Errorf("failed to send report to '%s': %w", ReportingAddress, err)
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	log.Info().Str("server", addr).Msg("Report sent")

	return addr, nil
}

// EML writes messages next to the attached bundle, with an .eml extension
type EML struct {
	Bundle string
}

// Deliver writes the message and returns the .eml file path
func (e *EML) Deliver(_ context.Context, msg *gomail.Msg) (string, error) {
	path := strings.TrimSuffix(e.Bundle, filepath.Ext(e.Bundle)) + report.MailExtension
	if err := msg.WriteToFile(path); err != nil {
		return "", fmt.Errorf("failed to write '%s': %w", path, err)
	}

	log.Info().Str("file", path).Msg("Report email written")

	return path, nil
}
