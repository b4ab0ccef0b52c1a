// Package noop provides an EmailSender that only logs, for development.
package noop

import (
	"context"

	"go.uber.org/zap"

	"repairdesk/internal/port"
)

type noopSender struct {
	log *zap.Logger
}

// NewNoopSender creates an EmailSender that logs the download link instead of sending it.
func NewNoopSender(log *zap.Logger) port.EmailSender {
	return &noopSender{log: log}
}

func (s *noopSender) SendDocumentLink(_ context.Context, msg port.DocumentEmail) error {
	s.log.Info("noopSender.SendDocumentLink: email not sent",
		zap.String("to", msg.ToEmail),
		zap.String("document", msg.DocLabel+" "+msg.Number),
		zap.String("url", msg.DownloadURL))
	return nil
}
