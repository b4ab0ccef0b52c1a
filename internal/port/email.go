package port

import "context"

// DocumentEmail is a notification carrying a download link to a rendered document.
type DocumentEmail struct {
	ToEmail     string
	ToName      string
	DocLabel    string
	Number      string
	DownloadURL string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendDocumentLink(ctx context.Context, msg DocumentEmail) error
}
