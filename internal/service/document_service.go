package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// DeliverInput optionally names a recipient for the download link.
type DeliverInput struct {
	Email string `json:"email" binding:"omitempty,email"`
	Name  string `json:"name"`
}

// DocumentDeliveryConfig holds where rendered documents are stored.
type DocumentDeliveryConfig struct {
	Bucket        string
	PresignExpiry int64
	Shop          port.ShopProfile
}

// DocumentService renders documents to PDF, stores them and shares a link.
type DocumentService interface {
	DeliverInvoice(ctx context.Context, kind domain.DocumentKind, id uuid.UUID, input DeliverInput) (*domain.DeliveredDocument, error)
	DeliverQuotation(ctx context.Context, id uuid.UUID, input DeliverInput) (*domain.DeliveredDocument, error)
}

type documentService struct {
	invoices   map[domain.DocumentKind]port.InvoiceRepository
	jobSheets  port.JobSheetRepository
	customers  port.CustomerRepository
	quotations port.QuotationRepository
	renderer   port.DocumentRenderer
	storage    port.ObjectStorage
	email      port.EmailSender
	cfg        DocumentDeliveryConfig
	log        *zap.Logger
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	invoices []port.InvoiceRepository,
	jobSheets port.JobSheetRepository,
	customers port.CustomerRepository,
	quotations port.QuotationRepository,
	renderer port.DocumentRenderer,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg DocumentDeliveryConfig,
	log *zap.Logger,
) DocumentService {
	byKind := make(map[domain.DocumentKind]port.InvoiceRepository, len(invoices))
	for _, repo := range invoices {
		byKind[repo.Kind()] = repo
	}
	return &documentService{
		invoices:   byKind,
		jobSheets:  jobSheets,
		customers:  customers,
		quotations: quotations,
		renderer:   renderer,
		storage:    storage,
		email:      email,
		cfg:        cfg,
		log:        log,
	}
}

// DocumentKey is the object key a rendered document is stored under.
func DocumentKey(kind domain.DocumentKind, number string) string {
	return fmt.Sprintf("documents/%s/%s.pdf", kind, number)
}

func docLabel(kind domain.DocumentKind) string {
	switch kind {
	case domain.KindDInvoice:
		return "D-Invoice"
	case domain.KindQuotation:
		return "Quotation"
	}
	return "Invoice"
}

func (s *documentService) DeliverInvoice(ctx context.Context, kind domain.DocumentKind, id uuid.UUID, input DeliverInput) (*domain.DeliveredDocument, error) {
	repo, ok := s.invoices[kind]
	if !ok {
		return nil, domain.ErrNotFound
	}
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	js, err := s.jobSheets.GetByID(ctx, inv.JobSheetID)
	if err != nil {
		return nil, fmt.Errorf("documentService.DeliverInvoice: job sheet: %w", err)
	}
	customer, err := s.customers.GetByID(ctx, js.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("documentService.DeliverInvoice: customer: %w", err)
	}

	pdf, err := s.renderer.RenderInvoice(port.InvoiceView{
		Shop:     s.cfg.Shop,
		Invoice:  *inv,
		JobSheet: *js,
		Customer: *customer,
	})
	if err != nil {
		return nil, fmt.Errorf("documentService.DeliverInvoice: render: %w", err)
	}

	if input.Name == "" {
		input.Name = customer.Name
	}
	return s.deliver(ctx, kind, inv.InvoiceNumber, pdf, input)
}

func (s *documentService) DeliverQuotation(ctx context.Context, id uuid.UUID, input DeliverInput) (*domain.DeliveredDocument, error) {
	q, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pdf, err := s.renderer.RenderQuotation(s.cfg.Shop, *q)
	if err != nil {
		return nil, fmt.Errorf("documentService.DeliverQuotation: render: %w", err)
	}
	if input.Name == "" {
		input.Name = q.CustomerName
	}
	return s.deliver(ctx, domain.KindQuotation, q.QuotationNumber, pdf, input)
}

func (s *documentService) deliver(ctx context.Context, kind domain.DocumentKind, number string, pdf []byte, input DeliverInput) (*domain.DeliveredDocument, error) {
	key := DocumentKey(kind, number)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
		Size:        int64(len(pdf)),
	}); err != nil {
		s.log.Error("documentService.deliver: upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		// Nothing can link to the object; drop it so a retry starts clean.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			s.log.Warn("documentService.deliver: removing unlinked upload", zap.String("key", key), zap.Error(delErr))
		}
		return nil, fmt.Errorf("documentService.deliver: presign: %w", err)
	}

	out := &domain.DeliveredDocument{
		Kind:        kind,
		Number:      number,
		S3Key:       key,
		DownloadURL: url,
	}
	if input.Email == "" {
		return out, nil
	}

	if err := s.email.SendDocumentLink(ctx, port.DocumentEmail{
		ToEmail:     input.Email,
		ToName:      input.Name,
		DocLabel:    docLabel(kind),
		Number:      number,
		DownloadURL: url,
	}); err != nil {
		s.log.Error("documentService.deliver: email failed",
			zap.String("number", number), zap.String("to", input.Email), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrEmailDeliveryFailed, err)
	}
	out.EmailedTo = input.Email
	s.log.Info("documentService.deliver: link emailed",
		zap.String("number", number), zap.String("to", input.Email))
	return out, nil
}
