package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/ids"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/sirupsen/logrus"
)

type ReportUseCase interface {
	CreateReport(ctx context.Context, actor *domain.User, input ReportInput) (*domain.Report, error)
	ListOpenReports(ctx context.Context, actor *domain.User) ([]domain.Report, error)
	ResolveReport(ctx context.Context, actor *domain.User, reportID, action string) (*domain.Report, error)
}

type PropertyLookup interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

// CacheInvalidator drops a removed listing from the property cache.
type CacheInvalidator interface {
	InvalidateProperty(ctx context.Context, id string) error
}

type ReportInput struct {
	PropertyID  string `json:"property_id"`
	Description string `json:"description"`
}

type ReportService struct {
	reports    repository.ReportRepository
	properties PropertyLookup
	cache      CacheInvalidator
	ids        *ids.Generator
	log        logrus.FieldLogger
}

// NewReportService accepts a nil cache and a nil logger.
func NewReportService(reports repository.ReportRepository, properties PropertyLookup, cache CacheInvalidator, gen *ids.Generator, log logrus.FieldLogger) *ReportService {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &ReportService{reports: reports, properties: properties, cache: cache, ids: gen, log: log}
}

func (s *ReportService) CreateReport(ctx context.Context, actor *domain.User, input ReportInput) (*domain.Report, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	}
	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, input.PropertyID)
	}

	id, err := s.ids.Next(ctx, ids.PrefixReport)
	if err != nil {
		return nil, err
	}
	report := &domain.Report{
		ID:          id,
		PropertyID:  input.PropertyID,
		ReporterID:  actor.ID,
		Description: description,
		Status:      domain.ReportStatusOpen,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ListOpenReports(ctx context.Context, actor *domain.User) ([]domain.Report, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.reports.ListByStatus(ctx, domain.ReportStatusOpen)
}

func (s *ReportService) ResolveReport(ctx context.Context, actor *domain.User, reportID, action string) (*domain.Report, error) {
	if err := domain.RequireRole(actor, domain.RoleAdmin); err != nil {
		return nil, err
	}
	moderation, err := domain.ParseModerationAction(action)
	if err != nil {
		return nil, err
	}

	resolved, err := s.reports.Resolve(ctx, reportID, moderation)
	if err != nil {
		return nil, err
	}
	if moderation == domain.ModerationRemoveListing && s.cache != nil {
		// Best effort: the entry also expires with its TTL.
		if err := s.cache.InvalidateProperty(ctx, resolved.PropertyID); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"property_id": resolved.PropertyID,
				"report_id":   resolved.ID,
			}).Warn("failed to invalidate property cache")
		}
	}
	return resolved, nil
}

var _ ReportUseCase = (*ReportService)(nil)
