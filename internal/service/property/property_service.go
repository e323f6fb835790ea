package property

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/Domenick1991/saraye/internal/pricing"
	"github.com/Domenick1991/saraye/internal/repository"
	"github.com/Domenick1991/saraye/internal/validation"
	"github.com/sirupsen/logrus"
)

type PropertyUseCase interface {
	CreateProperty(ctx context.Context, actor *domain.User, input PropertyInput) (*domain.Property, error)
	UpdateProperty(ctx context.Context, actor *domain.User, id string, input PropertyInput) (*domain.Property, error)
	DeactivateProperty(ctx context.Context, actor *domain.User, id string) error
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	SearchProperties(ctx context.Context, input SearchInput) ([]domain.Property, error)
	ListHostProperties(ctx context.Context, actor *domain.User) ([]domain.Property, error)
	ListAmenities(ctx context.Context) ([]domain.Amenity, error)
}

type PropertyCache interface {
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	SetProperty(ctx context.Context, property *domain.Property) error
	InvalidateProperty(ctx context.Context, id string) error
}

type PropertyService struct {
	repo     repository.PropertyRepository
	cache    PropertyCache
	validate *validation.Validator
	log      logrus.FieldLogger
}

type PropertyInput struct {
	Title       string   `json:"title" validate:"notblank,max=200"`
	Description string   `json:"description" validate:"max=4000"`
	PriceCents  int64    `json:"price_cents" validate:"gt=0"`
	MaxGuests   int      `json:"max_guests" validate:"gt=0"`
	Bedrooms    int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms   int      `json:"bathrooms" validate:"gte=0"`
	Street      string   `json:"street"`
	City        string   `json:"city" validate:"notblank"`
	Country     string   `json:"country"`
	ZipCode     string   `json:"zip_code"`
	Amenities   []string `json:"amenities"`
}

type SearchInput struct {
	City     string `form:"city"`
	CheckIn  string `form:"check_in"`
	CheckOut string `form:"check_out"`
	Guests   int    `form:"guests"`
}

// NewPropertyService accepts a nil cache; reads then always hit the database.
func NewPropertyService(repo repository.PropertyRepository, cache PropertyCache, log logrus.FieldLogger) *PropertyService {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &PropertyService{repo: repo, cache: cache, validate: validation.New(), log: log}
}

func (s *PropertyService) CreateProperty(ctx context.Context, actor *domain.User, input PropertyInput) (*domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	property := input.toProperty()
	property.HostID = actor.ID
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, actor *domain.User, id string, input PropertyInput) (*domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Active {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, id)
	}
	if current.HostID != actor.ID {
		return nil, fmt.Errorf("%w: property %s belongs to another host", domain.ErrUnauthorized, id)
	}

	updated := input.toProperty()
	updated.ID = current.ID
	updated.HostID = current.HostID
	updated.Active = current.Active
	updated.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *PropertyService) DeactivateProperty(ctx context.Context, actor *domain.User, id string) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleHost:
		if current.HostID != actor.ID {
			return fmt.Errorf("%w: property %s belongs to another host", domain.ErrUnauthorized, id)
		}
	case domain.RoleGuest:
		return fmt.Errorf("%w: guests cannot remove listings", domain.ErrUnauthorized)
	default:
		return fmt.Errorf("%w: unknown role %q", domain.ErrUnauthorized, actor.Role)
	}

	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// GetProperty reads through the cache. Cache failures are logged and fall
// back to the database.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProperty(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("property_id", id).Warn("property cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, fmt.Errorf("%w: property %s", domain.ErrNotFound, id)
	}
	if s.cache != nil {
		if err := s.cache.SetProperty(ctx, property); err != nil {
			s.log.WithError(err).WithField("property_id", id).Warn("property cache write failed")
		}
	}
	return property, nil
}

func (s *PropertyService) SearchProperties(ctx context.Context, input SearchInput) ([]domain.Property, error) {
	if input.Guests < 0 {
		return nil, fmt.Errorf("%w: guests cannot be negative", domain.ErrInvalidInput)
	}
	filter := domain.PropertyFilter{City: strings.TrimSpace(input.City), MinGuests: input.Guests}

	hasIn, hasOut := strings.TrimSpace(input.CheckIn) != "", strings.TrimSpace(input.CheckOut) != ""
	switch {
	case hasIn && hasOut:
		checkIn, err := pricing.ParseDate(input.CheckIn)
		if err != nil {
			return nil, err
		}
		checkOut, err := pricing.ParseDate(input.CheckOut)
		if err != nil {
			return nil, err
		}
		if _, err := pricing.ValidateStay(checkIn, checkOut); err != nil {
			return nil, err
		}
		filter.CheckIn, filter.CheckOut = &checkIn, &checkOut
	case hasIn || hasOut:
		return nil, fmt.Errorf("%w: check_in and check_out must be given together", domain.ErrInvalidInput)
	}

	return s.repo.Search(ctx, filter)
}

func (s *PropertyService) ListHostProperties(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	if err := domain.RequireRole(actor, domain.RoleHost); err != nil {
		return nil, err
	}
	return s.repo.ListByHost(ctx, actor.ID)
}

func (s *PropertyService) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	return s.repo.ListAmenities(ctx)
}

func (s *PropertyService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProperty(ctx, id); err != nil {
		s.log.WithError(err).WithField("property_id", id).Warn("property cache invalidation failed")
	}
}

func (in PropertyInput) toProperty() *domain.Property {
	return &domain.Property{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		MaxGuests:   in.MaxGuests,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Address: domain.Address{
			Street:  in.Street,
			City:    strings.TrimSpace(in.City),
			Country: in.Country,
			ZipCode: in.ZipCode,
		},
		Amenities: in.Amenities,
	}
}

var _ PropertyUseCase = (*PropertyService)(nil)
