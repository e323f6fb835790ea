package property

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/saraye/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) SetActive(ctx context.Context, id string, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByHost(ctx context.Context, hostID string) ([]domain.Property, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Search(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Amenity), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockCache) SetProperty(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockCache) InvalidateProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	host      = &domain.User{ID: "H001", Role: domain.RoleHost}
	otherHost = &domain.User{ID: "H002", Role: domain.RoleHost}
	guest     = &domain.User{ID: "G001", Role: domain.RoleGuest}
	admin     = &domain.User{ID: "A001", Role: domain.RoleAdmin}
)

func validInput() PropertyInput {
	return PropertyInput{
		Title:      "Sea View Villa",
		PriceCents: 15000,
		MaxGuests:  4,
		Bedrooms:   2,
		Bathrooms:  1,
		City:       "Karachi",
		Amenities:  []string{"WiFi", "Pool"},
	}
}

func stored() *domain.Property {
	return &domain.Property{ID: "P001", HostID: "H001", Title: "Villa", Active: true, Address: domain.Address{City: "Karachi"}}
}

func TestPropertyService_CreateProperty(t *testing.T) {
	repo := &MockPropertyRepository{}
	service := NewPropertyService(repo, nil, nil)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
		return p.HostID == "H001" && p.Address.City == "Karachi" && len(p.Amenities) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Property).ID = "P001"
	}).Return(nil).Once()

	p, err := service.CreateProperty(ctx, host, validInput())

	require.NoError(t, err)
	assert.Equal(t, "P001", p.ID)
	repo.AssertExpectations(t)
}

func TestPropertyService_CreateProperty_Rejections(t *testing.T) {
	noTitle := validInput()
	noTitle.Title = " "
	freePrice := validInput()
	freePrice.PriceCents = 0
	noGuests := validInput()
	noGuests.MaxGuests = 0
	negativeRooms := validInput()
	negativeRooms.Bedrooms = -1
	noCity := validInput()
	noCity.City = ""

	testCases := []struct {
		name    string
		actor   *domain.User
		input   PropertyInput
		wantErr error
	}{
		{"anonymous", nil, validInput(), domain.ErrUnauthenticated},
		{"guest", guest, validInput(), domain.ErrUnauthorized},
		{"no title", host, noTitle, domain.ErrInvalidInput},
		{"zero price", host, freePrice, domain.ErrInvalidInput},
		{"zero capacity", host, noGuests, domain.ErrInvalidInput},
		{"negative bedrooms", host, negativeRooms, domain.ErrInvalidInput},
		{"no city", host, noCity, domain.ErrInvalidInput},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockPropertyRepository{}
			service := NewPropertyService(repo, nil, nil)

			_, err := service.CreateProperty(context.Background(), tc.actor, tc.input)

			assert.ErrorIs(t, err, tc.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPropertyService_UpdateProperty(t *testing.T) {
	repo := &MockPropertyRepository{}
	cache := &MockCache{}
	service := NewPropertyService(repo, cache, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, "P001").Return(stored(), nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *domain.Property) bool {
		return p.ID == "P001" && p.HostID == "H001" && p.PriceCents == 15000
	})).Return(nil).Once()
	cache.On("InvalidateProperty", ctx, "P001").Return(nil).Once()

	p, err := service.UpdateProperty(ctx, host, "P001", validInput())
	require.NoError(t, err)
	assert.Equal(t, "Sea View Villa", p.Title)
	cache.AssertExpectations(t)

	_, err = service.UpdateProperty(ctx, otherHost, "P001", validInput())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestPropertyService_DeactivateProperty(t *testing.T) {
	testCases := []struct {
		name    string
		actor   *domain.User
		wantErr error
	}{
		{"owner", host, nil},
		{"admin", admin, nil},
		{"other host", otherHost, domain.ErrUnauthorized},
		{"guest", guest, domain.ErrUnauthorized},
		{"anonymous", nil, domain.ErrUnauthenticated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockPropertyRepository{}
			cache := &MockCache{}
			service := NewPropertyService(repo, cache, nil)
			ctx := context.Background()

			repo.On("GetByID", ctx, "P001").Return(stored(), nil)
			repo.On("SetActive", ctx, "P001", false).Return(nil).Maybe()
			cache.On("InvalidateProperty", ctx, "P001").Return(nil).Maybe()

			err := service.DeactivateProperty(ctx, tc.actor, "P001")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				repo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			repo.AssertCalled(t, "SetActive", ctx, "P001", false)
			cache.AssertCalled(t, "InvalidateProperty", ctx, "P001")
		})
	}
}

func TestPropertyService_GetProperty_CacheHit(t *testing.T) {
	repo := &MockPropertyRepository{}
	cache := &MockCache{}
	service := NewPropertyService(repo, cache, nil)
	ctx := context.Background()

	cache.On("GetProperty", ctx, "P001").Return(stored(), nil).Once()

	p, err := service.GetProperty(ctx, "P001")

	require.NoError(t, err)
	assert.Equal(t, "P001", p.ID)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPropertyService_GetProperty_CacheMissAndFailure(t *testing.T) {
	for name, cacheErr := range map[string]error{"miss": nil, "redis down": errors.New("redis down")} {
		t.Run(name, func(t *testing.T) {
			repo := &MockPropertyRepository{}
			cache := &MockCache{}
			service := NewPropertyService(repo, cache, nil)
			ctx := context.Background()

			cache.On("GetProperty", ctx, "P001").Return(nil, cacheErr).Once()
			repo.On("GetByID", ctx, "P001").Return(stored(), nil).Once()
			cache.On("SetProperty", ctx, mock.Anything).Return(errors.New("ignored")).Once()

			p, err := service.GetProperty(ctx, "P001")

			require.NoError(t, err)
			assert.Equal(t, "P001", p.ID)
			cache.AssertExpectations(t)
		})
	}
}

func TestPropertyService_GetProperty_Inactive(t *testing.T) {
	repo := &MockPropertyRepository{}
	service := NewPropertyService(repo, nil, nil)
	ctx := context.Background()

	inactive := stored()
	inactive.Active = false
	repo.On("GetByID", ctx, "P001").Return(inactive, nil)

	_, err := service.GetProperty(ctx, "P001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPropertyService_SearchProperties(t *testing.T) {
	repo := &MockPropertyRepository{}
	service := NewPropertyService(repo, nil, nil)
	ctx := context.Background()

	in := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	out := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)
	repo.On("Search", ctx, domain.PropertyFilter{City: "Lahore", MinGuests: 2, CheckIn: &in, CheckOut: &out}).
		Return([]domain.Property{*stored()}, nil).Once()
	repo.On("Search", ctx, domain.PropertyFilter{City: "", MinGuests: 0}).Return([]domain.Property{}, nil).Once()

	found, err := service.SearchProperties(ctx, SearchInput{City: " Lahore ", CheckIn: "2025-12-01", CheckOut: "2025-12-05", Guests: 2})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	all, err := service.SearchProperties(ctx, SearchInput{})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = service.SearchProperties(ctx, SearchInput{CheckIn: "2025-12-05", CheckOut: "2025-12-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = service.SearchProperties(ctx, SearchInput{CheckIn: "2025-12-05"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.SearchProperties(ctx, SearchInput{Guests: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertExpectations(t)
}

func TestPropertyService_Lists(t *testing.T) {
	repo := &MockPropertyRepository{}
	service := NewPropertyService(repo, nil, nil)
	ctx := context.Background()

	repo.On("ListByHost", ctx, "H001").Return([]domain.Property{*stored()}, nil)
	repo.On("ListAmenities", ctx).Return([]domain.Amenity{{ID: 1, Name: "WiFi"}}, nil)

	mine, err := service.ListHostProperties(ctx, host)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = service.ListHostProperties(ctx, guest)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	amenities, err := service.ListAmenities(ctx)
	require.NoError(t, err)
	assert.Equal(t, "WiFi", amenities[0].Name)
}
