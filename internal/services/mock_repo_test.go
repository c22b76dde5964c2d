package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/villastay/internal/models"
	"gorm.io/datatypes"
)

type mockVillasRepo struct {
	findCandidatesFn func(ctx context.Context, location string, guests int) ([]*models.Villa, error)
	createFn         func(ctx context.Context, v *models.Villa) (*models.Villa, error)
	getFn            func(ctx context.Context, id uuid.UUID) (*models.Villa, error)
	listFn           func(ctx context.Context, offset, limit int) ([]*models.Villa, int, error)
	listByOwnerFn    func(ctx context.Context, ownerID uuid.UUID) ([]*models.Villa, error)
	updateFn         func(ctx context.Context, id uuid.UUID, changes *models.Villa, columns []string) (*models.Villa, error)
	setApprovalFn    func(ctx context.Context, id uuid.UUID, approved bool) (*models.Villa, error)
	setActiveFn      func(ctx context.Context, id uuid.UUID, active bool) (*models.Villa, error)
	statsFn          func(ctx context.Context) (*models.Stats, error)
}

var _ models.VillasRepo = (*mockVillasRepo)(nil)

func (m *mockVillasRepo) FindSearchCandidates(ctx context.Context, location string, guests int) ([]*models.Villa, error) {
	if m.findCandidatesFn == nil {
		return nil, nil
	}
	return m.findCandidatesFn(ctx, location, guests)
}

func (m *mockVillasRepo) CreateVilla(ctx context.Context, v *models.Villa) (*models.Villa, error) {
	if m.createFn == nil {
		return v, nil
	}
	return m.createFn(ctx, v)
}

func (m *mockVillasRepo) GetVillaByID(ctx context.Context, id uuid.UUID) (*models.Villa, error) {
	if m.getFn == nil {
		return nil, models.ErrNotFound
	}
	return m.getFn(ctx, id)
}

func (m *mockVillasRepo) ListVillas(ctx context.Context, offset, limit int) ([]*models.Villa, int, error) {
	if m.listFn == nil {
		return nil, 0, nil
	}
	return m.listFn(ctx, offset, limit)
}

func (m *mockVillasRepo) ListVillasByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Villa, error) {
	if m.listByOwnerFn == nil {
		return nil, nil
	}
	return m.listByOwnerFn(ctx, ownerID)
}

func (m *mockVillasRepo) UpdateVilla(ctx context.Context, id uuid.UUID, changes *models.Villa, columns []string) (*models.Villa, error) {
	if m.updateFn == nil {
		return changes, nil
	}
	return m.updateFn(ctx, id, changes, columns)
}

func (m *mockVillasRepo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*models.Villa, error) {
	if m.setApprovalFn == nil {
		return &models.Villa{ID: id, IsApproved: approved}, nil
	}
	return m.setApprovalFn(ctx, id, approved)
}

func (m *mockVillasRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Villa, error) {
	if m.setActiveFn == nil {
		return &models.Villa{ID: id, IsActive: active}, nil
	}
	return m.setActiveFn(ctx, id, active)
}

func (m *mockVillasRepo) Stats(ctx context.Context) (*models.Stats, error) {
	if m.statsFn == nil {
		return &models.Stats{}, nil
	}
	return m.statsFn(ctx)
}

type mockAvailabilityRepo struct {
	bookings []models.Booking
	blocks   []models.UnavailableDate
	err      error
	deleted  []uuid.UUID
}

var _ models.AvailabilityRepo = (*mockAvailabilityRepo)(nil)

func (m *mockAvailabilityRepo) ListOpenBookings(ctx context.Context, villaID uuid.UUID) ([]models.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Booking
	for _, b := range m.bookings {
		if b.VillaID == villaID && b.Status.Holds() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepo) ListUnavailableDates(ctx context.Context, villaID uuid.UUID) ([]models.UnavailableDate, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.UnavailableDate
	for _, u := range m.blocks {
		if u.VillaID == villaID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepo) AddUnavailableDate(ctx context.Context, villaID uuid.UUID, day time.Time, reason string) (*models.UnavailableDate, error) {
	if m.err != nil {
		return nil, m.err
	}
	u := models.UnavailableDate{ID: uuid.New(), VillaID: villaID, Date: datatypes.Date(day), Reason: reason}
	m.blocks = append(m.blocks, u)
	return &u, nil
}

func (m *mockAvailabilityRepo) DeleteUnavailableDates(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.deleted = append(m.deleted, ids...)
	return int64(len(ids)), nil
}

type mockUserRepo struct {
	upserted  []*models.User
	err       error
	setRoleFn func(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
}

var _ models.UserRepo = (*mockUserRepo)(nil)

func (m *mockUserRepo) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.upserted = append(m.upserted, u)
	return u, nil
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	for _, u := range m.upserted {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *mockUserRepo) SetUserRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if m.setRoleFn == nil {
		return nil, models.ErrNotFound
	}
	return m.setRoleFn(ctx, id, role)
}

type mockLocationsRepo struct {
	locations []*models.Location
}

var _ models.LocationsRepo = (*mockLocationsRepo)(nil)

func (m *mockLocationsRepo) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return m.locations, nil
}

func (m *mockLocationsRepo) CreateLocation(ctx context.Context, l *models.Location) (*models.Location, error) {
	for _, existing := range m.locations {
		if strings.EqualFold(existing.Name, l.Name) {
			return nil, models.ErrDuplicate
		}
	}
	l.ID = uuid.New()
	m.locations = append(m.locations, l)
	return l, nil
}

var errBoom = errors.New("connection refused")

// --- fixtures ---

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func price(v float64) *float64 { return &v }

func booking(villaID uuid.UUID, in, out string, status models.BookingStatus) models.Booking {
	return models.Booking{
		ID:       uuid.New(),
		VillaID:  villaID,
		CheckIn:  datatypes.Date(day(in)),
		CheckOut: datatypes.Date(day(out)),
		Status:   status,
	}
}

func block(villaID uuid.UUID, on string) models.UnavailableDate {
	return models.UnavailableDate{ID: uuid.New(), VillaID: villaID, Date: datatypes.Date(day(on)), Reason: "Maintenance"}
}

func openVilla(name, location string, maxGuests int, base float64) *models.Villa {
	return &models.Villa{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Name:          name,
		Location:      location,
		MaxGuests:     maxGuests,
		PricePerNight: base,
		IsApproved:    true,
		IsActive:      true,
	}
}
