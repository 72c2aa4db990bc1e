package catering

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	cateringRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type fakeBookings map[uuid.UUID]*domain.Booking

func (f fakeBookings) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

type fakeCatering struct {
	dishes     []domain.Dish
	packages   []domain.MainDishPackage
	selections map[uuid.UUID]domain.CateringSelection
	saves      int
}

func (f *fakeCatering) ListDishes(_ context.Context, dishType string) ([]domain.Dish, error) {
	out := make([]domain.Dish, 0)
	for _, d := range f.dishes {
		if dishType == "" || d.DishType == dishType {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeCatering) GetDish(_ context.Context, id string) (*domain.Dish, error) {
	for _, d := range f.dishes {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, cateringRepo.ErrDishNotFound
}

func (f *fakeCatering) ListPackages(context.Context) ([]domain.MainDishPackage, error) {
	return f.packages, nil
}

func (f *fakeCatering) GetPackage(_ context.Context, id string) (*domain.MainDishPackage, error) {
	for _, p := range f.packages {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, cateringRepo.ErrPackageNotFound
}

func (f *fakeCatering) GetSelection(_ context.Context, bookingID uuid.UUID) (*domain.CateringSelection, error) {
	sel, ok := f.selections[bookingID]
	if !ok {
		return nil, cateringRepo.ErrSelectionNotFound
	}
	sel.SelectedDishes = append([]string(nil), sel.SelectedDishes...)
	return &sel, nil
}

func (f *fakeCatering) SaveSelection(_ context.Context, sel *domain.CateringSelection) error {
	f.saves++
	f.selections[sel.BookingID] = *sel
	return nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	outcomes []string
}

func (m *fakeMetrics) RecordDishToggle(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

var (
	owner = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), Role: domain.RoleUser}
	other = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000bb"), Role: domain.RoleUser}
	admin = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000cc"), Role: domain.RoleAdmin}
)

func catalog() []domain.Dish {
	return []domain.Dish{
		{ID: "d1", Name: "Adobo", Category: "Chicken", DishType: domain.DishTypeMain},
		{ID: "d2", Name: "Lechon", Category: "Pork", DishType: domain.DishTypeMain},
		{ID: "d3", Name: "Tinola", Category: "Chicken", DishType: domain.DishTypeMain},
		{ID: "d4", Name: "Menudo", Category: "Pork", DishType: domain.DishTypeMain},
		{ID: "x1", Name: "Leche Flan", Category: "Dessert", DishType: "DESSERT"},
	}
}

type fixture struct {
	svc      *Service
	catering *fakeCatering
	metrics  *fakeMetrics
	booking  *domain.Booking
}

func newFixture(status domain.BookingStatus) *fixture {
	start := time.Date(2024, time.August, 10, 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:       uuid.New(),
		OwnerID:  owner.ID,
		Venue:    domain.VenueFunctionHall,
		Interval: domain.Interval{Start: start, End: start.Add(4 * time.Hour)},
		Status:   status,
	}

	c := &fakeCatering{
		dishes: catalog(),
		packages: []domain.MainDishPackage{
			{ID: "small", NumOfDishes: 2, MinPax: 10, MaxPax: 50},
			{ID: "grand", NumOfDishes: 5, MinPax: 50},
		},
		selections: map[uuid.UUID]domain.CateringSelection{},
	}
	m := &fakeMetrics{}

	return &fixture{
		svc:      NewService(fakeBookings{b.ID: b}, c, fakeTx{}, m, 3, logger.Nop()),
		catering: c,
		metrics:  m,
		booking:  b,
	}
}

func TestService_ListMenu(t *testing.T) {
	f := newFixture(domain.StatusPending)

	menu, err := f.svc.ListMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu.Categories, 2)
	assert.Equal(t, "Chicken", menu.Categories[0].Category)
	assert.Equal(t, "d1", menu.Categories[0].Dishes[0].ID)
	assert.Equal(t, "d3", menu.Categories[0].Dishes[1].ID)
	assert.Equal(t, "Pork", menu.Categories[1].Category)
}

func TestService_ToggleDish_DefaultCap(t *testing.T) {
	f := newFixture(domain.StatusPending)
	ctx := context.Background()

	for _, id := range []string{"d1", "d2", "d3"} {
		_, err := f.svc.ToggleDish(ctx, f.booking.ID, id, owner)
		require.NoError(t, err)
	}

	_, err := f.svc.ToggleDish(ctx, f.booking.ID, "d4", owner)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, []string{"d1", "d2", "d3"}, f.catering.selections[f.booking.ID].SelectedDishes)

	resp, err := f.svc.ToggleDish(ctx, f.booking.ID, "d2", owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d3"}, resp.SelectedDishes)
	assert.Equal(t, 1, resp.Remaining)

	resp, err = f.svc.ToggleDish(ctx, f.booking.ID, "d4", owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d3", "d4"}, resp.SelectedDishes)
	assert.Equal(t, 3, resp.MaxDishes)

	assert.Equal(t, []string{"added", "added", "added", "rejected", "removed", "added"}, f.metrics.outcomes)
}

func TestService_ToggleDish_Errors(t *testing.T) {
	ctx := context.Background()

	f := newFixture(domain.StatusPending)
	_, err := f.svc.ToggleDish(ctx, f.booking.ID, "x1", owner)
	assert.ErrorIs(t, err, ErrNotMainDish)

	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "nope", owner)
	assert.ErrorIs(t, err, ErrDishNotFound)

	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "d1", other)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.ToggleDish(ctx, uuid.New(), "d1", owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "", owner)
	assert.ErrorIs(t, err, ErrInvalidInput)

	completed := newFixture(domain.StatusCompleted)
	_, err = completed.svc.ToggleDish(ctx, completed.booking.ID, "d1", owner)
	assert.ErrorIs(t, err, ErrCateringLocked)
	assert.Zero(t, completed.catering.saves)
}

func TestService_SelectPackage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(domain.StatusApproved)

	_, err := f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "small", ExpectedPax: 100})
	require.ErrorIs(t, err, ErrPaxOutOfRange)

	_, err = f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "missing", ExpectedPax: 20})
	require.ErrorIs(t, err, ErrPackageNotFound)

	resp, err := f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "small", ExpectedPax: 20})
	require.NoError(t, err)
	require.NotNil(t, resp.PackageID)
	assert.Equal(t, "small", *resp.PackageID)
	assert.Equal(t, 2, resp.MaxDishes)

	for _, id := range []string{"d1", "d2"} {
		_, err := f.svc.ToggleDish(ctx, f.booking.ID, id, owner)
		require.NoError(t, err)
	}
	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "d3", owner)
	require.ErrorIs(t, err, ErrCapacityExceeded, "package cap replaces the default cap")

	resp, err = f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "grand", ExpectedPax: 120})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Remaining)
}

func TestService_SelectPackage_SelectionTooLarge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(domain.StatusPending)

	for _, id := range []string{"d1", "d2", "d3"} {
		_, err := f.svc.ToggleDish(ctx, f.booking.ID, id, owner)
		require.NoError(t, err)
	}

	_, err := f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "small", ExpectedPax: 20})
	require.ErrorIs(t, err, ErrSelectionExceedsPackage)
}

func TestService_GetSelection(t *testing.T) {
	f := newFixture(domain.StatusCompleted)

	resp, err := f.svc.GetSelection(context.Background(), f.booking.ID, owner)
	require.NoError(t, err)
	assert.Empty(t, resp.SelectedDishes)
	assert.NotNil(t, resp.SelectedDishes)
	assert.Equal(t, 3, resp.Remaining)
	assert.False(t, resp.Editable)
}

func TestService_DeletedBookingHiddenFromOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(domain.StatusPending)
	deletedAt := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)
	f.booking.DeletedAt = &deletedAt

	_, err := f.svc.GetSelection(ctx, f.booking.ID, owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "d1", owner)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.SelectPackage(ctx, f.booking.ID, owner, &models.SelectPackageRequest{PackageID: "small", ExpectedPax: 20})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	resp, err := f.svc.GetSelection(ctx, f.booking.ID, admin)
	require.NoError(t, err)
	assert.False(t, resp.Editable)

	_, err = f.svc.ToggleDish(ctx, f.booking.ID, "d1", admin)
	assert.ErrorIs(t, err, ErrCateringLocked)
	assert.Zero(t, f.catering.saves)
}
