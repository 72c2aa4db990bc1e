package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
	"github.com/m04kA/SMC-VenueBooking/pkg/tz"
)

var loc = tz.Fixed(8)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*domain.Booking
	updates  int
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetActiveByVenue(_ context.Context, venue domain.Venue, iv domain.Interval) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.IsActive() && b.Venue.SameAs(venue) && b.Interval.Overlaps(iv) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateDetails(_ context.Context, b *domain.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	r.updates++
	return nil
}

type fakePublisher struct {
	events []events.BookingEvent
}

func (p *fakePublisher) Publish(_ context.Context, e events.BookingEvent) error {
	p.events = append(p.events, e)
	return nil
}

type fakeMetrics struct {
	operations []string
}

func (m *fakeMetrics) RecordConflicts(_, operation string, _ int) {
	m.operations = append(m.operations, operation)
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	owner = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), Role: domain.RoleUser}
	other = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000bb"), Role: domain.RoleUser}
	admin = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000cc"), Role: domain.RoleAdmin}
)

func at(day, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 0, 0, 0, loc)
}

func mkBooking(ownerID uuid.UUID, title string, day, from, to int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: "Description",
		Category:    "Party",
		Venue:       domain.VenueFunctionHall,
		Interval:    domain.Interval{Start: at(day, from), End: at(day, to)},
		Status:      status,
	}
}

type fixture struct {
	uc        *UseCase
	repo      *fakeBookingRepo
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(policy Policy, existing ...*domain.Booking) *fixture {
	f := &fixture{
		repo:      &fakeBookingRepo{bookings: make(map[uuid.UUID]*domain.Booking)},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	for _, b := range existing {
		f.repo.bookings[b.ID] = b
	}
	f.uc = NewUseCase(f.repo, f.publisher, f.metrics, fakeTx{}, interval.NewDeriver(loc, 4*time.Hour, 10), policy, logger.Nop())
	f.uc.SetTimeProvider(fixedTime{t: at(1, 12)})
	return f
}

func requestFor(b *domain.Booking, actor domain.Actor) *Request {
	return &Request{
		BookingID:       b.ID,
		Actor:           actor,
		Title:           b.Title,
		Description:     b.Description,
		Category:        b.Category,
		Venue:           "Function Hall",
		Date:            b.Interval.Start.Format(domain.DateFormat),
		StartTime:       b.Interval.Start.Format(domain.TimeFormat),
		AdditionalHours: 0,
	}
}

func TestExecute_Reschedule(t *testing.T) {
	mine := mkBooking(owner.ID, "Birthday", 10, 9, 13, domain.StatusPending)
	f := newFixture(Policy{MinLeadDays: 7}, mine)

	req := requestFor(mine, owner)
	req.Title = "Birthday Dinner"
	req.Date = "2024-01-12"
	req.StartTime = "17:00"
	req.AdditionalHours = 2

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Birthday Dinner", resp.Booking.Title)
	assert.Equal(t, "2024-01-12", resp.Booking.Date)
	assert.Equal(t, "17:00", resp.Booking.StartTime)
	assert.Equal(t, "23:00", resp.Booking.EndTime)
	assert.Equal(t, "PENDING", resp.Booking.Status, "editing never changes status")
	assert.Empty(t, resp.Conflicts)

	stored := f.repo.bookings[mine.ID]
	assert.Equal(t, at(12, 17), stored.Interval.Start)
	assert.Equal(t, 2, stored.AdditionalHours)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeUpdated, f.publisher.events[0].Type)
	assert.Equal(t, []string{"update"}, f.metrics.operations)
}

func TestExecute_DoesNotConflictWithItself(t *testing.T) {
	mine := mkBooking(owner.ID, "Birthday", 10, 9, 13, domain.StatusPending)
	f := newFixture(Policy{MinLeadDays: 7, BlockOnConflict: true}, mine)

	req := requestFor(mine, owner)
	req.StartTime = "10:00"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Conflicts)
	assert.Equal(t, 1, f.repo.updates)
}

func TestExecute_ConflictPolicy(t *testing.T) {
	t.Run("warnings are reduced for other users' bookings", func(t *testing.T) {
		mine := mkBooking(owner.ID, "Birthday", 10, 9, 13, domain.StatusPending)
		theirs := mkBooking(other.ID, "Secret Meeting", 10, 14, 18, domain.StatusApproved)
		f := newFixture(Policy{MinLeadDays: 7}, mine, theirs)

		req := requestFor(mine, owner)
		req.StartTime = "12:00"

		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, theirs.ID, resp.Conflicts[0].ID)
		assert.Empty(t, resp.Conflicts[0].Title)
		assert.Nil(t, resp.Conflicts[0].OwnerID)
	})

	t.Run("blocking policy", func(t *testing.T) {
		mine := mkBooking(owner.ID, "Birthday", 10, 9, 13, domain.StatusPending)
		theirs := mkBooking(other.ID, "Meeting", 10, 14, 18, domain.StatusPending)
		f := newFixture(Policy{MinLeadDays: 7, BlockOnConflict: true}, mine, theirs)

		req := requestFor(mine, owner)
		req.StartTime = "12:00"

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrConflictDetected)
		assert.Zero(t, f.repo.updates)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("approved booking cannot move onto another approved booking", func(t *testing.T) {
		approved := mkBooking(owner.ID, "Gala", 10, 9, 13, domain.StatusApproved)
		theirs := mkBooking(other.ID, "Meeting", 10, 14, 18, domain.StatusApproved)
		pending := mkBooking(other.ID, "Tentative", 11, 9, 13, domain.StatusPending)
		f := newFixture(Policy{MinLeadDays: 7, BlockApprovedOverlap: true}, approved, theirs, pending)

		req := requestFor(approved, admin)
		req.Organizer = ptr.Ptr("Events Office")
		req.StartTime = "12:00"
		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrConflictDetected)

		req.Date = "2024-01-11"
		req.StartTime = "10:00"
		resp, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err, "pending overlap is only a warning")
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, "Tentative", resp.Conflicts[0].Title, "admins see full details")
	})
}

func TestExecute_Refusals(t *testing.T) {
	deletedAt := at(2, 9)

	tests := []struct {
		name    string
		booking *domain.Booking
		actor   domain.Actor
		mutate  func(r *Request)
		wantErr error
	}{
		{
			name:    "deleted booking hidden from owner",
			booking: &domain.Booking{ID: uuid.New(), OwnerID: owner.ID, Title: "x", Description: "x", Category: "x", Venue: domain.VenueFunctionHall, Interval: domain.Interval{Start: at(10, 9), End: at(10, 13)}, Status: domain.StatusPending, DeletedAt: &deletedAt},
			actor:   owner,
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "deleted booking frozen for admin",
			booking: &domain.Booking{ID: uuid.New(), OwnerID: owner.ID, Title: "x", Description: "x", Category: "x", Venue: domain.VenueFunctionHall, Interval: domain.Interval{Start: at(10, 9), End: at(10, 13)}, Status: domain.StatusPending, DeletedAt: &deletedAt},
			actor:   admin,
			mutate:  func(r *Request) { r.Organizer = ptr.Ptr("Office") },
			wantErr: ErrAlreadyDeleted,
		},
		{"someone else's booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), other, nil, ErrAccessDenied},
		{"completed booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusCompleted), admin, func(r *Request) { r.Organizer = ptr.Ptr("Office") }, ErrNotEditable},
		{"rejected booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusRejected), owner, nil, ErrNotEditable},
		{"cancelled booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusCancelled), owner, nil, ErrNotEditable},
		{"owner edits approved booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusApproved), owner, nil, ErrNotEditable},
		{"owner moves too close", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.Date = "2024-01-05" }, ErrTooSoon},
		{"admin without organizer", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), admin, nil, ErrOrganizerRequired},
		{"unknown venue", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.Venue = "rooftop" }, ErrUnknownVenue},
		{"signed clock", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.StartTime = "+9:00" }, ErrInvalidInput},
		{"missing title", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.Title = "" }, ErrInvalidInput},
		{"hours above cap", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.AdditionalHours = 11 }, ErrInvalidInput},
		{"unknown booking", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.BookingID = uuid.New() }, ErrBookingNotFound},
		{"nil booking id", mkBooking(owner.ID, "x", 10, 9, 13, domain.StatusPending), owner, func(r *Request) { r.BookingID = uuid.Nil }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Policy{MinLeadDays: 7}, tt.booking)
			req := requestFor(tt.booking, tt.actor)
			if tt.mutate != nil {
				tt.mutate(req)
			}

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.repo.updates)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_LeadTimeOnlyWhenRescheduled(t *testing.T) {
	soon := mkBooking(owner.ID, "Brunch", 3, 9, 13, domain.StatusPending)
	f := newFixture(Policy{MinLeadDays: 7}, soon)

	req := requestFor(soon, owner)
	req.Title = "Late Brunch"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err, "keeping the same interval is allowed inside the lead time")
	assert.Equal(t, "Late Brunch", resp.Booking.Title)

	req.StartTime = "10:00"
	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTooSoon)
}
