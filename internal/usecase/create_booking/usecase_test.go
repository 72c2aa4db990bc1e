package create_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
	"github.com/m04kA/SMC-VenueBooking/pkg/tz"
)

var loc = tz.Fixed(8)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = uuid.New()
	r.bookings = append(r.bookings, b)
	return b, nil
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

type fakeCateringRepo struct {
	saved []domain.CateringSelection
}

func (r *fakeCateringRepo) SaveSelection(_ context.Context, sel *domain.CateringSelection) error {
	r.saved = append(r.saved, *sel)
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
	conflicts int
}

func (m *fakeMetrics) RecordConflicts(_, _ string, n int) {
	m.conflicts += n
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	catering  *fakeCateringRepo
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(policy Policy) *fixture {
	f := &fixture{
		bookings:  &fakeBookingRepo{},
		catering:  &fakeCateringRepo{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	deriver := interval.NewDeriver(loc, 4*time.Hour, 10)
	f.uc = NewUseCase(f.bookings, f.catering, f.publisher, f.metrics, fakeTx{}, deriver, policy, logger.Nop())
	f.uc.SetTimeProvider(fixedTime{t: time.Date(2024, time.January, 1, 12, 0, 0, 0, loc)})
	return f
}

var (
	user  = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"), Role: domain.RoleUser}
	admin = domain.Actor{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000cc"), Role: domain.RoleAdmin}
)

func validRequest() *Request {
	return &Request{
		Actor:           user,
		Title:           "Santos Wedding",
		Description:     "Reception for 120 guests",
		Category:        "Wedding",
		Venue:           "Function Hall",
		Date:            "2024-01-10",
		StartTime:       "09:00",
		AdditionalHours: 2,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(Policy{MinLeadDays: 7})

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "function hall", resp.Booking.Venue)
	assert.Equal(t, "PENDING", resp.Booking.Status)
	assert.Equal(t, "09:00", resp.Booking.StartTime)
	assert.Equal(t, "15:00", resp.Booking.EndTime)
	assert.Equal(t, "2024-01-10", resp.Booking.Date)
	assert.Empty(t, resp.Conflicts)
	assert.NotNil(t, resp.Conflicts)

	require.Len(t, f.catering.saved, 1)
	assert.Equal(t, resp.Booking.ID, f.catering.saved[0].BookingID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeCreated, f.publisher.events[0].Type)
}

func TestExecute_ConflictsAreWarnings(t *testing.T) {
	f := newFixture(Policy{MinLeadDays: 7})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	second := validRequest()
	second.StartTime = "14:59"
	second.AdditionalHours = 0
	resp, err := f.uc.Execute(context.Background(), second)
	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, f.bookings.bookings[0].ID, resp.Conflicts[0].ID)
	assert.Equal(t, "Santos Wedding", resp.Conflicts[0].Title, "own booking keeps its title")
	assert.Equal(t, 1, f.metrics.conflicts)

	touching := validRequest()
	touching.StartTime = "15:00"
	touching.AdditionalHours = 0
	resp, err = f.uc.Execute(context.Background(), touching)
	require.NoError(t, err)
	assert.Len(t, resp.Conflicts, 1, "overlaps the 14:59 booking only")

	stranger := validRequest()
	stranger.Actor = domain.Actor{ID: uuid.New(), Role: domain.RoleUser}
	stranger.StartTime = "10:00"
	resp, err = f.uc.Execute(context.Background(), stranger)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Conflicts)
	for _, c := range resp.Conflicts {
		assert.Empty(t, c.Title)
		assert.Nil(t, c.OwnerID)
	}
}

func TestExecute_BlockingPolicy(t *testing.T) {
	f := newFixture(Policy{MinLeadDays: 7, BlockOnConflict: true})

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrConflictDetected)
	assert.Len(t, f.bookings.bookings, 1)
	assert.Len(t, f.publisher.events, 1)
}

func TestExecute_RoleRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"user too soon", func(r *Request) { r.Date = "2024-01-07" }, ErrTooSoon},
		{"user earlier on the seventh day", func(r *Request) { r.Date = "2024-01-08"; r.StartTime = "11:59" }, ErrTooSoon},
		{"user exactly seven days ahead", func(r *Request) { r.Date = "2024-01-08"; r.StartTime = "12:00" }, nil},
		{"admin without organizer", func(r *Request) { r.Actor = admin; r.Date = "2024-01-02" }, ErrOrganizerRequired},
		{"admin blank organizer", func(r *Request) { r.Actor = admin; r.Organizer = ptr.Ptr("  ") }, ErrOrganizerRequired},
		{"admin is exempt from lead time", func(r *Request) {
			r.Actor = admin
			r.Date = "2024-01-02"
			r.Organizer = ptr.Ptr("Events Office")
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Policy{MinLeadDays: 7})
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"missing title", func(r *Request) { r.Title = "" }, ErrInvalidInput},
		{"title too long", func(r *Request) { r.Title = strings.Repeat("a", 51) }, ErrInvalidInput},
		{"category too long", func(r *Request) { r.Category = strings.Repeat("c", 51) }, ErrInvalidInput},
		{"description too long", func(r *Request) { r.Description = strings.Repeat("d", 256) }, ErrInvalidInput},
		{"unknown venue", func(r *Request) { r.Venue = "rooftop" }, ErrUnknownVenue},
		{"bad date", func(r *Request) { r.Date = "2024-02-30" }, ErrInvalidInput},
		{"bad clock", func(r *Request) { r.StartTime = "9am" }, ErrInvalidInput},
		{"signed clock", func(r *Request) { r.StartTime = "+9:00" }, ErrInvalidInput},
		{"negative hours", func(r *Request) { r.AdditionalHours = -1 }, ErrInvalidInput},
		{"hours above cap", func(r *Request) { r.AdditionalHours = 11 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Policy{MinLeadDays: 7})
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.bookings.bookings)
		})
	}

	t.Run("max lengths accepted", func(t *testing.T) {
		f := newFixture(Policy{MinLeadDays: 7})
		req := validRequest()
		req.Title = strings.Repeat("a", 50)
		req.Category = strings.Repeat("c", 50)
		req.Description = strings.Repeat("d", 255)

		_, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}
