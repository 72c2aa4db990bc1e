package update_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/core/conflict"
	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/core/lifecycle"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// UseCase use case для изменения и переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
	deriver      *interval.Deriver
	policy       Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	deriver *interval.Deriver,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		deriver:      deriver,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет источник времени (для тестирования)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute выполняет изменение бронирования
// В сериализуемой транзакции: бронирование читается с блокировкой, интервал вычисляется заново,
// конфликты ищутся без учета самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%s user=%s role=%s venue=%s date=%s time=%s hours=%d",
		req.BookingID, req.Actor.ID, req.Actor.Role, req.Venue, req.Date, req.StartTime, req.AdditionalHours)

	// 1. Валидация входных данных
	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	venue, err := domain.ParseVenue(req.Venue)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVenue, req.Venue)
	}

	// 2. Вычисляем новый интервал
	iv, err := uc.deriver.Derive(req.Date, req.StartTime, req.AdditionalHours)
	if err != nil {
		uc.logger.Warn("UpdateBooking: interval derivation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		updated   domain.Booking
		conflicts []*domain.Booking
	)

	// 3. Проверки и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}

		if err := validateRole(req, current.Interval, iv, uc.timeProvider.Now(), uc.policy.MinLeadDays); err != nil {
			uc.logger.Warn("UpdateBooking: role rules failed for user=%s: %v", req.Actor.ID, err)
			return err
		}

		existing, err := uc.bookingRepo.GetActiveByVenue(txCtx, venue, iv)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings for venue=%s: %v", venue, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflicts = conflict.FindConflicts(conflict.Candidate{Venue: venue, Interval: iv, ExcludeID: &current.ID}, existing)
		uc.metrics.RecordConflicts(venue.String(), "update", len(conflicts))

		if err := uc.applyPolicy(current, conflicts); err != nil {
			return err
		}

		updated = *current
		updated.Title = req.Title
		updated.Description = req.Description
		updated.Category = req.Category
		updated.Organizer = req.Organizer
		updated.AdditionalNotes = req.AdditionalNotes
		updated.Venue = venue
		updated.Interval = iv
		updated.AdditionalHours = req.AdditionalHours

		if err := uc.bookingRepo.UpdateDetails(txCtx, &updated); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: booking id=%s updated, %d conflicts", updated.ID, len(conflicts))

	// 4. Публикуем событие после коммита
	event := events.NewBookingEvent(events.TypeUpdated, &updated, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("UpdateBooking: failed to publish event for booking id=%s: %v", updated.ID, err)
	}

	return &Response{
		Booking:   models.FromDomainBooking(&updated, bookings.AllowedFor(req.Actor, &updated)),
		Conflicts: models.FromDomainConflictsFor(req.Actor, conflicts),
	}, nil
}

// load получает бронирование под блокировкой и проверяет, что его можно менять
func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: repository error for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if booking.IsDeleted() {
		if !req.Actor.IsAdmin() {
			return nil, ErrBookingNotFound
		}
		uc.logger.Warn("UpdateBooking: booking id=%s is deleted", req.BookingID)
		return nil, ErrAlreadyDeleted
	}

	if !req.Actor.CanView(booking) {
		uc.logger.Warn("UpdateBooking: access denied for user=%s to booking id=%s", req.Actor.ID, req.BookingID)
		return nil, ErrAccessDenied
	}

	if lifecycle.IsTerminal(booking.Status) {
		uc.logger.Warn("UpdateBooking: booking id=%s is %s", req.BookingID, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrNotEditable, booking.Status)
	}

	// Одобренное бронирование меняет только администратор
	if booking.Status != domain.StatusPending && !req.Actor.IsAdmin() {
		uc.logger.Warn("UpdateBooking: user=%s may not edit %s booking id=%s", req.Actor.ID, booking.Status, req.BookingID)
		return nil, fmt.Errorf("%w: status %s", ErrNotEditable, booking.Status)
	}

	return booking, nil
}

// applyPolicy решает, блокируют ли найденные пересечения изменение
func (uc *UseCase) applyPolicy(current *domain.Booking, conflicts []*domain.Booking) error {
	if len(conflicts) == 0 {
		return nil
	}

	if uc.policy.BlockOnConflict {
		uc.logger.Warn("UpdateBooking: booking id=%s overlaps %d bookings, update blocked", current.ID, len(conflicts))
		return fmt.Errorf("%w: %d overlapping bookings", ErrConflictDetected, len(conflicts))
	}

	if current.Status == domain.StatusApproved && uc.policy.BlockApprovedOverlap {
		approved := conflict.OfStatus(conflicts, domain.StatusApproved)
		if len(approved) > 0 {
			ids := make([]string, 0, len(approved))
			for _, b := range approved {
				ids = append(ids, b.ID.String())
			}
			uc.logger.Warn("UpdateBooking: approved booking id=%s would overlap %d approved bookings", current.ID, len(approved))
			return fmt.Errorf("%w: %s", ErrConflictDetected, strings.Join(ids, ", "))
		}
	}

	uc.logger.Info("UpdateBooking: %d conflicts for booking id=%s, returning as warnings", len(conflicts), current.ID)
	return nil
}
