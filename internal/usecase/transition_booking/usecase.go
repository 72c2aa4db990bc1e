package transition_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/core/conflict"
	"github.com/m04kA/SMC-VenueBooking/internal/core/lifecycle"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeBlocked  = "blocked"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	metrics      Metrics
	txManager    TransactionManager
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
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		metrics:      metrics,
		txManager:    txManager,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SetTimeProvider подменяет источник времени (для тестирования)
func (uc *UseCase) SetTimeProvider(tp TimeProvider) {
	uc.timeProvider = tp
}

// Execute выполняет переход
// Бронирование читается с блокировкой; при одобрении конфликты пересчитываются в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s user=%s role=%s target=%s",
		req.BookingID, req.Actor.ID, req.Actor.Role, req.Target)

	target := domain.BookingStatus(strings.ToUpper(strings.TrimSpace(req.Target)))
	if !target.IsValid() {
		uc.logger.Warn("TransitionBooking: unknown target status=%q", req.Target)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Target)
	}

	var (
		updated  domain.Booking
		from     domain.BookingStatus
		warnings []*domain.Booking
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.load(txCtx, req)
		if err != nil {
			return err
		}
		from = current.Status

		if !req.Actor.MayRequest(current, target) {
			uc.logger.Warn("TransitionBooking: user=%s may not request %s for booking id=%s",
				req.Actor.ID, target, current.ID)
			return ErrAccessDenied
		}

		updated, err = lifecycle.Transition(*current, target)
		if err != nil {
			uc.metrics.RecordTransition(from.String(), target.String(), outcomeRejected)
			uc.logger.Warn("TransitionBooking: %v", err)
			switch {
			case errors.Is(err, lifecycle.ErrAlreadyDeleted):
				return fmt.Errorf("%w: %v", ErrAlreadyDeleted, err)
			default:
				return fmt.Errorf("%w: %v", ErrIllegalTransition, err)
			}
		}

		if target == domain.StatusApproved {
			warnings, err = uc.checkApproval(txCtx, current)
			if err != nil {
				return err
			}
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, current.ID, target); err != nil {
			uc.logger.Error("TransitionBooking: failed to update status for booking id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordTransition(from.String(), target.String(), outcomeApplied)
	uc.logger.Info("TransitionBooking: booking id=%s %s -> %s", updated.ID, from, target)

	event := events.NewBookingEvent(events.TypeForStatus(target), &updated, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("TransitionBooking: failed to publish event for booking id=%s: %v", updated.ID, err)
	}

	return &Response{
		Booking:  models.FromDomainBooking(&updated, bookings.AllowedFor(req.Actor, &updated)),
		Warnings: models.FromDomainBookings(warnings),
	}, nil
}

// load получает бронирование под блокировкой; удаленное видно только администратору
func (uc *UseCase) load(ctx context.Context, req *Request) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("TransitionBooking: repository error for booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if booking.IsDeleted() && !req.Actor.IsAdmin() {
		return nil, ErrBookingNotFound
	}

	if !req.Actor.CanView(booking) {
		uc.logger.Warn("TransitionBooking: access denied for user=%s to booking id=%s", req.Actor.ID, req.BookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// checkApproval ищет пересечения перед одобрением.
// Пересечение с одобренным бронированием блокирует переход (если включено политикой),
// остальные пересечения возвращаются как предупреждения
func (uc *UseCase) checkApproval(ctx context.Context, booking *domain.Booking) ([]*domain.Booking, error) {
	existing, err := uc.bookingRepo.GetActiveByVenue(ctx, booking.Venue, booking.Interval)
	if err != nil {
		uc.logger.Error("TransitionBooking: failed to get bookings for venue=%s: %v", booking.Venue, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := conflict.FindConflicts(conflict.CandidateOf(booking), existing)
	uc.metrics.RecordConflicts(booking.Venue.String(), "approve", len(conflicts))

	approved := conflict.OfStatus(conflicts, domain.StatusApproved)
	if len(approved) > 0 && uc.policy.BlockApprovalOnConflict {
		uc.metrics.RecordTransition(booking.Status.String(), domain.StatusApproved.String(), outcomeBlocked)
		uc.logger.Warn("TransitionBooking: booking id=%s overlaps %d approved bookings, approval blocked",
			booking.ID, len(approved))
		return nil, fmt.Errorf("%w: %s", ErrConflictDetected, strings.Join(idStrings(approved), ", "))
	}

	return conflicts, nil
}

func idStrings(list []*domain.Booking) []string {
	ids := conflict.IDs(list)
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
