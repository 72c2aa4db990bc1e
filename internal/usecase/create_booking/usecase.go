package create_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/core/conflict"
	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	cateringRepo CateringRepository
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
	cateringRepo CateringRepository,
	publisher EventPublisher,
	metrics Metrics,
	txManager TransactionManager,
	deriver *interval.Deriver,
	policy Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		cateringRepo: cateringRepo,
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

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: активные бронирования площадки читаются с блокировкой,
// проверка конфликтов и вставка видят один и тот же снимок
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s role=%s venue=%s date=%s time=%s hours=%d",
		req.Actor.ID, req.Actor.Role, req.Venue, req.Date, req.StartTime, req.AdditionalHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	venue, err := domain.ParseVenue(req.Venue)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVenue, req.Venue)
	}

	// 2. Вычисляем интервал
	iv, err := uc.deriver.Derive(req.Date, req.StartTime, req.AdditionalHours)
	if err != nil {
		uc.logger.Warn("CreateBooking: interval derivation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Правила ролей
	if err := validateRole(req, iv, uc.timeProvider.Now(), uc.policy.MinLeadDays); err != nil {
		uc.logger.Warn("CreateBooking: role rules failed for user=%s: %v", req.Actor.ID, err)
		return nil, err
	}

	var (
		created   *domain.Booking
		conflicts []*domain.Booking
	)

	// 4. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.bookingRepo.GetActiveByVenue(txCtx, venue, iv)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for venue=%s: %v", venue, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		conflicts = conflict.FindConflicts(conflict.Candidate{Venue: venue, Interval: iv}, existing)
		uc.metrics.RecordConflicts(venue.String(), "create", len(conflicts))

		if len(conflicts) > 0 {
			if uc.policy.BlockOnConflict {
				uc.logger.Warn("CreateBooking: %d conflicts at venue=%s, creation blocked", len(conflicts), venue)
				return fmt.Errorf("%w: %d overlapping bookings", ErrConflictDetected, len(conflicts))
			}
			uc.logger.Info("CreateBooking: %d conflicts at venue=%s, returning as warnings", len(conflicts), venue)
		}

		booking := &domain.Booking{
			OwnerID:         req.Actor.ID,
			Title:           req.Title,
			Description:     req.Description,
			Category:        req.Category,
			Organizer:       req.Organizer,
			AdditionalNotes: req.AdditionalNotes,
			Venue:           venue,
			Interval:        iv,
			AdditionalHours: req.AdditionalHours,
			Status:          domain.StatusPending,
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		selection := &domain.CateringSelection{BookingID: created.ID, SelectedDishes: make([]string, 0)}
		if err := uc.cateringRepo.SaveSelection(txCtx, selection); err != nil {
			uc.logger.Error("CreateBooking: failed to create catering selection: %v", err)
			return fmt.Errorf("%w: failed to create catering selection: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 5. Публикуем событие после коммита
	event := events.NewBookingEvent(events.TypeCreated, created, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish event for booking id=%s: %v", created.ID, err)
	}

	return &Response{
		Booking:   models.FromDomainBooking(created, nil),
		Conflicts: models.FromDomainConflictsFor(req.Actor, conflicts),
	}, nil
}
