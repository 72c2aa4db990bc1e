package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/core/conflict"
	"github.com/m04kA/SMC-VenueBooking/internal/core/lifecycle"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VenueBooking/internal/integrations/events"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo   BookingRepository
	accountClient AccountServiceClient
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	accountClient AccountServiceClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		accountClient: accountClient,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, администратор - любые.
// Логически удаленные бронирования видит только администратор
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, actor.ID)

	booking, err := s.load(ctx, "GetByID", id, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking, AllowedFor(actor, booking)), nil
}

// GetConflicts получает активные бронирования той же площадки, пересекающиеся с бронированием.
// Для неактивного бронирования список пуст
func (s *Service) GetConflicts(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.ConflictsResponse, error) {
	s.logger.Info("GetConflicts: checking booking id=%s for user=%s", id, actor.ID)

	booking, err := s.load(ctx, "GetConflicts", id, actor)
	if err != nil {
		return nil, err
	}

	resp := &models.ConflictsResponse{BookingID: id, Conflicts: make([]models.ConflictView, 0)}
	if !booking.IsActive() {
		return resp, nil
	}

	existing, err := s.bookingRepo.GetActiveByVenue(ctx, booking.Venue, booking.Interval)
	if err != nil {
		s.logger.Error("GetConflicts: repository error for venue=%s: %v", booking.Venue, err)
		return nil, fmt.Errorf("%w: GetConflicts - repository error: %v", ErrInternal, err)
	}

	conflicts := conflict.FindConflicts(conflict.CandidateOf(booking), existing)
	resp.Conflicts = models.FromDomainConflictsFor(actor, conflicts)

	s.logger.Info("GetConflicts: booking id=%s has %d conflicts", id, len(conflicts))
	return resp, nil
}

// List получает список бронирований
// Администратор видит все неудаленные бронирования, пользователь - только свои.
// Результат упорядочен по приоритету статуса, дате начала и ID; каждый элемент
// помечен флагом конфликта с другими активными бронированиями
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: user=%s role=%s query=%q", req.Actor.ID, req.Actor.Role, req.Query)

	filter := domain.BookingsFilter{}
	if !req.Actor.IsAdmin() {
		ownerID := req.Actor.ID
		filter.OwnerID = &ownerID
	}
	if req.Status != nil && *req.Status != "" {
		status := domain.BookingStatus(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}
	if req.Venue != nil && *req.Venue != "" {
		venue, err := domain.ParseVenue(*req.Venue)
		if err != nil {
			s.logger.Warn("List: invalid venue=%s", *req.Venue)
			return nil, fmt.Errorf("%w: unknown venue %q", ErrInvalidInput, *req.Venue)
		}
		filter.Venue = &venue
	}

	visible, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.BookingListResponse{Bookings: make([]models.BookingListItem, 0, len(visible))}

	var names map[uuid.UUID]string
	if req.Query != "" || req.Actor.IsAdmin() {
		names, err = s.accountClient.GetNamesWithGracefulDegradation(ctx)
		if err != nil {
			s.logger.Warn("List: owner names unavailable, searching without them: %v", err)
			resp.NamesUnavailable = true
		}
	}

	visible = search(visible, req.Query, names)
	if len(visible) == 0 {
		return resp, nil
	}

	pool, err := s.activeAround(ctx, visible)
	if err != nil {
		s.logger.Error("List: repository error while annotating conflicts: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	lifecycle.Sort(visible)
	for _, b := range visible {
		resp.Bookings = append(resp.Bookings, models.BookingListItem{
			BookingResponse: *models.FromDomainBooking(b, AllowedFor(req.Actor, b)),
			OwnerName:       names[b.OwnerID],
			HasConflict:     conflict.HasConflict(b, pool),
		})
	}

	s.logger.Info("List: successfully fetched %d bookings", len(resp.Bookings))
	return resp, nil
}

// Calendar получает занятость площадок для календаря.
// Удаленные бронирования не показываются; чужие бронирования отдаются в сокращенном виде
func (s *Service) Calendar(ctx context.Context, req *models.CalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Calendar: user=%s role=%s", req.Actor.ID, req.Actor.Role)

	status := domain.StatusApproved
	if req.Status != nil && *req.Status != "" {
		status = domain.BookingStatus(strings.ToUpper(*req.Status))
		if !status.IsValid() {
			s.logger.Warn("Calendar: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}
	if status != domain.StatusApproved && !req.Actor.IsAdmin() {
		s.logger.Warn("Calendar: user=%s may not view %s bookings", req.Actor.ID, status)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{Status: &status}
	if req.Venue != nil && *req.Venue != "" {
		venue, err := domain.ParseVenue(*req.Venue)
		if err != nil {
			s.logger.Warn("Calendar: invalid venue=%s", *req.Venue)
			return nil, fmt.Errorf("%w: unknown venue %q", ErrInvalidInput, *req.Venue)
		}
		filter.Venue = &venue
	}

	list, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Calendar: repository error: %v", err)
		return nil, fmt.Errorf("%w: Calendar - repository error: %v", ErrInternal, err)
	}

	lifecycle.Sort(list)
	s.logger.Info("Calendar: %d %s bookings", len(list), status)
	return &models.CalendarResponse{Entries: models.FromDomainConflictsFor(req.Actor, list)}, nil
}

// Delete логически удаляет бронирование
// Повторное удаление не является ошибкой и не публикует событие
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("Delete: deleting booking id=%s by user=%s", id, actor.ID)

	var deleted *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Delete: booking id=%s not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if !actor.IsAdmin() && !actor.Owns(booking) {
			s.logger.Warn("Delete: access denied for user=%s to booking id=%s", actor.ID, id)
			return ErrAccessDenied
		}

		if booking.IsDeleted() {
			s.logger.Info("Delete: booking id=%s already deleted", id)
			return nil
		}

		result := lifecycle.SoftDelete(*booking, s.timeProvider.Now())
		if err := s.bookingRepo.MarkDeleted(txCtx, id, *result.DeletedAt); err != nil {
			s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		deleted = &result
		return nil
	})
	if err != nil {
		return err
	}

	if deleted != nil {
		s.publish(ctx, events.NewBookingEvent(events.TypeDeleted, deleted, s.timeProvider.Now()))
		s.logger.Info("Delete: successfully deleted booking id=%s", id)
	}

	return nil
}

// AllowedFor допустимые для пользователя переходы статуса бронирования
func AllowedFor(actor domain.Actor, b *domain.Booking) []domain.BookingStatus {
	allowed := make([]domain.BookingStatus, 0)
	if b.IsDeleted() {
		return allowed
	}
	for _, target := range lifecycle.AllowedTargets(b.Status) {
		if actor.MayRequest(b, target) {
			allowed = append(allowed, target)
		}
	}
	return allowed
}

// Вспомогательные методы

// load получает бронирование и проверяет права доступа
func (s *Service) load(ctx context.Context, op string, id uuid.UUID, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.IsDeleted() && !actor.IsAdmin() {
		s.logger.Warn("%s: booking id=%s is deleted", op, id)
		return nil, ErrBookingNotFound
	}

	if !actor.CanView(booking) {
		s.logger.Warn("%s: access denied for user=%s to booking id=%s", op, actor.ID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// activeAround получает все неудаленные бронирования в диапазоне времени списка
func (s *Service) activeAround(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	from, to := bookings[0].Interval.Start, bookings[0].Interval.End
	for _, b := range bookings[1:] {
		if b.Interval.Start.Before(from) {
			from = b.Interval.Start
		}
		if b.Interval.End.After(to) {
			to = b.Interval.End
		}
	}

	return s.bookingRepo.List(ctx, domain.BookingsFilter{From: &from, To: &to})
}

func (s *Service) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to send %s for booking id=%s: %v", event.Type, event.BookingID, err)
	}
}

// search фильтрует бронирования по подстроке без учета регистра
func search(bookings []*domain.Booking, query string, names map[uuid.UUID]string) []*domain.Booking {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return bookings
	}

	matched := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		fields := []string{b.Title, b.Venue.String(), b.Status.String(), names[b.OwnerID]}
		if b.Organizer != nil {
			fields = append(fields, *b.Organizer)
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), query) {
				matched = append(matched, b)
				break
			}
		}
	}
	return matched
}

// SetTimeProvider подменяет источник времени (для тестирования)
func (s *Service) SetTimeProvider(tp TimeProvider) {
	s.timeProvider = tp
}
