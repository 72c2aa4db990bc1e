package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/core/conflict"
	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// UseCase use case для проверки доступности площадки
// Ничего не записывает: вычисляет интервал и ищет пересечения с активными бронированиями
type UseCase struct {
	bookingRepo BookingRepository
	metrics     Metrics
	deriver     *interval.Deriver
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	metrics Metrics,
	deriver *interval.Deriver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		metrics:     metrics,
		deriver:     deriver,
		logger:      logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: venue=%s date=%s time=%s hours=%d",
		req.Venue, req.Date, req.StartTime, req.AdditionalHours)

	venue, err := domain.ParseVenue(req.Venue)
	if err != nil {
		uc.logger.Warn("CheckAvailability: unknown venue=%q", req.Venue)
		return nil, fmt.Errorf("%w: %q", ErrUnknownVenue, req.Venue)
	}

	iv, err := uc.deriver.Derive(req.Date, req.StartTime, req.AdditionalHours)
	if err != nil {
		uc.logger.Warn("CheckAvailability: interval derivation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := uc.bookingRepo.GetActiveByVenue(ctx, venue, iv)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings for venue=%s: %v", venue, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := conflict.FindConflicts(conflict.Candidate{Venue: venue, Interval: iv, ExcludeID: req.ExcludeID}, existing)
	uc.metrics.RecordConflicts(venue.String(), "check", len(conflicts))

	uc.logger.Info("CheckAvailability: venue=%s %s..%s conflicts=%d",
		venue, iv.Start.Format("2006-01-02 15:04"), iv.End.Format("2006-01-02 15:04"), len(conflicts))

	return &Response{
		Venue:     venue.String(),
		Date:      uc.deriver.DateOf(iv.Start),
		StartTime: uc.deriver.ClockOf(iv.Start).String(),
		EndTime:   types.NewTimeString(iv.End).String(),
		Start:     iv.Start,
		End:       iv.End,
		Available: len(conflicts) == 0,
		Conflicts: models.FromDomainConflicts(conflicts),
	}, nil
}
