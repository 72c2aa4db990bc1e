package catering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	coreCatering "github.com/m04kA/SMC-VenueBooking/internal/core/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/core/lifecycle"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/booking"
	cateringRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
)

// Исходы переключения блюда для метрик
const (
	outcomeAdded    = "added"
	outcomeRemoved  = "removed"
	outcomeRejected = "rejected"
)

// Service сервис для работы с кейтерингом бронирований
type Service struct {
	bookingRepo      BookingRepository
	cateringRepo     CateringRepository
	txManager        TransactionManager
	metrics          Metrics
	defaultMaxDishes int
	logger           Logger
}

// NewService создает новый экземпляр сервиса кейтеринга.
// defaultMaxDishes - лимит блюд для выбора без пакета
func NewService(
	bookingRepo BookingRepository,
	cateringRepo CateringRepository,
	txManager TransactionManager,
	metrics Metrics,
	defaultMaxDishes int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		cateringRepo:     cateringRepo,
		txManager:        txManager,
		metrics:          metrics,
		defaultMaxDishes: defaultMaxDishes,
		logger:           logger,
	}
}

// ListMenu получает основные блюда, сгруппированные по категориям
func (s *Service) ListMenu(ctx context.Context) (*models.MenuResponse, error) {
	dishes, err := s.cateringRepo.ListDishes(ctx, domain.DishTypeMain)
	if err != nil {
		s.logger.Error("ListMenu: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListMenu - repository error: %v", ErrInternal, err)
	}

	groups := coreCatering.GroupByCategory(dishes, domain.DishTypeMain)
	s.logger.Info("ListMenu: %d dishes in %d categories", len(dishes), len(groups))
	return models.FromCategoryGroups(groups), nil
}

// ListPackages получает пакеты кейтеринга
func (s *Service) ListPackages(ctx context.Context) (*models.PackagesResponse, error) {
	packages, err := s.cateringRepo.ListPackages(ctx)
	if err != nil {
		s.logger.Error("ListPackages: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPackages - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainPackages(packages), nil
}

// GetSelection получает выбор кейтеринга бронирования
func (s *Service) GetSelection(ctx context.Context, bookingID uuid.UUID, actor domain.Actor) (*models.SelectionResponse, error) {
	s.logger.Info("GetSelection: booking id=%s user=%s", bookingID, actor.ID)

	booking, err := s.loadBooking(ctx, "GetSelection", bookingID, actor)
	if err != nil {
		return nil, err
	}

	sel, maxDishes, err := s.loadSelection(ctx, "GetSelection", bookingID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSelection(sel, maxDishes, lifecycle.CanEditCatering(*booking)), nil
}

// ToggleDish добавляет блюдо в выбор или убирает его
// Добавление сверх лимита пакета (или лимита по умолчанию) отклоняется
func (s *Service) ToggleDish(ctx context.Context, bookingID uuid.UUID, dishID string, actor domain.Actor) (*models.SelectionResponse, error) {
	s.logger.Info("ToggleDish: booking id=%s dish=%s user=%s", bookingID, dishID, actor.ID)

	if dishID == "" {
		return nil, fmt.Errorf("%w: dish id is required", ErrInvalidInput)
	}

	var result *models.SelectionResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadEditableBooking(txCtx, "ToggleDish", bookingID, actor)
		if err != nil {
			return err
		}

		sel, maxDishes, err := s.loadSelection(txCtx, "ToggleDish", bookingID)
		if err != nil {
			return err
		}

		// Убрать можно любое выбранное блюдо, даже если его уже нет в каталоге
		if !sel.Has(dishID) {
			if err := s.checkMainDish(txCtx, dishID); err != nil {
				return err
			}
		}

		wasSelected := sel.Has(dishID)
		updated, err := coreCatering.ToggleDish(*sel, dishID, maxDishes)
		if err != nil {
			if errors.Is(err, coreCatering.ErrCapacityExceeded) {
				s.metrics.RecordDishToggle(outcomeRejected)
				s.logger.Warn("ToggleDish: dish limit reached for booking id=%s (%d/%d)", bookingID, sel.Size(), maxDishes)
				return fmt.Errorf("%w: %d of %d dishes selected", ErrCapacityExceeded, sel.Size(), maxDishes)
			}
			return fmt.Errorf("%w: ToggleDish - %v", ErrInternal, err)
		}

		if err := s.cateringRepo.SaveSelection(txCtx, &updated); err != nil {
			s.logger.Error("ToggleDish: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: ToggleDish - repository error: %v", ErrInternal, err)
		}

		if wasSelected {
			s.metrics.RecordDishToggle(outcomeRemoved)
		} else {
			s.metrics.RecordDishToggle(outcomeAdded)
		}

		result = models.FromDomainSelection(&updated, maxDishes, lifecycle.CanEditCatering(*booking))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ToggleDish: booking id=%s now has %d dishes", bookingID, len(result.SelectedDishes))
	return result, nil
}

// SelectPackage выбирает пакет кейтеринга и количество гостей
// Отклоняется, если уже выбранных блюд больше, чем допускает пакет
func (s *Service) SelectPackage(ctx context.Context, bookingID uuid.UUID, actor domain.Actor, req *models.SelectPackageRequest) (*models.SelectionResponse, error) {
	s.logger.Info("SelectPackage: booking id=%s package=%s pax=%d user=%s", bookingID, req.PackageID, req.ExpectedPax, actor.ID)

	if req.PackageID == "" || req.ExpectedPax <= 0 {
		return nil, fmt.Errorf("%w: packageId and positive expectedPax are required", ErrInvalidInput)
	}

	var result *models.SelectionResponse

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.loadEditableBooking(txCtx, "SelectPackage", bookingID, actor)
		if err != nil {
			return err
		}

		pkg, err := s.cateringRepo.GetPackage(txCtx, req.PackageID)
		if err != nil {
			if errors.Is(err, cateringRepo.ErrPackageNotFound) {
				s.logger.Warn("SelectPackage: package id=%s not found", req.PackageID)
				return ErrPackageNotFound
			}
			s.logger.Error("SelectPackage: repository error for package id=%s: %v", req.PackageID, err)
			return fmt.Errorf("%w: SelectPackage - repository error: %v", ErrInternal, err)
		}

		if !pkg.AcceptsPax(req.ExpectedPax) {
			s.logger.Warn("SelectPackage: pax=%d outside package %s bounds [%d, %d]", req.ExpectedPax, pkg.ID, pkg.MinPax, pkg.MaxPax)
			return fmt.Errorf("%w: package %s accepts %d..%d guests", ErrPaxOutOfRange, pkg.ID, pkg.MinPax, pkg.MaxPax)
		}

		sel, _, err := s.loadSelection(txCtx, "SelectPackage", bookingID)
		if err != nil {
			return err
		}

		if sel.Size() > pkg.NumOfDishes {
			s.logger.Warn("SelectPackage: booking id=%s has %d dishes, package %s allows %d", bookingID, sel.Size(), pkg.ID, pkg.NumOfDishes)
			return fmt.Errorf("%w: %d selected, package allows %d", ErrSelectionExceedsPackage, sel.Size(), pkg.NumOfDishes)
		}

		sel.PackageID = &pkg.ID
		sel.ExpectedPax = req.ExpectedPax

		if err := s.cateringRepo.SaveSelection(txCtx, sel); err != nil {
			s.logger.Error("SelectPackage: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: SelectPackage - repository error: %v", ErrInternal, err)
		}

		result = models.FromDomainSelection(sel, pkg.NumOfDishes, lifecycle.CanEditCatering(*booking))
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SelectPackage: booking id=%s uses package %s", bookingID, req.PackageID)
	return result, nil
}

// Вспомогательные методы

// loadBooking получает бронирование и проверяет права доступа
func (s *Service) loadBooking(ctx context.Context, op string, id uuid.UUID, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	// Удаленное бронирование видно только администратору
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

// loadEditableBooking получает бронирование, кейтеринг которого еще можно менять
func (s *Service) loadEditableBooking(ctx context.Context, op string, id uuid.UUID, actor domain.Actor) (*domain.Booking, error) {
	booking, err := s.loadBooking(ctx, op, id, actor)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanEditCatering(*booking) {
		s.logger.Warn("%s: catering of booking id=%s is locked (status=%s, deleted=%v)", op, id, booking.Status, booking.IsDeleted())
		return nil, ErrCateringLocked
	}

	return booking, nil
}

// loadSelection получает выбор кейтеринга и лимит блюд.
// Отсутствующий выбор считается пустым
func (s *Service) loadSelection(ctx context.Context, op string, bookingID uuid.UUID) (*domain.CateringSelection, int, error) {
	sel, err := s.cateringRepo.GetSelection(ctx, bookingID)
	if err != nil {
		if !errors.Is(err, cateringRepo.ErrSelectionNotFound) {
			s.logger.Error("%s: repository error for selection of booking id=%s: %v", op, bookingID, err)
			return nil, 0, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		sel = &domain.CateringSelection{BookingID: bookingID, SelectedDishes: make([]string, 0)}
	}

	maxDishes := s.defaultMaxDishes
	if sel.PackageID != nil {
		pkg, err := s.cateringRepo.GetPackage(ctx, *sel.PackageID)
		switch {
		case err == nil:
			maxDishes = pkg.NumOfDishes
		case errors.Is(err, cateringRepo.ErrPackageNotFound):
			s.logger.Warn("%s: package id=%s of booking id=%s not found, using default limit", op, *sel.PackageID, bookingID)
		default:
			s.logger.Error("%s: repository error for package id=%s: %v", op, *sel.PackageID, err)
			return nil, 0, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}

	return sel, maxDishes, nil
}

// checkMainDish проверяет, что блюдо есть в каталоге и относится к основным
func (s *Service) checkMainDish(ctx context.Context, dishID string) error {
	dish, err := s.cateringRepo.GetDish(ctx, dishID)
	if err != nil {
		if errors.Is(err, cateringRepo.ErrDishNotFound) {
			s.logger.Warn("checkMainDish: dish id=%s not found", dishID)
			return ErrDishNotFound
		}
		s.logger.Error("checkMainDish: repository error for dish id=%s: %v", dishID, err)
		return fmt.Errorf("%w: checkMainDish - repository error: %v", ErrInternal, err)
	}

	if dish.DishType != domain.DishTypeMain {
		s.logger.Warn("checkMainDish: dish id=%s has type %s", dishID, dish.DishType)
		return ErrNotMainDish
	}

	return nil
}
