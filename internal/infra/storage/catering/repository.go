package catering

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

// Repository репозиторий для работы с каталогом блюд, пакетами и выбором кейтеринга
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кейтеринга
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListDishes получает каталог блюд в порядке каталога (sort_order, id).
// dishType == "" - все типы
func (r *Repository) ListDishes(ctx context.Context, dishType string) ([]domain.Dish, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "category", "dish_type", "description").
		From("dishes").
		OrderBy("sort_order ASC", "id ASC")

	if dishType != "" {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dish_type": dishType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDishes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDishes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dishes := make([]domain.Dish, 0)
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Category, &d.DishType, &d.Description); err != nil {
			return nil, fmt.Errorf("%w: ListDishes - scan dish: %v", ErrScanRow, err)
		}
		dishes = append(dishes, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDishes - rows error: %v", ErrScanRow, err)
	}

	return dishes, nil
}

// GetDish получает блюдо по ID
func (r *Repository) GetDish(ctx context.Context, id string) (*domain.Dish, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "category", "dish_type", "description").
		From("dishes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDish - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.Dish
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &d.Name, &d.Category, &d.DishType, &d.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDishNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDish - scan dish: %v", ErrScanRow, err)
	}

	return &d, nil
}

// ListPackages получает пакеты кейтеринга, упорядоченные по цене
func (r *Repository) ListPackages(ctx context.Context) ([]domain.MainDishPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("catering_packages").
		OrderBy("price ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPackages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]domain.MainDishPackage, 0)
	for rows.Next() {
		var p domain.MainDishPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.NumOfDishes, &p.Price, &p.MinPax, &p.MaxPax); err != nil {
			return nil, fmt.Errorf("%w: ListPackages - scan package: %v", ErrScanRow, err)
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPackages - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// GetPackage получает пакет по ID
func (r *Repository) GetPackage(ctx context.Context, id string) (*domain.MainDishPackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("catering_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.MainDishPackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.NumOfDishes, &p.Price, &p.MinPax, &p.MaxPax)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan package: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetSelection получает выбор кейтеринга бронирования.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetSelection(ctx context.Context, bookingID uuid.UUID) (*domain.CateringSelection, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("booking_id", "package_id", "expected_pax", "selected_dishes").
		From("catering_selections").
		Where(squirrel.Eq{"booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSelection - build select query: %v", ErrBuildQuery, err)
	}

	var (
		sel       domain.CateringSelection
		packageID sql.NullString
		dishes    pq.StringArray
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sel.BookingID, &packageID, &sel.ExpectedPax, &dishes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSelectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSelection - scan selection: %v", ErrScanRow, err)
	}

	if packageID.Valid {
		sel.PackageID = &packageID.String
	}
	sel.SelectedDishes = []string(dishes)
	if sel.SelectedDishes == nil {
		sel.SelectedDishes = make([]string, 0)
	}

	return &sel, nil
}

// SaveSelection создает или полностью перезаписывает выбор кейтеринга бронирования
func (r *Repository) SaveSelection(ctx context.Context, sel *domain.CateringSelection) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dishes := sel.SelectedDishes
	if dishes == nil {
		dishes = make([]string, 0)
	}

	query, args, err := psqlbuilder.Insert("catering_selections").
		Columns("booking_id", "package_id", "expected_pax", "selected_dishes").
		Values(sel.BookingID, sel.PackageID, sel.ExpectedPax, pq.Array(dishes)).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			package_id = EXCLUDED.package_id,
			expected_pax = EXCLUDED.expected_pax,
			selected_dishes = EXCLUDED.selected_dishes,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveSelection - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveSelection - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

var packageColumns = []string{"id", "name", "num_of_dishes", "price", "min_pax", "max_pax"}
