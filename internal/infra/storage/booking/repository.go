package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/core/interval"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBooking/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"owner_id",
	"title",
	"description",
	"category",
	"organizer",
	"additional_notes",
	"venue",
	"start_at",
	"end_at",
	"additional_hours",
	"status",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db      DBExecutor
	deriver *interval.Deriver
}

// NewRepository создает новый экземпляр репозитория бронирований.
// deriver восстанавливает интервалы из хранилища в опорном часовом поясе
func NewRepository(db DBExecutor, deriver *interval.Deriver) *Repository {
	if deriver == nil {
		deriver = interval.NewDefaultDeriver()
	}
	return &Repository{db: db, deriver: deriver}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"owner_id",
			"title",
			"description",
			"category",
			"organizer",
			"additional_notes",
			"venue",
			"start_at",
			"end_at",
			"additional_hours",
			"status",
		).
		Values(
			booking.ID,
			booking.OwnerID,
			booking.Title,
			booking.Description,
			booking.Category,
			booking.Organizer,
			booking.AdditionalNotes,
			string(booking.Venue),
			booking.Interval.Start,
			booking.Interval.End,
			booking.AdditionalHours,
			string(booking.Status),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID, включая логически удаленные.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID: %w", err)
	}

	return booking, nil
}

// GetActiveByVenue получает активные (PENDING/APPROVED, не удаленные) бронирования площадки,
// пересекающиеся с интервалом. Сравнение площадки регистронезависимое.
// Внутри транзакции найденные строки блокируются (FOR UPDATE), чтобы проверка конфликтов
// и последующая запись видели один и тот же снимок
func (r *Repository) GetActiveByVenue(ctx context.Context, venue domain.Venue, interval domain.Interval) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Expr("lower(venue) = lower(?)", string(venue))).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Eq{"deleted_at": nil}).
		Where(squirrel.Lt{"start_at": interval.End}).
		Where(squirrel.Gt{"end_at": interval.Start}).
		OrderBy("start_at ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - владельцу (OwnerID)
// - площадке (Venue, без учета регистра)
// - статусу (Status)
// - периоду (From, To) - бронирования, пересекающие период
// - логически удаленным (IncludeDeleted)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Venue != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr("lower(venue) = lower(?)", string(*filter.Venue)))
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if !filter.IncludeDeleted {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}

	query, args, err := selectBuilder.OrderBy("start_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// UpdateDetails перезаписывает редактируемые поля бронирования и его интервал.
// Статус, владелец и метка удаления не меняются; updated_at берется из БД
func (r *Repository) UpdateDetails(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("title", booking.Title).
		Set("description", booking.Description).
		Set("category", booking.Category).
		Set("organizer", booking.Organizer).
		Set("additional_notes", booking.AdditionalNotes).
		Set("venue", string(booking.Venue)).
		Set("start_at", booking.Interval.Start).
		Set("end_at", booking.Interval.End).
		Set("additional_hours", booking.AdditionalHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateDetails", query, args)
}

// MarkDeleted проставляет метку логического удаления.
// Уже удаленная запись не перезаписывается
func (r *Repository) MarkDeleted(ctx context.Context, id uuid.UUID, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("deleted_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkDeleted - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "MarkDeleted", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanBooking сканирует одну строку и приводит её к доменной модели:
// интервал переводится в опорный часовой пояс, метка удаления нормализуется
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		organizer, notes     sql.NullString
		venue, status        string
		start, end           time.Time
		deletedAt            sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.OwnerID,
		&booking.Title,
		&booking.Description,
		&booking.Category,
		&organizer,
		&notes,
		&venue,
		&start,
		&end,
		&booking.AdditionalHours,
		&status,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.Interval, err = r.deriver.FromStored(start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: id=%s: %v", ErrInvalidInterval, booking.ID, err)
	}

	if organizer.Valid {
		booking.Organizer = &organizer.String
	}
	if notes.Valid {
		booking.AdditionalNotes = &notes.String
	}
	booking.Venue = domain.Venue(venue)
	booking.Status = domain.BookingStatus(status)
	booking.DeletedAt = domain.NormalizeDeletedAt(deletedAt)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
