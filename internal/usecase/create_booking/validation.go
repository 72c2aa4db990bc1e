package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// validate общий валидатор запросов; безопасен для конкурентного использования
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Ошибки регистрации возможны только при пустом имени тега
	_ = v.RegisterValidation("venue", validateVenue)
	_ = v.RegisterValidation("clock", validateClock)

	return v
}

func validateVenue(fl validator.FieldLevel) bool {
	_, err := domain.ParseVenue(fl.Field().String())
	return err == nil
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := types.NewTimeStringFromString(fl.Field().String())
	return err == nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "venue":
			return fmt.Errorf("%w: %q", ErrUnknownVenue, req.Venue)
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fe.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must not be negative", fe.Field()))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must be a YYYY-MM-DD date", fe.Field()))
		case "clock":
			messages = append(messages, fmt.Sprintf("%s must be an HH:MM time", fe.Field()))
		default:
			messages = append(messages, fe.Error())
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

// validateRole проверяет правила ролей:
// пользователь бронирует не позже чем за minLeadDays суток до начала, администратор обязан указать организатора
func validateRole(req *Request, interval domain.Interval, now time.Time, minLeadDays int) error {
	if req.Actor.IsAdmin() {
		if req.Organizer == nil || strings.TrimSpace(*req.Organizer) == "" {
			return ErrOrganizerRequired
		}
		return nil
	}

	// Срок отсчитывается от текущего момента, а не от начала дня
	earliest := now.Add(time.Duration(minLeadDays) * 24 * time.Hour).In(interval.Start.Location())

	if interval.Start.Before(earliest) {
		return fmt.Errorf("%w: earliest start is %s", ErrTooSoon, earliest.Format(domain.DateFormat+" "+domain.TimeFormat))
	}

	return nil
}
