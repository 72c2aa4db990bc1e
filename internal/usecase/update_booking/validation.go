package update_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("venue", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseVenue(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := types.NewTimeStringFromString(fl.Field().String())
		return err == nil
	})

	return v
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

// validateRole повторяет правила ролей создания для нового интервала.
// Срок проверяется, только если интервал изменился: уже одобренную дату пользователь может оставить
func validateRole(req *Request, current, next domain.Interval, now time.Time, minLeadDays int) error {
	if req.Actor.IsAdmin() {
		if req.Organizer == nil || strings.TrimSpace(*req.Organizer) == "" {
			return ErrOrganizerRequired
		}
		return nil
	}

	if current.Start.Equal(next.Start) && current.End.Equal(next.End) {
		return nil
	}

	earliest := now.Add(time.Duration(minLeadDays) * 24 * time.Hour).In(next.Start.Location())
	if next.Start.Before(earliest) {
		return fmt.Errorf("%w: earliest start is %s", ErrTooSoon, earliest.Format(domain.DateFormat+" "+domain.TimeFormat))
	}

	return nil
}
