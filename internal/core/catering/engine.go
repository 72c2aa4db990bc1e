// Package catering enforces the main-dish cap of a catering selection and
// groups the dish catalog for presentation.
package catering

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

var ErrCapacityExceeded = errors.New("catering: dish capacity exceeded")

// ToggleDish removes dishID when it is selected and adds it otherwise.
// Adding past maxDishes fails with ErrCapacityExceeded and returns sel unchanged.
// The input selection is never modified.
func ToggleDish(sel domain.CateringSelection, dishID string, maxDishes int) (domain.CateringSelection, error) {
	out := sel
	out.SelectedDishes = slices.Clone(sel.SelectedDishes)

	if idx := slices.Index(out.SelectedDishes, dishID); idx >= 0 {
		out.SelectedDishes = slices.Delete(out.SelectedDishes, idx, idx+1)
		return out, nil
	}

	if len(out.SelectedDishes) >= maxDishes {
		return sel, fmt.Errorf("%w: selected=%d max=%d", ErrCapacityExceeded, len(sel.SelectedDishes), maxDishes)
	}

	out.SelectedDishes = append(out.SelectedDishes, dishID)
	return out, nil
}

// Remaining returns how many more dishes fit in the selection
func Remaining(sel domain.CateringSelection, maxDishes int) int {
	left := maxDishes - len(sel.SelectedDishes)
	if left < 0 {
		return 0
	}
	return left
}

// CategoryGroup dishes of one category in catalog order
type CategoryGroup struct {
	Category string
	Dishes   []domain.Dish
}

// GroupByCategory groups dishes of dishType by category; categories are sorted
// by name, dishes keep their catalog order. An empty dishType keeps every dish.
func GroupByCategory(dishes []domain.Dish, dishType string) []CategoryGroup {
	byCategory := make(map[string][]domain.Dish)
	for _, d := range dishes {
		if dishType != "" && d.DishType != dishType {
			continue
		}
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	groups := make([]CategoryGroup, 0, len(categories))
	for _, c := range categories {
		groups = append(groups, CategoryGroup{Category: c, Dishes: byCategory[c]})
	}
	return groups
}
