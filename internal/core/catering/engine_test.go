package catering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

func TestToggleDish_CapScenario(t *testing.T) {
	sel := domain.CateringSelection{BookingID: uuid.New()}
	const maxDishes = 3

	var err error
	for _, id := range []string{"d1", "d2", "d3"} {
		sel, err = ToggleDish(sel, id, maxDishes)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"d1", "d2", "d3"}, sel.SelectedDishes)

	blocked, err := ToggleDish(sel, "d4", maxDishes)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, sel, blocked)

	sel, err = ToggleDish(sel, "d2", maxDishes)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d3"}, sel.SelectedDishes)

	sel, err = ToggleDish(sel, "d4", maxDishes)
	require.NoError(t, err)
	assert.Equal(t, []string{"d1", "d3", "d4"}, sel.SelectedDishes)
	assert.Equal(t, 0, Remaining(sel, maxDishes))
}

func TestToggleDish_DoesNotMutateInput(t *testing.T) {
	sel := domain.CateringSelection{SelectedDishes: []string{"a", "b"}}

	out, err := ToggleDish(sel, "a", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, sel.SelectedDishes)
	assert.Equal(t, []string{"b"}, out.SelectedDishes)
}

func TestToggleDish_RemoveAlwaysAllowed(t *testing.T) {
	sel := domain.CateringSelection{SelectedDishes: []string{"a", "b", "c", "d"}}

	out, err := ToggleDish(sel, "c", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "d"}, out.SelectedDishes)
}

func TestToggleDish_ZeroCap(t *testing.T) {
	_, err := ToggleDish(domain.CateringSelection{}, "a", 0)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestRemaining(t *testing.T) {
	sel := domain.CateringSelection{SelectedDishes: []string{"a"}}
	assert.Equal(t, 2, Remaining(sel, 3))

	over := domain.CateringSelection{SelectedDishes: []string{"a", "b", "c"}}
	assert.Equal(t, 0, Remaining(over, 2))
}

func TestGroupByCategory(t *testing.T) {
	dishes := []domain.Dish{
		{ID: "1", Name: "Lechon", Category: "Pork", DishType: domain.DishTypeMain},
		{ID: "2", Name: "Adobo", Category: "Chicken", DishType: domain.DishTypeMain},
		{ID: "3", Name: "Leche Flan", Category: "Dessert", DishType: "DESSERT"},
		{ID: "4", Name: "Sisig", Category: "Pork", DishType: domain.DishTypeMain},
		{ID: "5", Name: "Tinola", Category: "Chicken", DishType: domain.DishTypeMain},
	}

	groups := GroupByCategory(dishes, domain.DishTypeMain)
	require.Len(t, groups, 2)

	assert.Equal(t, "Chicken", groups[0].Category)
	assert.Equal(t, []string{"2", "5"}, dishIDs(groups[0].Dishes))
	assert.Equal(t, "Pork", groups[1].Category)
	assert.Equal(t, []string{"1", "4"}, dishIDs(groups[1].Dishes))

	all := GroupByCategory(dishes, "")
	assert.Len(t, all, 3)

	assert.Empty(t, GroupByCategory(nil, domain.DishTypeMain))
}

func dishIDs(dishes []domain.Dish) []string {
	ids := make([]string, len(dishes))
	for i, d := range dishes {
		ids[i] = d.ID
	}
	return ids
}
