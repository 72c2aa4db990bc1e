package domain

import "github.com/google/uuid"

// DishTypeMain dishes counted against the main-dish cap
const DishTypeMain = "MAIN"

// Dish catalog entry
type Dish struct {
	ID          string
	Name        string
	Category    string
	DishType    string
	Description string
}

// MainDishPackage catering package; NumOfDishes is the dish cap of a selection
type MainDishPackage struct {
	ID          string
	Name        string
	NumOfDishes int
	Price       float64
	MinPax      int
	MaxPax      int
}

// AcceptsPax returns true if the guest count is within the package bounds
func (p *MainDishPackage) AcceptsPax(pax int) bool {
	return pax >= p.MinPax && (p.MaxPax == 0 || pax <= p.MaxPax)
}

// CateringSelection catering add-on of exactly one booking
type CateringSelection struct {
	BookingID      uuid.UUID
	PackageID      *string
	ExpectedPax    int
	SelectedDishes []string // unique dish ids in selection order
}

// Has returns true if the dish is selected
func (s *CateringSelection) Has(dishID string) bool {
	for _, id := range s.SelectedDishes {
		if id == dishID {
			return true
		}
	}
	return false
}

// Size returns the number of selected dishes
func (s *CateringSelection) Size() int {
	return len(s.SelectedDishes)
}
