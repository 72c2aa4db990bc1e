package models

import (
	"github.com/google/uuid"

	coreCatering "github.com/m04kA/SMC-VenueBooking/internal/core/catering"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// Request модели

// SelectPackageRequest запрос на выбор пакета кейтеринга
type SelectPackageRequest struct {
	PackageID   string `json:"packageId"`
	ExpectedPax int    `json:"expectedPax"`
}

// Response модели

// DishResponse блюдо каталога
type DishResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	DishType    string `json:"dishType"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse блюда одной категории
type CategoryResponse struct {
	Category string         `json:"category"`
	Dishes   []DishResponse `json:"dishes"`
}

// MenuResponse меню основных блюд, сгруппированное по категориям
type MenuResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// PackageResponse пакет кейтеринга
type PackageResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	NumOfDishes int     `json:"numOfDishes"`
	Price       float64 `json:"price"`
	MinPax      int     `json:"minPax"`
	MaxPax      int     `json:"maxPax,omitempty"` // 0 - без ограничения
}

// PackagesResponse список пакетов
type PackagesResponse struct {
	Packages []PackageResponse `json:"packages"`
}

// SelectionResponse выбор кейтеринга бронирования
type SelectionResponse struct {
	BookingID      uuid.UUID `json:"bookingId"`
	PackageID      *string   `json:"packageId,omitempty"`
	ExpectedPax    int       `json:"expectedPax"`
	SelectedDishes []string  `json:"selectedDishes"`
	MaxDishes      int       `json:"maxDishes"`
	Remaining      int       `json:"remaining"`
	Editable       bool      `json:"editable"`
}

// Методы конвертации

// FromDomainDish конвертирует блюдо в DTO
func FromDomainDish(d domain.Dish) DishResponse {
	return DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		DishType:    d.DishType,
		Description: d.Description,
	}
}

// FromCategoryGroups конвертирует группы блюд в DTO
func FromCategoryGroups(groups []coreCatering.CategoryGroup) *MenuResponse {
	resp := &MenuResponse{Categories: make([]CategoryResponse, 0, len(groups))}
	for _, g := range groups {
		dishes := make([]DishResponse, 0, len(g.Dishes))
		for _, d := range g.Dishes {
			dishes = append(dishes, FromDomainDish(d))
		}
		resp.Categories = append(resp.Categories, CategoryResponse{Category: g.Category, Dishes: dishes})
	}
	return resp
}

// FromDomainPackages конвертирует пакеты в DTO
func FromDomainPackages(packages []domain.MainDishPackage) *PackagesResponse {
	resp := &PackagesResponse{Packages: make([]PackageResponse, 0, len(packages))}
	for _, p := range packages {
		resp.Packages = append(resp.Packages, PackageResponse{
			ID:          p.ID,
			Name:        p.Name,
			NumOfDishes: p.NumOfDishes,
			Price:       p.Price,
			MinPax:      p.MinPax,
			MaxPax:      p.MaxPax,
		})
	}
	return resp
}

// FromDomainSelection конвертирует выбор кейтеринга в DTO
func FromDomainSelection(sel *domain.CateringSelection, maxDishes int, editable bool) *SelectionResponse {
	dishes := sel.SelectedDishes
	if dishes == nil {
		dishes = make([]string, 0)
	}
	return &SelectionResponse{
		BookingID:      sel.BookingID,
		PackageID:      sel.PackageID,
		ExpectedPax:    sel.ExpectedPax,
		SelectedDishes: dishes,
		MaxDishes:      maxDishes,
		Remaining:      coreCatering.Remaining(*sel, maxDishes),
		Editable:       editable,
	}
}
