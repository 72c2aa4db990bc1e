package accountservice

import (
	"strings"

	"github.com/google/uuid"
)

// Account модель учетной записи из AccountService
type Account struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// FullName имя и фамилия через пробел
func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
