package expense

import (
	"time"

	"github.com/frahmantamala/expense-dashboard/internal"
	"github.com/shopspring/decimal"
)

// SubmitDTO is the request payload for creating or updating an expense.
type SubmitDTO struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

const dateLayout = "2006-01-02"

// Today returns the calendar date forms default to.
func Today() string {
	return time.Now().Format(dateLayout)
}

// ParseAmount coerces raw user input into the wire amount. A value that does
// not parse is a request-level failure of the action, never a panic.
func ParseAmount(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, internal.NewValidationError("Invalid amount", internal.ErrCodeInvalidAmount).WithCause(err)
	}
	f, _ := d.Float64()
	return f, nil
}

// NewSubmitDTO builds the payload from raw form fields, coercing the amount.
func NewSubmitDTO(amountRaw, description, date string) (SubmitDTO, error) {
	amount, err := ParseAmount(amountRaw)
	if err != nil {
		return SubmitDTO{}, err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return SubmitDTO{}, internal.NewValidationError("Invalid date", internal.ErrCodeInvalidDate).WithCause(err)
	}
	return SubmitDTO{Amount: amount, Description: description, Date: date}, nil
}
