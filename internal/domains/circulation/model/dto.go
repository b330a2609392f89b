package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// BorrowRequest is the payload for borrowing an item. DurationDays zero
// means "use the default duration".
type BorrowRequest struct {
	PatronID     uuid.UUID `json:"patron_id"`
	ItemID       uuid.UUID `json:"item_id"`
	DurationDays int       `json:"duration_days,omitempty"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatronID,
			validation.By(uuidRequired("patron_id is required")),
		),
		validation.Field(&r.ItemID,
			validation.By(uuidRequired("item_id is required")),
		),
		validation.Field(&r.DurationDays,
			validation.Min(0),
			validation.Max(90).Error("duration_days must not exceed 90"),
		),
	)
}

// uuidRequired rejects the nil UUID. validation.Required cannot, because a
// fixed-size array is never empty.
func uuidRequired(msg string) validation.RuleFunc {
	return func(value interface{}) error {
		if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
			return errors.New(msg)
		}
		return nil
	}
}
