package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AddItemRequest is the payload for registering a new catalog item.
type AddItemRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("isbn is required"),
			validation.Length(1, 32),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("quantity must not be negative"),
			validation.Max(10000),
		),
	)
}

// ListItemsRequest carries the query parameters of the availability listing.
type ListItemsRequest struct {
	Title      string `form:"title"`
	Author     string `form:"author"`
	ISBNPrefix string `form:"isbn_prefix"`
}

func (r ListItemsRequest) ToFilter() Filter {
	return Filter{
		Title:      r.Title,
		Author:     r.Author,
		ISBNPrefix: r.ISBNPrefix,
	}
}
