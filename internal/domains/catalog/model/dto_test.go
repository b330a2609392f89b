package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAddItemRequest() AddItemRequest {
	return AddItemRequest{
		Title:    "Dune",
		Author:   "Frank Herbert",
		ISBN:     "9780441013593",
		Quantity: 3,
	}
}

func Test_AddItemRequest_Valid(t *testing.T) {
	assert.NoError(t, validAddItemRequest().Validate())
}

func Test_AddItemRequest_RejectsMissingFields(t *testing.T) {
	cases := map[string]func(*AddItemRequest){
		"empty title":  func(r *AddItemRequest) { r.Title = "" },
		"empty author": func(r *AddItemRequest) { r.Author = "" },
		"empty isbn":   func(r *AddItemRequest) { r.ISBN = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validAddItemRequest()
			mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func Test_AddItemRequest_RejectsNegativeQuantity(t *testing.T) {
	req := validAddItemRequest()
	req.Quantity = -1
	assert.Error(t, req.Validate())
}

func Test_AddItemRequest_AllowsZeroQuantity(t *testing.T) {
	req := validAddItemRequest()
	req.Quantity = 0
	assert.NoError(t, req.Validate())
}

func Test_ListItemsRequest_ToFilter(t *testing.T) {
	req := ListItemsRequest{Title: "Dune", Author: "Herbert", ISBNPrefix: "978"}
	filter := req.ToFilter()

	assert.Equal(t, "Dune", filter.Title)
	assert.Equal(t, "Herbert", filter.Author)
	assert.Equal(t, "978", filter.ISBNPrefix)
	assert.False(t, filter.IsEmpty())
	assert.True(t, ListItemsRequest{}.ToFilter().IsEmpty())
}
