package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RegisterRequest_Valid(t *testing.T) {
	req := RegisterRequest{Name: "Alice", Email: "alice@example.com", Phone: "555-0100"}
	assert.NoError(t, req.Validate())
}

func Test_RegisterRequest_PhoneIsOptional(t *testing.T) {
	req := RegisterRequest{Name: "Alice", Email: "alice@example.com"}
	assert.NoError(t, req.Validate())
}

func Test_RegisterRequest_RejectsBadInput(t *testing.T) {
	cases := map[string]RegisterRequest{
		"missing name":   {Email: "alice@example.com"},
		"missing email":  {Name: "Alice"},
		"invalid email":  {Name: "Alice", Email: "not-an-email"},
		"name too short": {Name: "A", Email: "alice@example.com"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, req.Validate())
		})
	}
}

func Test_Patron_CanBorrow(t *testing.T) {
	patron := Patron{ActiveLoans: 0}
	assert.True(t, patron.CanBorrow())

	patron.ActiveLoans = MaxActiveLoans - 1
	assert.True(t, patron.CanBorrow())

	patron.ActiveLoans = MaxActiveLoans
	assert.False(t, patron.CanBorrow())
}
