package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_BorrowRequest_Valid(t *testing.T) {
	req := BorrowRequest{PatronID: uuid.New(), ItemID: uuid.New(), DurationDays: 14}
	assert.NoError(t, req.Validate())
}

func Test_BorrowRequest_ZeroDurationMeansDefault(t *testing.T) {
	req := BorrowRequest{PatronID: uuid.New(), ItemID: uuid.New()}
	assert.NoError(t, req.Validate())
}

func Test_BorrowRequest_RejectsNilIDs(t *testing.T) {
	assert.Error(t, BorrowRequest{ItemID: uuid.New()}.Validate())
	assert.Error(t, BorrowRequest{PatronID: uuid.New()}.Validate())
}

func Test_BorrowRequest_RejectsExcessiveDuration(t *testing.T) {
	req := BorrowRequest{PatronID: uuid.New(), ItemID: uuid.New(), DurationDays: 91}
	assert.Error(t, req.Validate())
}

func Test_Loan_IsOverdue(t *testing.T) {
	now := time.Now()

	active := Loan{Status: LoanStatusActive, DueAt: now.AddDate(0, 0, -1)}
	assert.True(t, active.IsOverdue(now))

	notYetDue := Loan{Status: LoanStatusActive, DueAt: now.AddDate(0, 0, 1)}
	assert.False(t, notYetDue.IsOverdue(now))

	returnedAt := now.AddDate(0, 0, -1)
	returned := Loan{Status: LoanStatusReturned, DueAt: now.AddDate(0, 0, -2), ReturnedAt: &returnedAt}
	assert.False(t, returned.IsOverdue(now))
}
