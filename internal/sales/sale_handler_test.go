package sales

import (
	"testing"
	"time"

	"agrostore-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentCashSale(t *testing.T) {
	status, paid, remaining, dueDate := derivePayment(1000, false, 0, "")

	assert.Equal(t, models.PaymentCash, status)
	assert.Equal(t, 1000.0, paid)
	assert.Zero(t, remaining)
	assert.Nil(t, dueDate)
}

func TestDerivePaymentFullLoan(t *testing.T) {
	status, paid, remaining, dueDate := derivePayment(1000, true, 0, "2025-12-01")

	assert.Equal(t, models.PaymentLoan, status)
	assert.Zero(t, paid)
	assert.Equal(t, 1000.0, remaining)
	if assert.NotNil(t, dueDate) {
		assert.Equal(t, "2025-12-01", *dueDate)
	}
}

func TestDerivePaymentPartial(t *testing.T) {
	status, paid, remaining, dueDate := derivePayment(1000, true, 400, "")

	assert.Equal(t, models.PaymentPartial, status)
	assert.Equal(t, 400.0, paid)
	assert.Equal(t, 600.0, remaining)
	assert.Nil(t, dueDate)
}

func TestDerivePaymentLoanPaidInFull(t *testing.T) {
	// Marked as a loan but nothing left to pay: collapses to cash.
	status, _, remaining, _ := derivePayment(1000, true, 1000, "")

	assert.Equal(t, models.PaymentCash, status)
	assert.Zero(t, remaining)
}

func TestLoanStatus(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	nextWeek := now.AddDate(0, 0, 7).Format("2006-01-02")

	assert.Equal(t, "overdue", loanStatus(models.Sale{RemainingAmount: 100, DueDate: &yesterday}, now))
	assert.Equal(t, "pending", loanStatus(models.Sale{RemainingAmount: 100, DueDate: &nextWeek}, now))
	assert.Equal(t, "partial", loanStatus(models.Sale{RemainingAmount: 100, AmountPaid: 50}, now))
	assert.Equal(t, "pending", loanStatus(models.Sale{RemainingAmount: 100}, now))
}
