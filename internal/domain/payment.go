package domain

import (
	"fmt"
	"strings"
	"time"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodJazzCash   PaymentMethod = "JAZZCASH"
	PaymentMethodEasypaisa  PaymentMethod = "EASYPAISA"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s))); m {
	case PaymentMethodCreditCard, PaymentMethodJazzCash, PaymentMethodEasypaisa:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unsupported payment method %q", ErrInvalidInput, s)
	}
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID              string
	BookingID       string
	AmountCents     int64
	Method          PaymentMethod
	Status          PaymentStatus
	TransactionDate time.Time
}
