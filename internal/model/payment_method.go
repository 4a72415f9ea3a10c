package model

// PaymentMethodID identifies how a student pays for a course.
type PaymentMethodID string

const (
	PaymentCash       PaymentMethodID = "cash"
	PaymentCheck      PaymentMethodID = "check"
	PaymentCreditCard PaymentMethodID = "credit-card"
	PaymentZelle      PaymentMethodID = "zelle"
)

// PaymentMethod is a payment method catalog entry.
type PaymentMethod struct {
	ID          PaymentMethodID `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
}

var defaultPaymentMethods = []PaymentMethod{
	{ID: PaymentCash, Name: "Cash", Description: "In person only at the 1st session, receipt will be issued upon request"},
	{ID: PaymentCheck, Name: "Check", Description: "Payable to SA Driving School Inc"},
	{ID: PaymentCreditCard, Name: "Credit Card", Description: "Via Square (5% service fee applies)"},
	{ID: PaymentZelle, Name: "Zelle", Description: "Send to info@sadriving.com"},
}
