package model

import (
	"time"

	"github.com/google/uuid"
)

// FormField names a RegistrationForm field by its JSON key.
type FormField string

const (
	FieldFirstName        FormField = "first_name"
	FieldLastName         FormField = "last_name"
	FieldEmail            FormField = "email"
	FieldStudentPhone     FormField = "student_phone"
	FieldParentPhone      FormField = "parent_phone"
	FieldAddress          FormField = "address"
	FieldPermitDateIssued FormField = "permit_date_issued"
	FieldDateOfBirth      FormField = "date_of_birth"
	FieldCourse           FormField = "course"
	FieldPaymentMethod    FormField = "payment_method"
	FieldComments         FormField = "comments"
)

// FieldMaxLength is the longest value, in characters, each field accepts.
// It matches the max binding tags on RegistrationForm and the column sizes
// of the registrations table.
var FieldMaxLength = map[FormField]int{
	FieldFirstName:        100,
	FieldLastName:         100,
	FieldEmail:            255,
	FieldStudentPhone:     50,
	FieldParentPhone:      50,
	FieldAddress:          500,
	FieldPermitDateIssued: 10,
	FieldDateOfBirth:      10,
	FieldCourse:           50,
	FieldPaymentMethod:    50,
	FieldComments:         5000,
}

// DateLayout is the layout of the permit and birth date fields.
const DateLayout = "2006-01-02"

// RegistrationForm is the state of one registration form. The zero value is
// an empty form. Binding tags only bound lengths; content rules are applied
// by the registration service.
type RegistrationForm struct {
	FirstName        string          `json:"first_name" binding:"max=100"`
	LastName         string          `json:"last_name" binding:"max=100"`
	Email            string          `json:"email" binding:"max=255"`
	StudentPhone     string          `json:"student_phone" binding:"max=50"`
	ParentPhone      string          `json:"parent_phone" binding:"max=50"`
	Address          string          `json:"address" binding:"max=500"`
	PermitDateIssued string          `json:"permit_date_issued" binding:"max=10"`
	DateOfBirth      string          `json:"date_of_birth" binding:"max=10"`
	Course           string          `json:"course" binding:"max=50"`
	PaymentMethod    PaymentMethodID `json:"payment_method" binding:"max=50"`
	Comments         string          `json:"comments" binding:"max=5000"`
}

// IsEmpty reports whether every field is blank.
func (f RegistrationForm) IsEmpty() bool {
	return f == RegistrationForm{}
}

// With returns a copy of f with one field set. ok is false for an unknown field.
func (f RegistrationForm) With(field FormField, value string) (RegistrationForm, bool) {
	switch field {
	case FieldFirstName:
		f.FirstName = value
	case FieldLastName:
		f.LastName = value
	case FieldEmail:
		f.Email = value
	case FieldStudentPhone:
		f.StudentPhone = value
	case FieldParentPhone:
		f.ParentPhone = value
	case FieldAddress:
		f.Address = value
	case FieldPermitDateIssued:
		f.PermitDateIssued = value
	case FieldDateOfBirth:
		f.DateOfBirth = value
	case FieldCourse:
		f.Course = value
	case FieldPaymentMethod:
		f.PaymentMethod = PaymentMethodID(value)
	case FieldComments:
		f.Comments = value
	default:
		return f, false
	}
	return f, true
}

// UpdateFieldRequest is the payload for setting one form field.
type UpdateFieldRequest struct {
	Field FormField `json:"field" binding:"required,max=50"`
	Value string    `json:"value" binding:"max=5000"`
}

// QuoteRequest is the payload for pricing a course.
type QuoteRequest struct {
	Course string `json:"course" binding:"required,max=50"`
}

// Registration is a successfully submitted form as recorded for the school.
type Registration struct {
	ID              uuid.UUID        `json:"id"`
	Form            RegistrationForm `json:"form"`
	CourseName      string           `json:"course_name"`
	AmountCents     int64            `json:"amount_cents"`
	ContactForPrice bool             `json:"contact_for_price"`
	SubmittedAt     time.Time        `json:"submitted_at"`
}
