package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/model"
)

// MinimumAge is the youngest age, in calendar years, allowed to register.
const MinimumAge = 15

// Validation messages, in rule order.
const (
	MsgSelectCourse        = "Please select a course"
	MsgFullName            = "Please enter your full name"
	MsgValidEmail          = "Please enter a valid email address"
	MsgStudentPhone        = "Please enter student phone number"
	MsgAddress             = "Please enter address"
	MsgPermitDateIssued    = "Please enter permit date issued"
	MsgDateOfBirth         = "Please enter date of birth"
	MsgSelectPaymentMethod = "Please select a payment method"
	MsgMinimumAge          = "You must be at least 15 years old to register"
)

const (
	SubmitLabelInquiry      = "Submit Inquiry"
	SubmitLabelRegistration = "Complete Registration"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notifier receives user-facing notifications.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification)
}

// Charge describes what a payment processor is asked to collect.
type Charge struct {
	RegistrationID uuid.UUID
	Course         model.Course
	PaymentMethod  model.PaymentMethod
	Quote          model.Quote
	Email          string
}

// PaymentProcessor collects payment for a registration.
type PaymentProcessor interface {
	Process(ctx context.Context, charge Charge) error
}

// PaymentProcessorFunc adapts a function to PaymentProcessor.
type PaymentProcessorFunc func(ctx context.Context, charge Charge) error

func (f PaymentProcessorFunc) Process(ctx context.Context, charge Charge) error {
	return f(ctx, charge)
}

// RegistrationRecorder stores successful registrations for the school.
type RegistrationRecorder interface {
	Record(ctx context.Context, reg *model.Registration) error
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *model.Registration) error { return nil }

// Outcome is the result of a submission attempt. Form is the form state the
// user sees afterwards: empty after success, unchanged after a failure.
type Outcome struct {
	Form         model.RegistrationForm `json:"form"`
	Quote        model.Quote            `json:"total_price"`
	Notification model.Notification     `json:"notification"`
	Registration *model.Registration    `json:"registration,omitempty"`
}

// RegistrationService validates, prices and submits registration forms.
type RegistrationService struct {
	catalog   *model.Catalog
	processor PaymentProcessor
	recorder  RegistrationRecorder
	notifier  Notifier
	now       func() time.Time
	log       zerolog.Logger
}

// NewRegistrationService creates a new RegistrationService. A nil recorder
// discards registrations; a nil clock means time.Now.
func NewRegistrationService(
	catalog *model.Catalog,
	processor PaymentProcessor,
	recorder RegistrationRecorder,
	notifier Notifier,
	now func() time.Time,
	log zerolog.Logger,
) *RegistrationService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if now == nil {
		now = time.Now
	}
	return &RegistrationService{
		catalog:   catalog,
		processor: processor,
		recorder:  recorder,
		notifier:  notifier,
		now:       now,
		log:       log.With().Str("component", "registration_service").Logger(),
	}
}

// Catalog returns the catalog the service prices against.
func (s *RegistrationService) Catalog() *model.Catalog {
	return s.catalog
}

// UpdateField returns a copy of form with one field set. Content is not
// validated, but values may not exceed the field's length limit and course
// and payment method values must exist in the catalog (empty clears the
// selection).
func (s *RegistrationService) UpdateField(form model.RegistrationForm, field model.FormField, value string) (model.RegistrationForm, error) {
	if limit, ok := model.FieldMaxLength[field]; ok && utf8.RuneCountInString(value) > limit {
		return form, fmt.Errorf("%w: %s is limited to %d characters", ErrFieldTooLong, field, limit)
	}

	switch field {
	case model.FieldCourse:
		if _, ok := s.catalog.Course(value); value != "" && !ok {
			return form, fmt.Errorf("%w: %q", ErrUnknownCourse, value)
		}
	case model.FieldPaymentMethod:
		if _, ok := s.catalog.PaymentMethod(model.PaymentMethodID(value)); value != "" && !ok {
			return form, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, value)
		}
	}

	updated, ok := form.With(field, value)
	if !ok {
		return form, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return updated, nil
}

// ComputeTotalPrice returns the price of the selected course.
func (s *RegistrationService) ComputeTotalPrice(form model.RegistrationForm) model.Quote {
	course, ok := s.catalog.Course(form.Course)
	if form.Course == "" || !ok {
		return model.NoQuote()
	}
	return course.Quote()
}

// SubmitLabel is the text of the submit button for the form.
func (s *RegistrationService) SubmitLabel(form model.RegistrationForm) string {
	if s.ComputeTotalPrice(form).Kind == model.QuoteContactUs {
		return SubmitLabelInquiry
	}
	return SubmitLabelRegistration
}

type rule struct {
	message string
	ok      func(s *RegistrationService, f model.RegistrationForm) bool
}

// rules are checked in order; the first failure is reported.
var rules = []rule{
	{MsgSelectCourse, func(s *RegistrationService, f model.RegistrationForm) bool {
		_, ok := s.catalog.Course(f.Course)
		return f.Course != "" && ok
	}},
	{MsgFullName, func(_ *RegistrationService, f model.RegistrationForm) bool {
		return strings.TrimSpace(f.FirstName) != "" && strings.TrimSpace(f.LastName) != ""
	}},
	{MsgValidEmail, func(_ *RegistrationService, f model.RegistrationForm) bool {
		return emailPattern.MatchString(f.Email)
	}},
	{MsgStudentPhone, func(_ *RegistrationService, f model.RegistrationForm) bool {
		return strings.TrimSpace(f.StudentPhone) != ""
	}},
	{MsgAddress, func(_ *RegistrationService, f model.RegistrationForm) bool {
		return strings.TrimSpace(f.Address) != ""
	}},
	{MsgPermitDateIssued, func(_ *RegistrationService, f model.RegistrationForm) bool {
		_, ok := parseDate(f.PermitDateIssued)
		return ok
	}},
	{MsgDateOfBirth, func(_ *RegistrationService, f model.RegistrationForm) bool {
		_, ok := parseDate(f.DateOfBirth)
		return ok
	}},
	{MsgSelectPaymentMethod, func(s *RegistrationService, f model.RegistrationForm) bool {
		_, ok := s.catalog.PaymentMethod(f.PaymentMethod)
		return f.PaymentMethod != "" && ok
	}},
	{MsgMinimumAge, func(s *RegistrationService, f model.RegistrationForm) bool {
		birth, _ := parseDate(f.DateOfBirth)
		return s.now().Year()-birth.Year() >= MinimumAge
	}},
}

// Validate returns the first violated rule, or nil if the form is complete.
func (s *RegistrationService) Validate(form model.RegistrationForm) *ValidationError {
	for _, r := range rules {
		if !r.ok(s, form) {
			return &ValidationError{Message: r.message}
		}
	}
	return nil
}

// Submit validates the form, collects payment and records the registration.
// Every outcome is also sent to the notifier. On success the returned
// outcome carries an empty form.
func (s *RegistrationService) Submit(ctx context.Context, form model.RegistrationForm) (*Outcome, error) {
	quote := s.ComputeTotalPrice(form)

	if verr := s.Validate(form); verr != nil {
		n := model.Notification{Title: "Error", Description: verr.Message, Severity: model.SeverityDestructive}
		s.notifier.Notify(ctx, n)
		return &Outcome{Form: form, Quote: quote, Notification: n}, verr
	}

	course, _ := s.catalog.Course(form.Course)
	method, _ := s.catalog.PaymentMethod(form.PaymentMethod)

	reg := &model.Registration{
		ID:              uuid.New(),
		Form:            form,
		CourseName:      course.Name,
		AmountCents:     quote.AmountCents,
		ContactForPrice: quote.Kind == model.QuoteContactUs,
	}

	charge := Charge{
		RegistrationID: reg.ID,
		Course:         course,
		PaymentMethod:  method,
		Quote:          quote,
		Email:          form.Email,
	}
	if err := s.processor.Process(ctx, charge); err != nil {
		return s.fail(ctx, form, quote, fmt.Errorf("process payment: %w", err))
	}

	reg.SubmittedAt = s.now().UTC()
	if err := s.recorder.Record(ctx, reg); err != nil {
		return s.fail(ctx, form, quote, fmt.Errorf("record registration: %w", err))
	}

	n := model.Notification{
		Title:       "Registration Successful!",
		Description: successMessage(method.ID, course, quote),
		Severity:    model.SeverityDefault,
	}
	s.notifier.Notify(ctx, n)

	s.log.Info().
		Str("registration_id", reg.ID.String()).
		Str("course", course.ID).
		Str("payment_method", string(method.ID)).
		Str("total", quote.String()).
		Msg("Registration submitted")

	return &Outcome{Form: model.RegistrationForm{}, Quote: quote, Notification: n, Registration: reg}, nil
}

func (s *RegistrationService) fail(ctx context.Context, form model.RegistrationForm, quote model.Quote, err error) (*Outcome, error) {
	s.log.Error().Err(err).Str("course", form.Course).Msg("Registration submission failed")

	n := model.Notification{
		Title:       "Payment Failed",
		Description: "There was an error processing your payment. Please try again.",
		Severity:    model.SeverityDestructive,
	}
	s.notifier.Notify(ctx, n)
	return &Outcome{Form: form, Quote: quote, Notification: n}, &SubmissionError{Err: err}
}

func successMessage(method model.PaymentMethodID, course model.Course, quote model.Quote) string {
	if quote.Kind == model.QuoteContactUs {
		return fmt.Sprintf("Inquiry received! We will contact you with pricing for %s.", course.Name)
	}

	total := quote.Dollars()
	switch method {
	case model.PaymentCash:
		return fmt.Sprintf("Registration successful! Please bring %s in cash to your first session.", total)
	case model.PaymentCheck:
		return fmt.Sprintf("Registration successful! Please bring a check for %s payable to SA Driving School Inc.", total)
	case model.PaymentZelle:
		return fmt.Sprintf("Registration successful! Please send %s via Zelle to info@sadriving.com", total)
	case model.PaymentCreditCard:
		return "Payment Successful! Thank you for choosing SA Driving School."
	default:
		return "Registration successful!"
	}
}

// parseDate reads a YYYY-MM-DD field. Blank or malformed input counts as absent.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
