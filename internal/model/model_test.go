package model

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuote_Dollars(t *testing.T) {
	require.Equal(t, "$105", AmountQuote(10500).Dollars())
	require.Equal(t, "$157.5", AmountQuote(15750).Dollars())
	require.Equal(t, "$0.5", AmountQuote(50).Dollars())
	require.Equal(t, "$183.75", AmountQuote(18375).Dollars())
	require.Equal(t, "$0.05", AmountQuote(5).Dollars())
}

func TestQuote_JSON(t *testing.T) {
	tests := []struct {
		quote Quote
		want  string
	}{
		{NoQuote(), `null`},
		{ContactUsQuote(), `"Contact Us"`},
		{AmountQuote(10500), `105`},
		{AmountQuote(15750), `157.5`},
	}
	for _, tt := range tests {
		raw, err := json.Marshal(tt.quote)
		require.NoError(t, err)
		require.JSONEq(t, tt.want, string(raw))
	}
}

func TestCourse_JSON(t *testing.T) {
	raw, err := json.Marshal(Course{ID: "road-test", Name: "Road Test", Description: "Package", ContactForPrice: true})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"road-test","name":"Road Test","description":"Package","price":"Contact Us"}`, string(raw))
}

func TestDefaultCatalog(t *testing.T) {
	courses := DefaultCatalog.Courses()
	require.Len(t, courses, 9)
	require.Equal(t, CourseTeenBehindTheWheel, courses[0].ID)
	require.Equal(t, CourseFiveLessons, courses[8].ID)

	feedback, ok := DefaultCatalog.Course(CourseFeedback)
	require.True(t, ok)
	require.Equal(t, AmountQuote(10500), feedback.Quote())

	_, ok = DefaultCatalog.Course("race-car")
	require.False(t, ok)

	methods := DefaultCatalog.PaymentMethods()
	require.Equal(t, []PaymentMethodID{PaymentCash, PaymentCheck, PaymentCreditCard, PaymentZelle},
		[]PaymentMethodID{methods[0].ID, methods[1].ID, methods[2].ID, methods[3].ID})

	zelle, ok := DefaultCatalog.PaymentMethod(PaymentZelle)
	require.True(t, ok)
	require.Equal(t, "Send to info@sadriving.com", zelle.Description)
}

func TestCatalog_ListingsAreCopies(t *testing.T) {
	catalog := NewCatalog([]Course{{ID: "a", Name: "A"}}, []PaymentMethod{{ID: PaymentCash, Name: "Cash"}})

	courses := catalog.Courses()
	courses[0].Name = "changed"
	methods := catalog.PaymentMethods()
	methods[0].Name = "changed"

	a, _ := catalog.Course("a")
	require.Equal(t, "A", a.Name)
	cash, _ := catalog.PaymentMethod(PaymentCash)
	require.Equal(t, "Cash", cash.Name)
}

func TestNewCatalog_DuplicateIDKeepsFirstPosition(t *testing.T) {
	catalog := NewCatalog([]Course{
		{ID: "a", Name: "first"},
		{ID: "b", Name: "B"},
		{ID: "a", Name: "second"},
	}, nil)

	courses := catalog.Courses()
	require.Len(t, courses, 2)
	require.Equal(t, "second", courses[0].Name)
	require.Equal(t, "b", courses[1].ID)
}

func TestRegistrationForm_With(t *testing.T) {
	var form RegistrationForm
	require.True(t, form.IsEmpty())

	form, ok := form.With(FieldParentPhone, "555-0101")
	require.True(t, ok)
	require.Equal(t, "555-0101", form.ParentPhone)
	require.False(t, form.IsEmpty())

	form, ok = form.With(FieldPaymentMethod, "check")
	require.True(t, ok)
	require.Equal(t, PaymentCheck, form.PaymentMethod)

	_, ok = form.With("favorite_color", "blue")
	require.False(t, ok)
}

func TestFAQs(t *testing.T) {
	require.Len(t, FAQs, 6)
	for _, faq := range FAQs {
		require.NotEmpty(t, faq.Question)
		require.NotEmpty(t, faq.Answer)
	}
}

func TestFieldMaxLength_MatchesBindingTags(t *testing.T) {
	typ := reflect.TypeOf(RegistrationForm{})
	require.Len(t, FieldMaxLength, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		name := FormField(strings.SplitN(fld.Tag.Get("json"), ",", 2)[0])

		var tagMax int
		for _, rule := range strings.Split(fld.Tag.Get("binding"), ",") {
			if v, ok := strings.CutPrefix(rule, "max="); ok {
				n, err := strconv.Atoi(v)
				require.NoError(t, err)
				tagMax = n
			}
		}

		limit, ok := FieldMaxLength[name]
		require.True(t, ok, "no limit for %s", name)
		require.Equal(t, tagMax, limit, "limit for %s", name)
	}
}
