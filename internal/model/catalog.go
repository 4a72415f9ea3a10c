package model

// Catalog is an immutable set of lookup tables for courses and payment
// methods. Build it once with NewCatalog and share it freely.
type Catalog struct {
	courses        map[string]Course
	courseOrder    []string
	paymentMethods map[PaymentMethodID]PaymentMethod
	paymentOrder   []PaymentMethodID
}

// DefaultCatalog holds the courses and payment methods the school offers.
var DefaultCatalog = NewCatalog(defaultCourses, defaultPaymentMethods)

// NewCatalog builds a catalog. Display order follows the input slices; a
// later entry with a duplicate ID replaces the earlier one in place.
func NewCatalog(courses []Course, methods []PaymentMethod) *Catalog {
	c := &Catalog{
		courses:        make(map[string]Course, len(courses)),
		paymentMethods: make(map[PaymentMethodID]PaymentMethod, len(methods)),
	}
	for _, course := range courses {
		if _, exists := c.courses[course.ID]; !exists {
			c.courseOrder = append(c.courseOrder, course.ID)
		}
		c.courses[course.ID] = course
	}
	for _, m := range methods {
		if _, exists := c.paymentMethods[m.ID]; !exists {
			c.paymentOrder = append(c.paymentOrder, m.ID)
		}
		c.paymentMethods[m.ID] = m
	}
	return c
}

// Course looks up a course by ID.
func (c *Catalog) Course(id string) (Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// PaymentMethod looks up a payment method by ID.
func (c *Catalog) PaymentMethod(id PaymentMethodID) (PaymentMethod, bool) {
	m, ok := c.paymentMethods[id]
	return m, ok
}

// Courses returns a copy of the courses in display order.
func (c *Catalog) Courses() []Course {
	out := make([]Course, 0, len(c.courseOrder))
	for _, id := range c.courseOrder {
		out = append(out, c.courses[id])
	}
	return out
}

// PaymentMethods returns a copy of the payment methods in display order.
func (c *Catalog) PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, 0, len(c.paymentOrder))
	for _, id := range c.paymentOrder {
		out = append(out, c.paymentMethods[id])
	}
	return out
}
