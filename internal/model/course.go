package model

import (
	"encoding/json"
)

// Course identifiers offered by the school.
const (
	CourseTeenBehindTheWheel = "teen-btw"
	CourseAdultWaiver        = "adult-waiver"
	CourseOnlineAdult        = "online-adult"
	CourseOnlineTeen         = "online-teen"
	CourseFeedback           = "feedback"
	CourseTwoLessons         = "2-lessons"
	CourseThreeLessons       = "3-lessons"
	CourseFourLessons        = "4-lessons"
	CourseFiveLessons        = "5-lessons"
)

// Course is a catalog entry. When ContactForPrice is set the course has no
// listed price and PriceCents is ignored.
type Course struct {
	ID              string
	Name            string
	Description     string
	PriceCents      int64
	ContactForPrice bool
}

// Quote returns the price of the course as a Quote.
func (c Course) Quote() Quote {
	if c.ContactForPrice {
		return ContactUsQuote()
	}
	return AmountQuote(c.PriceCents)
}

// MarshalJSON encodes the course with its price as dollars, or "Contact Us".
func (c Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       Quote  `json:"price"`
	}{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Quote(),
	})
}

var defaultCourses = []Course{
	{ID: CourseTeenBehindTheWheel, Name: "Teen License Behind the Wheel", Description: "Complete teen driving program", PriceCents: 42000},
	{ID: CourseAdultWaiver, Name: "Adult License Waiver Course", Description: "Complete waiver program", PriceCents: 42000},
	{ID: CourseOnlineAdult, Name: "Online Drivers Education - Adult", Description: "Complete online course", PriceCents: 15750},
	{ID: CourseOnlineTeen, Name: "Online Drivers Education - Teen", Description: "Complete online course", PriceCents: 18375},
	{ID: CourseFeedback, Name: "Feedback Driving Lesson", Description: "Single feedback session", PriceCents: 10500},
	{ID: CourseTwoLessons, Name: "2 Driving Lessons", Description: "Package of 2 lessons", PriceCents: 19950},
	{ID: CourseThreeLessons, Name: "3 Driving Lessons", Description: "Package of 3 lessons", PriceCents: 28350},
	{ID: CourseFourLessons, Name: "4 Driving Lessons", Description: "Package of 4 lessons", PriceCents: 37800},
	{ID: CourseFiveLessons, Name: "5 Driving Lessons", Description: "Package of 5 lessons", PriceCents: 47250},
}
