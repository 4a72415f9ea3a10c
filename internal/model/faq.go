package model

// FAQ is a frequently asked question with its answer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQs lists the questions shown on the FAQ page, in display order.
var FAQs = []FAQ{
	{
		Question: "What areas do you serve?",
		Answer:   "We serve all of Loudoun County, Virginia and surrounding areas in Northern Virginia.",
	},
	{
		Question: "How do I schedule a driving lesson?",
		Answer:   "You can register online through our registration page, or call us directly to schedule your lessons at a time that works for you.",
	},
	{
		Question: "What do I need to bring to my first lesson?",
		Answer:   "Please bring your valid learner's permit or driver's license. We'll provide everything else you need for the lesson.",
	},
	{
		Question: "Can I cancel or reschedule a lesson?",
		Answer:   "Yes, we offer flexible rescheduling. Please contact us at least 24 hours in advance to reschedule without penalty.",
	},
	{
		Question: "How long does each driving lesson last?",
		Answer:   "Our standard driving lessons are typically 2 hours long, providing ample time for instruction and practice.",
	},
	{
		Question: "Do you provide a vehicle for the driving test?",
		Answer:   "Yes, we provide a fully insured, well-maintained vehicle for both lessons and the DMV road test.",
	},
}
