// File: models/home.go
package models

// HeroSlide is one frame of the home-page carousel.
type HeroSlide struct {
	Title    string
	Subtitle string
	Image    string
	CTA      string
	CTALink  string
}

// Feature is a tile of the home-page feature grid.
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Testimonial is a quote shown on the home page.
type Testimonial struct {
	Quote  string
	Author string
	Role   string
}

// HeroSlides is the carousel content, in display order.
var HeroSlides = []HeroSlide{
	{
		Title:    "Discover Tech Events Near You",
		Subtitle: "Hackathons, workshops and conferences in one place.",
		Image:    "/static/images/hero-discover.jpg",
		CTA:      "Browse events",
		CTALink:  "/events",
	},
	{
		Title:    "Host Your Next Hackathon",
		Subtitle: "Publish an event, set a deadline and cap the seats in minutes.",
		Image:    "/static/images/hero-host.jpg",
		CTA:      "Create an organization account",
		CTALink:  "/signup",
	},
	{
		Title:    "Learn, Build, Win",
		Subtitle: "Meet speakers and judges from the companies you admire.",
		Image:    "/static/images/hero-learn.jpg",
		CTA:      "Join as a participant",
		CTALink:  "/signup",
	},
}

// Features is the feature grid content.
var Features = []Feature{
	{Icon: "🔎", Title: "Find events", Description: "Filter by type, location and date to find the right event."},
	{Icon: "📝", Title: "Register fast", Description: "One click registration with your saved profile."},
	{Icon: "🏆", Title: "Compete for prizes", Description: "See prize pools, judges and schedules up front."},
	{Icon: "📣", Title: "Organize", Description: "Organizations publish events and track registrations."},
	{Icon: "🎤", Title: "Meet speakers", Description: "Every talk lists its speaker and time slot."},
	{Icon: "🔒", Title: "Stay in control", Description: "Edit your profile any time from your dashboard."},
}

// Testimonials is the testimonials section content.
var Testimonials = []Testimonial{
	{Quote: "We filled our hackathon in two days.", Author: "Priya S.", Role: "Community lead"},
	{Quote: "Finally one place to find every workshop in town.", Author: "Arjun M.", Role: "CS student"},
	{Quote: "Setting deadlines and capacity just works.", Author: "Neha K.", Role: "Event organizer"},
}

// HomeEventLimit is how many events the home page shows.
const HomeEventLimit = 6
