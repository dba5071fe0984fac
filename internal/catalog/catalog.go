// Package catalog holds the fixed list of events the platform is seeded with.
package catalog

import (
	"time"

	"github.com/Shivanand-hulikatti/cosmo-events/internal/model"
)

const imageBase = "images/"

// Default returns a fresh copy of the seed events, in display order.
// Counters start at zero on every call.
func Default() []*model.Event {
	return []*model.Event{
		model.NewPaidEvent(1, "Contour & Highlight Masterclass", date(2026, time.March, 15), "Central Auditorium", 120.00,
			"Advanced contouring and strobing techniques with luxury products.", imageBase+"event1.jpg"),
		model.NewFreeEvent(2, "Korean Skincare Workshop", date(2026, time.April, 1), "Virtual Room - Zoom",
			"A complete 10-step routine for porcelain skin.", imageBase+"event2.png"),
		model.NewPaidEvent(3, "Beauty Networking Dinner", date(2026, time.April, 20), "Hotel The Luxury", 25.00,
			"Meet makeup artists and beauty bloggers. Cocktail included.", imageBase+"event3.png"),
		model.NewFreeEvent(4, "Perfect Brows Session", date(2026, time.May, 10), "GLAMOUR Store",
			"Learn to shape and fill your brows like a professional.", imageBase+"event4.png"),
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
