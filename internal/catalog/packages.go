// Package catalog holds the builtin tour package data served while the
// database has no package rows, and used by the seed command to populate it.
// Builtin entries carry short numeric identifiers that must never be stored
// as foreign references on an inquiry.
package catalog

import "github.com/MirBabaTravels/booking_svc/internal/model"

// Packages returns a fresh copy of the builtin tour package catalog.
func Packages() []model.TourPackage {
	packages := make([]model.TourPackage, len(builtinPackages))
	copy(packages, builtinPackages)
	return packages
}

// PackageBySlug returns the builtin package with the given slug.
func PackageBySlug(slug string) (model.TourPackage, bool) {
	for _, tourPackage := range builtinPackages {
		if tourPackage.Slug == slug {
			return tourPackage, true
		}
	}
	return model.TourPackage{}, false
}

var builtinPackages = []model.TourPackage{
	{
		ID:            "1",
		Title:         "Kashmir Delight",
		Slug:          "kashmir-delight",
		Duration:      "5D/4N",
		Price:         12500,
		Location:      "Srinagar, Gulmarg, Pahalgam",
		Description:   "Experience the best of Kashmir in 5 days. Visit the famous Dal Lake, the meadows of Gulmarg, and the valleys of Pahalgam.",
		Inclusions:    []string{"Accommodation in 3-star hotels", "Daily Breakfast & Dinner", "All transfers by private cab", "Shikara Ride on Dal Lake", "Toll taxes and parking"},
		Exclusions:    []string{"Airfare", "Lunch", "Personal expenses", "Pony rides / Activities", "GST"},
		FeaturedImage: "https://images.unsplash.com/photo-1566837945700-30057527ade0?q=80&w=2070&auto=format&fit=crop",
		IsPopular:     true,
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Arrival in Srinagar", Description: "Pickup from airport, transfer to Houseboat. Evening Shikara ride."},
			{Day: 2, Title: "Srinagar to Gulmarg", Description: "Day trip to Gulmarg. Enjoy Gondola ride (optional)."},
			{Day: 3, Title: "Srinagar to Pahalgam", Description: "Drive to Pahalgam. Visit Aru Valley and Betaab Valley."},
			{Day: 4, Title: "Pahalgam to Srinagar", Description: "Return to Srinagar. Local sightseeing (Mughal Gardens)."},
			{Day: 5, Title: "Departure", Description: "Transfer to airport for departure."},
		},
	},
	{
		ID:            "2",
		Title:         "Magical Kashmir",
		Slug:          "magical-kashmir",
		Duration:      "6D/5N",
		Price:         15500,
		Location:      "Srinagar, Gulmarg, Pahalgam, Sonmarg",
		Description:   "A comprehensive 6-day tour covering all major destinations including the Golden Meadow, Sonmarg.",
		Inclusions:    []string{"Accommodation in 3-star hotels", "Daily Breakfast & Dinner", "Private Cab for 6 days", "Shikara Ride", "All sightseeing"},
		Exclusions:    []string{"Airfare", "Lunch", "Gondola Tickets", "Garden Entry Fees", "Tips"},
		FeaturedImage: "https://images.unsplash.com/photo-1598091383021-15ddea10925d?q=80&w=2070&auto=format&fit=crop",
		IsPopular:     true,
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Arrival", Description: "Welcome to Srinagar. Transfer to Hotel."},
			{Day: 2, Title: "Sonmarg Day Trip", Description: "Full day excursion to Sonmarg (Thajiwas Glacier)."},
			{Day: 3, Title: "Gulmarg Excursion", Description: "Day trip to Gulmarg for snow activities."},
			{Day: 4, Title: "Pahalgam Stay", Description: "Drive to Pahalgam and overnight stay."},
			{Day: 5, Title: "Return to Srinagar", Description: "Back to Srinagar. Shopping and leisure."},
			{Day: 6, Title: "Departure", Description: "Drop at Airport."},
		},
	},
	{
		ID:            "3",
		Title:         "Winter Wonderland",
		Slug:          "winter-wonderland",
		Duration:      "5D/4N",
		Price:         18999,
		Location:      "Gulmarg, Pahalgam",
		Description:   "Special winter package focused on snow activities and skiing in Gulmarg.",
		Inclusions:    []string{"Heated Accommodation", "Daily Breakfast & Dinner", "Snow Chains Vehicle", "Ski Equipment Rental Discount"},
		Exclusions:    []string{"Ski Instructor", "Gondola Phase 2", "Lunch"},
		FeaturedImage: "https://images.unsplash.com/photo-1480497490787-505ec076689f?q=80&w=2069&auto=format&fit=crop",
		IsPopular:     true,
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Arrival", Description: "Arrive in Srinagar, transfer to Gulmarg."},
			{Day: 2, Title: "Skiing in Gulmarg", Description: "Full day for skiing and snow activities."},
			{Day: 3, Title: "Gulmarg to Pahalgam", Description: "Scenic drive to Pahalgam."},
			{Day: 4, Title: "Pahalgam to Srinagar", Description: "Return to Srinagar."},
			{Day: 5, Title: "Departure", Description: "Transfer to airport."},
		},
	},
	{
		ID:            "4",
		Title:         "Honeymoon Special",
		Slug:          "honeymoon-special",
		Duration:      "7D/6N",
		Price:         24999,
		Location:      "Srinagar, Houseboat, Gulmarg, Pahalgam",
		Description:   "Romantic getaway for couples with special candlelight dinner and flower decoration.",
		Inclusions:    []string{"Honeymoon Suite", "Candlelight Dinner", "Flower Bed Decoration", "Private Shikara Ride", "Cake"},
		Exclusions:    []string{"Flights", "Personal Expenses", "Adventure Activities"},
		FeaturedImage: "https://images.unsplash.com/photo-1595846519845-68e298c2edd8?q=80&w=2070&auto=format&fit=crop",
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Welcome", Description: "Arrival and Houseboat check-in."},
			{Day: 2, Title: "Romantic Srinagar", Description: "Mughal Gardens and photo shoot."},
			{Day: 3, Title: "Gulmarg", Description: "Day trip to Gulmarg."},
			{Day: 4, Title: "Pahalgam", Description: "Overnight in Pahalgam."},
			{Day: 5, Title: "Pahalgam Leisure", Description: "Leisure day in Pahalgam."},
			{Day: 6, Title: "Back to Srinagar", Description: "Shopping and relaxing."},
			{Day: 7, Title: "Goodbye", Description: "Departure."},
		},
	},
	{
		ID:            "5",
		Title:         "Budget Kashmir",
		Slug:          "budget-kashmir",
		Duration:      "4D/3N",
		Price:         9999,
		Location:      "Srinagar, Gulmarg",
		Description:   "Pocket-friendly tour covering the essentials of Kashmir.",
		Inclusions:    []string{"Budget Hotels", "Breakfast", "Sharing Transport"},
		Exclusions:    []string{"Lunch", "Dinner", "Entry Fees"},
		FeaturedImage: "https://images.unsplash.com/photo-1536295246797-175cb17c2688?q=80&w=2070&auto=format&fit=crop",
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Arrival", Description: "Srinagar arrival."},
			{Day: 2, Title: "Gulmarg", Description: "Day trip to Gulmarg."},
			{Day: 3, Title: "Srinagar Sightseeing", Description: "Local sightseeing."},
			{Day: 4, Title: "Departure", Description: "Airport drop."},
		},
	},
	{
		ID:            "6",
		Title:         "Luxury Escape",
		Slug:          "luxury-escape",
		Duration:      "6D/5N",
		Price:         35000,
		Location:      "Srinagar, Pahalgam, Sonmarg",
		Description:   "Stay in 5-star properties and travel in luxury SUVs.",
		Inclusions:    []string{"5-Star Hotels", "All Meals", "Luxury SUV", "Guide", "VIP Darshan"},
		Exclusions:    []string{"Flights", "Tips"},
		FeaturedImage: "https://images.unsplash.com/photo-1562607335-5a50785f750b?q=80&w=2074&auto=format&fit=crop",
		Itinerary: []model.ItineraryDay{
			{Day: 1, Title: "Royal Welcome", Description: "Welcome drink and 5-star check-in."},
			{Day: 2, Title: "Sonmarg Luxury", Description: "Private tour of Sonmarg."},
			{Day: 3, Title: "Pahalgam Retreat", Description: "Stay at a luxury resort in Pahalgam."},
			{Day: 4, Title: "Pahalgam Leisure", Description: "Golfing or relaxing."},
			{Day: 5, Title: "Srinagar Grandeur", Description: "Grand houseboat stay."},
			{Day: 6, Title: "Departure", Description: "VIP airport drop."},
		},
	},
}
