package model

import "time"

const (
	// InquiryStatusPending marks an inquiry no staff member has handled yet.
	InquiryStatusPending = "pending"
	// InquiryStatusRead marks an inquiry a staff member has reviewed.
	InquiryStatusRead = "read"
	// InquiryStatusBooked marks a booking inquiry converted into a booking.
	InquiryStatusBooked = "booked"
	// InquiryStatusContacted marks an inquiry whose customer has been contacted.
	InquiryStatusContacted = "contacted"
	// InquiryStatusClosed marks an inquiry that needs no further action.
	InquiryStatusClosed = "closed"
)

// Inquiry is a customer contact message or booking request. The same record
// shape is stored in the database and, when the database was unreachable at
// submission time, in the local fallback cache; the JSON tags cover the cache
// serialization.
type Inquiry struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	Email     string    `gorm:"index;not null;size:320" json:"email"`
	Phone     string    `gorm:"index;not null;size:32" json:"phone"`
	Message   string    `gorm:"not null;size:4000" json:"message"`
	PackageID string    `gorm:"index;size:36" json:"package_id,omitempty"`
	Status    string    `gorm:"not null;size:20" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ItineraryDay is a single day of a tour package itinerary.
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"desc"`
}

type TourPackage struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Title         string         `gorm:"not null;size:200" json:"title"`
	Slug          string         `gorm:"uniqueIndex;not null;size:200" json:"slug"`
	Duration      string         `gorm:"size:20" json:"duration"`
	Price         int            `gorm:"not null" json:"price"`
	Location      string         `gorm:"size:300" json:"location"`
	Description   string         `gorm:"size:4000" json:"description"`
	Inclusions    []string       `gorm:"serializer:json" json:"inclusions"`
	Exclusions    []string       `gorm:"serializer:json" json:"exclusions"`
	Itinerary     []ItineraryDay `gorm:"serializer:json" json:"itinerary"`
	FeaturedImage string         `gorm:"size:500" json:"featured_image"`
	IsPopular     bool           `json:"is_popular"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

type FAQ struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Question  string    `gorm:"not null;size:500" json:"question"`
	Answer    string    `gorm:"not null;size:4000" json:"answer"`
	Category  string    `gorm:"index;size:100" json:"category"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AdminUser struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;not null;size:320"`
	Name         string    `gorm:"size:200"`
	PasswordHash string    `gorm:"not null;size:100"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
