package schema

import "time"

const (
	DonationCollection = "donations"
	RequestCollection  = "requests"

	// PostedJustNow is the display date every listing carries right after creation
	PostedJustNow = "Just now"

	// CategoryAll is the filter wildcard. It is never stored on a listing.
	CategoryAll = "All"
)

// Categories is the fixed set of listing categories
var Categories = []string{
	"Clothing",
	"Food",
	"Children",
	"Furniture",
	"Services",
	"Household",
	"Medical",
	"Electronics",
	"Education",
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// UrgencyLevels lists the urgency values from the most to the least pressing
var UrgencyLevels = []Urgency{UrgencyHigh, UrgencyMedium, UrgencyLow}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// Listing holds the fields shared by donations and requests. It is embedded
// into both concrete types so that stores and filters can treat them alike.
type Listing struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title" binding:"required,min=5,max=100"`
	Category    string    `json:"category" bson:"category" binding:"required,oneof=Clothing Food Children Furniture Services Household Medical Electronics Education"`
	Description string    `json:"description" bson:"description" binding:"required,min=20,max=500"`
	Location    string    `json:"location" bson:"location" binding:"required,min=3"`
	PostedDate  string    `json:"postedDate" bson:"posted_date,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty" bson:"created_at,omitempty"`
}

// Record is satisfied by pointers to the concrete listing types
type Record[T any] interface {
	*T
	Common() *Listing
}

// Common gives generic code access to the shared fields of a concrete listing
func (l *Listing) Common() *Listing {
	return l
}

type Donation struct {
	Listing   `bson:",inline"`
	DonorName string `json:"donorName" bson:"donor_name" binding:"required,min=3"`
	ImageURL  string `json:"imageUrl" bson:"image_url" binding:"required,url"`
}

// Owner is the name of the person who posted the donation
func (d Donation) Owner() string {
	return d.DonorName
}

type Request struct {
	Listing       `bson:",inline"`
	RequesterName string  `json:"requesterName" bson:"requester_name" binding:"required,min=2"`
	Urgency       Urgency `json:"urgency" bson:"urgency" binding:"omitempty,oneof=low medium high"`
}

// Owner is the name of the person who asked for help
func (r Request) Owner() string {
	return r.RequesterName
}

// UrgencyLevel returns the urgency of the request, falling back to medium
// for records that never had one set
func (r Request) UrgencyLevel() Urgency {
	if r.Urgency == "" {
		return UrgencyMedium
	}
	return r.Urgency
}
