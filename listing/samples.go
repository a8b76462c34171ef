package listing

import "github.com/bitmark-inc/community-aid/schema"

const unsplash = "https://images.unsplash.com/"

// SampleDonations are shown when the listing service cannot be reached
var SampleDonations = []schema.Donation{
	{
		Listing: schema.Listing{
			ID:          "1",
			Title:       "Winter Clothing Package",
			Category:    "Clothing",
			Description: "Gently used winter clothes including jackets, sweaters, and boots. Suitable for adults.",
			Location:    "Brooklyn, NY",
			PostedDate:  "2 days ago",
		},
		DonorName: "Sarah Johnson",
		ImageURL:  unsplash + "photo-1489987707025-afc232f7ea0f?auto=format&fit=crop&w=2070&q=80",
	},
	{
		Listing: schema.Listing{
			ID:          "2",
			Title:       "Non-perishable Food Items",
			Category:    "Food",
			Description: "Assorted canned goods, pasta, rice, and other non-perishable items. All within expiry date.",
			Location:    "Seattle, WA",
			PostedDate:  "3 days ago",
		},
		DonorName: "Michael Chen",
		ImageURL:  unsplash + "photo-1593113646773-028c64a8f1b8?auto=format&fit=crop&w=2070&q=80",
	},
	{
		Listing: schema.Listing{
			ID:          "3",
			Title:       "Kids Toys and Books",
			Category:    "Children",
			Description: "Collection of toys and books for children ages 3-8. All items are in excellent condition.",
			Location:    "Chicago, IL",
			PostedDate:  "1 week ago",
		},
		DonorName: "Emily Rodriguez",
		ImageURL:  unsplash + "photo-1515488042361-ee00e0ddd4e4?auto=format&fit=crop&w=2075&q=80",
	},
	{
		Listing: schema.Listing{
			ID:          "4",
			Title:       "Office Desk and Chair",
			Category:    "Furniture",
			Description: "Lightly used office desk and ergonomic chair. Perfect for a home office setup.",
			Location:    "Austin, TX",
			PostedDate:  "5 days ago",
		},
		DonorName: "David Wilson",
		ImageURL:  unsplash + "photo-1518455027359-f3f8164ba6bd?auto=format&fit=crop&w=2036&q=80",
	},
	{
		Listing: schema.Listing{
			ID:          "5",
			Title:       "Professional Resume Service",
			Category:    "Services",
			Description: "Offering free resume review and editing services to help with job applications.",
			Location:    "Remote",
			PostedDate:  "1 week ago",
		},
		DonorName: "Jennifer Adams",
		ImageURL:  unsplash + "photo-1586282391129-76a6df230234?auto=format&fit=crop&w=2070&q=80",
	},
	{
		Listing: schema.Listing{
			ID:          "6",
			Title:       "Kitchen Appliances",
			Category:    "Household",
			Description: "Various kitchen appliances including toaster, blender, and microwave. All in working condition.",
			Location:    "Denver, CO",
			PostedDate:  "2 weeks ago",
		},
		DonorName: "Thomas Lee",
		ImageURL:  unsplash + "photo-1556911220-e15b29be8c8f?auto=format&fit=crop&w=2070&q=80",
	},
}

// SampleRequests are shown when the listing service cannot be reached
var SampleRequests = []schema.Request{
	{
		Listing: schema.Listing{
			ID:          "1",
			Title:       "Need School Supplies for Children",
			Category:    "Education",
			Description: "Looking for notebooks, pens, backpacks and other school supplies for three children starting school next month.",
			Location:    "Portland, OR",
			PostedDate:  "4 days ago",
		},
		RequesterName: "Lisa Patel",
		Urgency:       schema.UrgencyMedium,
	},
	{
		Listing: schema.Listing{
			ID:          "2",
			Title:       "Wheelchair Assistance",
			Category:    "Medical",
			Description: "In need of a wheelchair for elderly parent who recently had surgery. Temporary or permanent donation appreciated.",
			Location:    "Austin, TX",
			PostedDate:  "1 day ago",
		},
		RequesterName: "Robert Kim",
		Urgency:       schema.UrgencyHigh,
	},
	{
		Listing: schema.Listing{
			ID:          "3",
			Title:       "Winter Coat for Teenager",
			Category:    "Clothing",
			Description: "Looking for a warm winter coat for a 16-year-old boy. Size L/XL preferred.",
			Location:    "Chicago, IL",
			PostedDate:  "3 days ago",
		},
		RequesterName: "Maria Gonzalez",
		Urgency:       schema.UrgencyMedium,
	},
	{
		Listing: schema.Listing{
			ID:          "4",
			Title:       "Basic Groceries Needed",
			Category:    "Food",
			Description: "Family of four in need of basic groceries for the week. Any help with non-perishable items would be greatly appreciated.",
			Location:    "Atlanta, GA",
			PostedDate:  "1 day ago",
		},
		RequesterName: "James Wilson",
		Urgency:       schema.UrgencyHigh,
	},
	{
		Listing: schema.Listing{
			ID:          "5",
			Title:       "Furniture for New Apartment",
			Category:    "Furniture",
			Description: "Recently moved into a new apartment and in need of basic furniture - a table, chairs, and a bed frame if possible.",
			Location:    "San Francisco, CA",
			PostedDate:  "1 week ago",
		},
		RequesterName: "Alex Johnson",
		Urgency:       schema.UrgencyLow,
	},
	{
		Listing: schema.Listing{
			ID:          "6",
			Title:       "Math Tutoring for 8th Grader",
			Category:    "Services",
			Description: "Looking for someone who can provide math tutoring for my 8th-grade daughter who is struggling with algebra.",
			Location:    "Remote",
			PostedDate:  "5 days ago",
		},
		RequesterName: "Patricia Lee",
		Urgency:       schema.UrgencyMedium,
	},
}
