// Package seed holds the fixed dataset the migration service copies into the
// store. User, event and post ids in here are seed-local; the migration
// remaps them to store-assigned ids where creation order allows.
package seed

import (
	"time"

	"mplsconnect/internal/models"
)

type Dataset struct {
	Users     []models.User
	Events    []models.Event
	Comments  []models.Comment
	Posts     []models.Post
	Resources []models.Resource
	Groups    []models.Group
}

func Data() Dataset {
	now := time.Now()

	return Dataset{
		Users: []models.User{
			{
				ID:           "1",
				Name:         "Sarah Mitchell",
				Age:          27,
				Location:     "Minneapolis, MN",
				Occupation:   "Marketing Director",
				ProfileImage: "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
				Bio:          "Passionate about community building and environmental justice",
				Interests:    []string{"Community", "Environment", "Volunteering"},
				Verified:     true,
			},
			{
				ID:           "2",
				Name:         "Mike Johnson",
				Age:          32,
				Location:     "Minneapolis, MN",
				Occupation:   "Software Engineer",
				ProfileImage: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
				Bio:          "Tech enthusiast who loves giving back to the community",
				Interests:    []string{"Technology", "Volunteering", "Networking"},
				Verified:     true,
			},
			{
				ID:           "3",
				Name:         "Emily Chen",
				Age:          28,
				Location:     "Minneapolis, MN",
				Occupation:   "Teacher",
				ProfileImage: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=150&h=150&fit=crop&crop=face",
				Bio:          "Elementary school teacher passionate about education equity",
				Interests:    []string{"Education", "Social Justice", "Community"},
				Verified:     true,
			},
			{
				ID:           "4",
				Name:         "David Brown",
				Age:          35,
				Location:     "Minneapolis, MN",
				Occupation:   "Non-profit Director",
				ProfileImage: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
				Bio:          "Leading local food security initiatives",
				Interests:    []string{"Food Security", "Community", "Volunteering"},
				Verified:     true,
			},
			{
				ID:           "5",
				Name:         "Marcus Thompson",
				Age:          30,
				Location:     "Minneapolis, MN",
				Occupation:   "Environmental Scientist",
				ProfileImage: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=150&h=150&fit=crop&crop=face",
				Bio:          "Urban forestry advocate and community organizer",
				Interests:    []string{"Environment", "Urban Planning", "Community"},
				Verified:     true,
			},
		},
		Events: []models.Event{
			{
				ID:          "1",
				Title:       "Neighborhood Block Party",
				Description: "Join neighbors for food, music, and community connection in a celebration of local unity.",
				Date:        "2025-10-13",
				Time:        "9:00 AM",
				Location:    "Community Center",
				Category:    models.CategoryCommunity,
				Image:       "https://images.unsplash.com/photo-1511795409834-ef04bbd61622?w=400&h=200&fit=crop",
				Attendees:   290,
				OrganizerID: "1",
				Tags:        []string{"Community", "Food", "Music"},
			},
			{
				ID:          "2",
				Title:       "Community Garden Harvest Festival",
				Description: "Celebrate the season's bounty with fresh produce, gardening workshops, and local food vendors.",
				Date:        "2025-10-13",
				Time:        "10:00 AM",
				Location:    "Central Park",
				Category:    models.CategoryCommunity,
				Image:       "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=400&h=200&fit=crop",
				Attendees:   172,
				OrganizerID: "5",
				Tags:        []string{"Community", "Gardening", "Food"},
			},
			{
				ID:          "3",
				Title:       "Community Food Drive - Second Harvest Heartland",
				Description: "Join us for a weekend food sorting event at our Heartland warehouse. Help pack meals for families in need across Minneapolis.",
				Date:        "2025-10-20",
				Time:        "8:00 AM",
				Location:    "Second Harvest Heartland Warehouse",
				Category:    models.CategoryVolunteering,
				Image:       "https://images.unsplash.com/photo-1593113598332-cd288d649433?w=400&h=200&fit=crop",
				Attendees:   45,
				OrganizerID: "4",
				Tags:        []string{"Volunteering", "Food Security", "Community"},
			},
		},
		Comments: []models.Comment{
			{
				ID:        "1",
				PostID:    "1",
				AuthorID:  "2",
				Content:   "Just signed up! Can't wait to help at this event.",
				CreatedAt: now.Add(-45 * time.Minute),
				Likes:     3,
			},
			{
				ID:        "2",
				PostID:    "1",
				AuthorID:  "3",
				Content:   "Such an important cause! Bringing my whole family.",
				CreatedAt: now.Add(-30 * time.Minute),
				Likes:     5,
			},
			{
				ID:        "3",
				PostID:    "1",
				AuthorID:  "4",
				Content:   "I volunteered here last month - amazing organization!",
				CreatedAt: now.Add(-20 * time.Minute),
				Likes:     2,
			},
		},
		Posts: []models.Post{
			{
				ID:        "1",
				AuthorID:  "1",
				Content:   "Excited to share this volunteer opportunity! Second Harvest Heartland is hosting a community food drive next weekend. Sign up and help make a difference!",
				Image:     "https://images.unsplash.com/photo-1593113598332-cd288d649433?w=400&h=200&fit=crop",
				CreatedAt: now.Add(-time.Hour),
				Likes:     127,
				EventID:   "3",
			},
			{
				ID:        "2",
				AuthorID:  "5",
				Content:   "Tree Trust is hiring Community Engagement Coordinators! If you're passionate about urban forestry and environmental justice in Minneapolis, this is the perfect opportunity.",
				CreatedAt: now.Add(-3 * time.Hour),
				Likes:     89,
			},
		},
		Resources: []models.Resource{
			{
				ID:          "1",
				Title:       "How to Network Effectively in Minneapolis",
				Type:        models.ResourceArticle,
				Duration:    "6 min read",
				Category:    "Networking",
				Description: "Learn the best practices for building professional relationships in the Minneapolis community.",
			},
			{
				ID:          "2",
				Title:       "Best Practices for Hosting Community Events",
				Type:        models.ResourceVideo,
				Duration:    "12 min",
				Category:    "Event Planning",
				Description: "A comprehensive guide to organizing successful community events.",
			},
			{
				ID:          "3",
				Title:       "Building Meaningful Connections in Your City",
				Type:        models.ResourcePodcast,
				Duration:    "35 min",
				Category:    "Community",
				Description: "Podcast episode about creating lasting relationships through community involvement.",
			},
			{
				ID:          "4",
				Title:       "Minneapolis Volunteer Opportunities Guide",
				Type:        models.ResourceArticle,
				Duration:    "8 min read",
				Category:    "Volunteering",
				Description: "Complete guide to volunteer opportunities in Minneapolis.",
			},
			{
				ID:          "5",
				Title:       "Social Impact Through Small Business Support",
				Type:        models.ResourceArticle,
				Duration:    "10 min read",
				Category:    "Small Business",
				Description: "How supporting local businesses creates positive social impact.",
			},
			{
				ID:          "6",
				Title:       "Creating Inclusive Community Spaces",
				Type:        models.ResourceVideo,
				Duration:    "18 min",
				Category:    "Community Building",
				Description: "Strategies for making community spaces welcoming to everyone.",
			},
		},
		Groups: []models.Group{
			{
				ID:          "1",
				Name:        "MPLS Environmental Group",
				Description: "Environmental activists working for a greener Minneapolis",
				MemberCount: 14,
				NewMessages: 8,
				Image:       "https://images.unsplash.com/photo-1542601906990-b4d3fb778b09?w=100&h=100&fit=crop",
				Category:    "Environmental",
			},
		},
	}
}
