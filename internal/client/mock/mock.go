// Package mock provides the fixed demo dataset the client falls back to when
// the backend is unreachable or a demo identity is signed in.
package mock

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/civichub/internal/client/state"
	"github.com/dmitrijs2005/civichub/internal/models"
)

const (
	AdminID    = "admin-1"
	ResidentID = "res-1"
)

// Admin returns the demo administrator.
func Admin() models.User {
	return models.User{
		ID:     AdminID,
		Name:   "Sarah Connor",
		Email:  "admin@civichub.com",
		Role:   models.RoleAdmin,
		Phone:  "+1 234 567 8900",
		Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=200&q=80",
	}
}

// Resident returns the demo resident.
func Resident() models.User {
	return models.User{
		ID:         ResidentID,
		Name:       "John Doe",
		Email:      "john@example.com",
		Role:       models.RoleResident,
		UnitNumber: "B-402",
		Phone:      "+1 987 654 3210",
		Avatar:     "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=200&q=80",
	}
}

// DemoByEmail returns the demo identity registered under email.
func DemoByEmail(email string) (models.User, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range []models.User{Admin(), Resident()} {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// IsDemoID reports whether id belongs to a demo identity.
func IsDemoID(id string) bool {
	return id == AdminID || id == ResidentID
}

// Seed returns the demo dataset with timestamps relative to now.
func Seed(now time.Time) state.Dataset {
	return state.Dataset{
		Residents: []models.User{Admin(), Resident()},
		Notices: []models.Notice{
			{
				ID:        "n1",
				Title:     "Elevator Maintenance Scheduled",
				Content:   "Elevator in Block B will be under maintenance this Friday from 10 AM to 4 PM.",
				PostedBy:  "Admin Team",
				CreatedAt: now.Add(-24 * time.Hour),
				Category:  models.NoticeUrgent,
			},
			{
				ID:        "n2",
				Title:     "Weekend Yoga Session",
				Content:   "Join us for a community yoga session in the central park this Sunday at 7 AM.",
				PostedBy:  "Society Secretary",
				CreatedAt: now.Add(-48 * time.Hour),
				Category:  models.NoticeEvent,
			},
		},
		Complaints: []models.Complaint{
			{
				ID:          "c1",
				UserID:      ResidentID,
				UserName:    "John Doe",
				UnitNumber:  "B-402",
				Title:       "Water Leakage in Kitchen",
				Description: "There is a persistent drip from the main sink pipe.",
				Category:    "Plumbing",
				Priority:    models.PriorityHigh,
				Status:      models.ComplaintOpen,
				CreatedAt:   now.Add(-12 * time.Hour),
			},
			{
				ID:          "c2",
				UserID:      "res-2",
				UserName:    "Alice Smith",
				UnitNumber:  "A-101",
				Title:       "Broken Lobby Light",
				Description: "The light near the entrance of Block A is flickering.",
				Category:    "Electrical",
				Priority:    models.PriorityLow,
				Status:      models.ComplaintInProgress,
				CreatedAt:   now.Add(-72 * time.Hour),
			},
		},
		Payments: []models.Payment{
			{ID: "p1", UserID: ResidentID, UserName: "John Doe", UnitNumber: "B-402", Amount: 250, Month: "October 2023", DueDate: "2023-10-10", Status: models.PaymentPaid},
			{ID: "p2", UserID: ResidentID, UserName: "John Doe", UnitNumber: "B-402", Amount: 250, Month: "November 2023", DueDate: "2023-11-10", Status: models.PaymentPending},
		},
		Visitors: []models.Visitor{
			{
				ID:           "v1",
				Name:         "Michael Scott",
				Phone:        "555-0199",
				Purpose:      "Delivery",
				ResidentID:   ResidentID,
				ResidentName: "John Doe",
				UnitNumber:   "B-402",
				EntryTime:    now.Add(-time.Hour),
				Status:       models.VisitorIn,
			},
		},
	}
}
