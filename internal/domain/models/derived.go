package models

import (
	"math"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/listing"
)

// RecentLimit is how many rows the dashboard tiles list.
const RecentLimit = 5

// NewAssetDetail derives the active handover and issue/return counts from
// an asset's history.
func NewAssetDetail(asset Asset, history []Assignment) AssetDetail {
	if history == nil {
		history = []Assignment{}
	}
	d := AssetDetail{
		Asset:   asset,
		History: history,
		AssignmentCount: listing.Count(history, func(a Assignment) bool {
			return a.Type == domain.AssignmentIssue
		}),
		ReturnCount: listing.Count(history, func(a Assignment) bool {
			return a.Type == domain.AssignmentReturn
		}),
	}
	if active, ok := listing.First(history, Assignment.Active); ok {
		d.ActiveAssignment = &active
	}
	return d
}

func NewInventoryDashboard(assets []Asset, categories, users int, assignments []Assignment) InventoryDashboard {
	byStatus := listing.CountBy(assets, func(a Asset) domain.AssetStatus { return a.Status })
	return InventoryDashboard{
		TotalAssets:       len(assets),
		AvailableAssets:   byStatus[domain.AssetAvailable],
		AssignedAssets:    byStatus[domain.AssetAssigned],
		MaintenanceAssets: byStatus[domain.AssetMaintenance],
		DamagedAssets:     byStatus[domain.AssetDamaged],
		TotalCategories:   categories,
		TotalUsers:        users,
		TotalValue:        listing.Sum(assets, func(a Asset) float64 { return a.PurchasePrice }),
		RecentAssignments: listing.Latest(assignments, func(a Assignment) time.Time { return a.AssignmentDate }, RecentLimit),
	}
}

// NewSportsDashboard counts the sports entities. Active competitions are
// those open for registration or running; upcoming matches are scheduled
// ones at or after now, soonest first.
func NewSportsDashboard(competitions []Competition, participants int, matches []Match, venues []Venue, now time.Time) SportsDashboard {
	scheduled := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Status == domain.MatchScheduled {
			scheduled = append(scheduled, m)
		}
	}

	return SportsDashboard{
		TotalCompetitions: len(competitions),
		ActiveCompetitions: listing.Count(competitions, func(c Competition) bool {
			switch c.Status {
			case domain.CompetitionRegistrationOpen, domain.CompetitionRegistrationClosed, domain.CompetitionInProgress:
				return true
			}
			return false
		}),
		TotalParticipants: participants,
		TotalMatches:      len(matches),
		CompletedMatches: listing.Count(matches, func(m Match) bool {
			return m.Status == domain.MatchCompleted
		}),
		TotalVenues: len(venues),
		ActiveVenues: listing.Count(venues, func(v Venue) bool {
			return v.Status == domain.VenueActive
		}),
		RecentCompetitions: listing.Latest(competitions, func(c Competition) time.Time { return c.StartDate }, RecentLimit),
		UpcomingMatches:    listing.Earliest(scheduled, func(m Match) time.Time { return m.MatchDate }, now, RecentLimit),
	}
}

// ReservationPrice charges rate per hour for [start, end), pro rata, rounded
// to kuruş.
func ReservationPrice(rate float64, start, end time.Time) float64 {
	if rate <= 0 || !end.After(start) {
		return 0
	}
	return math.Round(rate*end.Sub(start).Hours()*100) / 100
}
