package models

import (
	"time"

	"adminhub/internal/domain"
)

type Category struct {
	ID          domain.ID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	CreatedDate time.Time `json:"createdDate"`
	AssetCount  int       `json:"assetCount"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	Code        string `json:"code" binding:"required,max=20"`
}

type CategoryRef struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code"`
}

type Asset struct {
	ID                    domain.ID          `json:"id"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	AssetCode             string             `json:"assetCode"`
	SerialNumber          string             `json:"serialNumber"`
	Brand                 string             `json:"brand"`
	Model                 string             `json:"model"`
	PurchasePrice         float64            `json:"purchasePrice"`
	PurchaseDate          *time.Time         `json:"purchaseDate,omitempty"`
	Status                domain.AssetStatus `json:"status"`
	Location              string             `json:"location"`
	Notes                 string             `json:"notes"`
	CategoryID            domain.ID          `json:"categoryId"`
	Category              *CategoryRef       `json:"category,omitempty"`
	CurrentAssignedUserID *domain.ID         `json:"currentAssignedUserId,omitempty"`
	CurrentAssignedUser   *UserRef           `json:"currentAssignedUser,omitempty"`
	CreatedDate           time.Time          `json:"createdDate"`
}

// AssetRequest is the create/update body. Status is optional on create and
// ignored on update; status changes go through PATCH /assets/:id/status.
type AssetRequest struct {
	Name          string             `json:"name" binding:"required,max=200"`
	Description   string             `json:"description" binding:"max=1000"`
	AssetCode     string             `json:"assetCode" binding:"required,max=50"`
	SerialNumber  string             `json:"serialNumber" binding:"max=100"`
	Brand         string             `json:"brand" binding:"max=100"`
	Model         string             `json:"model" binding:"max=100"`
	PurchasePrice float64            `json:"purchasePrice" binding:"gte=0"`
	PurchaseDate  *time.Time         `json:"purchaseDate"`
	Status        domain.AssetStatus `json:"status"`
	Location      string             `json:"location" binding:"max=200"`
	Notes         string             `json:"notes" binding:"max=1000"`
	CategoryID    domain.ID          `json:"categoryId" binding:"required,gt=0"`
}

type Assignment struct {
	ID               domain.ID             `json:"id"`
	Type             domain.AssignmentType `json:"type"`
	AssignmentDate   time.Time             `json:"assignmentDate"`
	ReturnDate       *time.Time            `json:"returnDate,omitempty"`
	Notes            string                `json:"notes"`
	Condition        string                `json:"condition"`
	AssetID          domain.ID             `json:"assetId"`
	Asset            *AssetRef             `json:"asset,omitempty"`
	UserID           domain.ID             `json:"userId"`
	User             *UserRef              `json:"user,omitempty"`
	AssignedByUserID domain.ID             `json:"assignedByUserId"`
	AssignedByUser   *UserRef              `json:"assignedByUser,omitempty"`
}

// Active reports whether this is an open handover: an Assignment record with
// no return date.
func (a Assignment) Active() bool {
	return a.Type == domain.AssignmentIssue && a.ReturnDate == nil
}

type AssetRef struct {
	ID        domain.ID `json:"id"`
	Name      string    `json:"name"`
	AssetCode string    `json:"assetCode"`
}

type AssignmentRequest struct {
	Type      domain.AssignmentType `json:"type" binding:"required,oneof=1 2"`
	AssetID   domain.ID             `json:"assetId" binding:"required,gt=0"`
	UserID    domain.ID             `json:"userId" binding:"required,gt=0"`
	Notes     string                `json:"notes" binding:"max=500"`
	Condition string                `json:"condition" binding:"max=200"`
}

type InventoryDashboard struct {
	TotalAssets       int          `json:"totalAssets"`
	AvailableAssets   int          `json:"availableAssets"`
	AssignedAssets    int          `json:"assignedAssets"`
	MaintenanceAssets int          `json:"maintenanceAssets"`
	DamagedAssets     int          `json:"damagedAssets"`
	TotalCategories   int          `json:"totalCategories"`
	TotalUsers        int          `json:"totalUsers"`
	TotalValue        float64      `json:"totalValue"`
	RecentAssignments []Assignment `json:"recentAssignments"`
}

// AssetDetail is an asset with its handover history and the stats derived from it.
type AssetDetail struct {
	Asset            Asset        `json:"asset"`
	ActiveAssignment *Assignment  `json:"activeAssignment,omitempty"`
	AssignmentCount  int          `json:"assignmentCount"`
	ReturnCount      int          `json:"returnCount"`
	History          []Assignment `json:"history"`
}
