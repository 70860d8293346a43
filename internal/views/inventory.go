package views

import (
	"context"
	"fmt"
	"time"

	"adminhub/internal/client"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/listing"
)

func assetID(a models.Asset) domain.ID { return a.ID }

func categoryID(c models.Category) domain.ID { return c.ID }

func userID(u models.User) domain.ID { return u.ID }

type CategoriesData struct {
	Categories []models.Category
}

type CategoriesPage struct {
	page[CategoriesData]
	list collection[models.Category]
}

func NewCategoriesPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *CategoriesPage {
	return &CategoriesPage{
		page: newPage("categories", api, rc, confirm,
			listTask(api.Categories().List, func(d *CategoriesData) *[]models.Category { return &d.Categories })),
		list: collection[models.Category]{spec: CategorySpec},
	}
}

func (p *CategoriesPage) Filtered(cr listing.Criteria) []models.Category {
	d, v := p.data()
	return p.list.filter(v, d.Categories, cr)
}

func (p *CategoriesPage) Create(ctx context.Context, req models.CategoryRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "category.create",
		Guard:  p.guard(domain.ActManageInventory, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Categories().Create(ctx, req)) },
	})
}

func (p *CategoriesPage) Update(ctx context.Context, id domain.ID, req models.CategoryRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "category.update",
		Guard:  p.guard(domain.ActManageInventory, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Categories().Update(ctx, id, req)) },
	})
}

// Delete refuses locally, without a request, while assets still use the category.
func (p *CategoriesPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	cat, known := find(d.Categories, id, categoryID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "category.delete",
		Prompt: fmt.Sprintf("%q kategorisi silinsin mi?", cat.Name),
		Guard: p.guard(domain.ActManageInventory, nil, func() error {
			if known && cat.AssetCount > 0 {
				return domain.ConflictError{Resource: "kategori",
					Msg: fmt.Sprintf("bu kategoriye bağlı %d demirbaş var, önce onları taşıyın", cat.AssetCount)}
			}
			return nil
		}),
		Do: func(ctx context.Context) error { return p.api.Categories().Delete(ctx, id) },
	})
}

type AssetsData struct {
	Assets     []models.Asset
	Categories []models.Category
}

type AssetStats struct {
	Total       int
	Available   int
	Assigned    int
	Maintenance int
	Damaged     int
	Disposed    int
	TotalValue  float64
}

type AssetsPage struct {
	page[AssetsData]
	list collection[models.Asset]
}

func NewAssetsPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *AssetsPage {
	return &AssetsPage{
		page: newPage("assets", api, rc, confirm,
			listTask(api.Assets().List, func(d *AssetsData) *[]models.Asset { return &d.Assets }),
			listTask(api.Categories().List, func(d *AssetsData) *[]models.Category { return &d.Categories })),
		list: collection[models.Asset]{spec: AssetSpec},
	}
}

func (p *AssetsPage) Filtered(cr listing.Criteria) []models.Asset {
	d, v := p.data()
	return p.list.filter(v, d.Assets, cr)
}

// Stats summarises items, typically the Filtered result.
func AssetStatsOf(items []models.Asset) AssetStats {
	by := listing.CountBy(items, func(a models.Asset) domain.AssetStatus { return a.Status })
	return AssetStats{
		Total:       len(items),
		Available:   by[domain.AssetAvailable],
		Assigned:    by[domain.AssetAssigned],
		Maintenance: by[domain.AssetMaintenance],
		Damaged:     by[domain.AssetDamaged],
		Disposed:    by[domain.AssetDisposed],
		TotalValue:  listing.Sum(items, func(a models.Asset) float64 { return a.PurchasePrice }),
	}
}

func (p *AssetsPage) NextStatuses(id domain.ID) []domain.AssetStatus {
	d, _ := p.data()
	a, known := find(d.Assets, id, assetID)
	return nextStatuses(domain.AssetStatuses, a.Status, known)
}

func (p *AssetsPage) Create(ctx context.Context, req models.AssetRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "asset.create",
		Guard:  p.guard(domain.ActManageInventory, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Assets().Create(ctx, req)) },
	})
}

func (p *AssetsPage) Update(ctx context.Context, id domain.ID, req models.AssetRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "asset.update",
		Guard:  p.guard(domain.ActManageInventory, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Assets().Update(ctx, id, req)) },
	})
}

func (p *AssetsPage) SetStatus(ctx context.Context, id domain.ID, status domain.AssetStatus) Result {
	d, _ := p.data()
	a, known := find(d.Assets, id, assetID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "asset.status",
		Guard:  p.guard(domain.ActManageInventory, nil, transition(domain.AssetStatuses, a.Status, known, status)),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Assets(), id, status))
		},
	})
}

func (p *AssetsPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	a, known := find(d.Assets, id, assetID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "asset.delete",
		Prompt: fmt.Sprintf("%s (%s) silinsin mi?", a.Name, a.AssetCode),
		Guard: p.guard(domain.ActManageInventory, nil, func() error {
			if known && a.Status == domain.AssetAssigned {
				return domain.ConflictError{Resource: "demirbaş", Msg: "zimmetli demirbaş silinemez, önce iade alın"}
			}
			return nil
		}),
		Do: func(ctx context.Context) error { return p.api.Assets().Delete(ctx, id) },
	})
}

type AssignmentsData struct {
	Assignments []models.Assignment
	Assets      []models.Asset
	Users       []models.User
}

type AssignmentStats struct {
	Total   int
	Active  int
	Returns int
}

type AssignmentsPage struct {
	page[AssignmentsData]
	list collection[models.Assignment]
}

// NewAssignmentsPage loads the user list only for callers allowed to read it.
func NewAssignmentsPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *AssignmentsPage {
	tasks := []Task[AssignmentsData]{
		listTask(api.Assignments().List, func(d *AssignmentsData) *[]models.Assignment { return &d.Assignments }),
		listTask(api.Assets().List, func(d *AssignmentsData) *[]models.Asset { return &d.Assets }),
	}
	if domain.Can(rc.Role, domain.ActManageUsers) {
		tasks = append(tasks, listTask(api.Users().List, func(d *AssignmentsData) *[]models.User { return &d.Users }))
	}
	return &AssignmentsPage{
		page: newPage("assignments", api, rc, confirm, tasks...),
		list: collection[models.Assignment]{spec: AssignmentSpec},
	}
}

func (p *AssignmentsPage) Filtered(cr listing.Criteria) []models.Assignment {
	d, v := p.data()
	return p.list.filter(v, d.Assignments, cr)
}

func AssignmentStatsOf(items []models.Assignment) AssignmentStats {
	return AssignmentStats{
		Total:   len(items),
		Active:  listing.Count(items, models.Assignment.Active),
		Returns: listing.Count(items, func(a models.Assignment) bool { return a.Type == domain.AssignmentReturn }),
	}
}

// AvailableAssets are the assets that can be handed over right now.
func (p *AssignmentsPage) AvailableAssets() []models.Asset {
	d, _ := p.data()
	return listing.Filter(d.Assets, AssetSpec, listing.Criteria{}.With("status", domain.AssetAvailable.String()))
}

// HeldBy lists the assets holder currently holds, the only ones it can return.
func (p *AssignmentsPage) HeldBy(holder domain.ID) []models.Asset {
	d, _ := p.data()
	return listing.Filter(d.Assets, AssetSpec, listing.Criteria{}.
		With("status", domain.AssetAssigned.String()).
		With("userId", idString(holder)))
}

func (p *AssignmentsPage) Issue(ctx context.Context, req models.AssignmentRequest) Result {
	req.Type = domain.AssignmentIssue
	return p.create(ctx, req, func(a models.Asset) error {
		if a.Status != domain.AssetAvailable {
			return domain.ConflictError{Resource: "zimmet",
				Msg: fmt.Sprintf("demirbaş %s durumunda, zimmetlenemez", a.Status.Label())}
		}
		return nil
	})
}

func (p *AssignmentsPage) Return(ctx context.Context, req models.AssignmentRequest) Result {
	req.Type = domain.AssignmentReturn
	return p.create(ctx, req, func(a models.Asset) error {
		if a.Status != domain.AssetAssigned || a.CurrentAssignedUserID == nil || *a.CurrentAssignedUserID != req.UserID {
			return domain.ConflictError{Resource: "zimmet", Msg: "bu demirbaş seçilen kullanıcıda değil"}
		}
		return nil
	})
}

func (p *AssignmentsPage) create(ctx context.Context, req models.AssignmentRequest, check func(models.Asset) error) Result {
	d, _ := p.data()
	a, known := find(d.Assets, req.AssetID, assetID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "assignment.create",
		Guard: p.guard(domain.ActAssign, req, func() error {
			if !known {
				return nil
			}
			return check(a)
		}),
		Do: func(ctx context.Context) error { return ignore(p.api.Assignments().Create(ctx, req)) },
	})
}

type AssetDetailData struct {
	Asset   models.Asset
	History []models.Assignment
}

// AssetDetailPage shows one asset with its handover history; the stats are
// derived locally from the history.
type AssetDetailPage struct {
	page[AssetDetailData]
	ID domain.ID
}

func NewAssetDetailPage(api *client.Client, rc domain.RequestContext, id domain.ID) *AssetDetailPage {
	return &AssetDetailPage{
		ID: id,
		page: newPage("asset_detail", api, rc, nil,
			func(ctx context.Context, d *AssetDetailData) error {
				a, err := api.Assets().Get(ctx, id)
				d.Asset = a
				return err
			},
			func(ctx context.Context, d *AssetDetailData) error {
				h, err := api.AssetAssignments(ctx, id)
				d.History = h
				return err
			}),
	}
}

func (p *AssetDetailPage) Detail() models.AssetDetail {
	d, _ := p.data()
	return models.NewAssetDetail(d.Asset, d.History)
}

type InventoryDashboardPage struct {
	page[models.InventoryDashboard]
}

func NewInventoryDashboardPage(api *client.Client, rc domain.RequestContext) *InventoryDashboardPage {
	return &InventoryDashboardPage{
		page: newPage[models.InventoryDashboard]("inventory_dashboard", api, rc, nil,
			func(ctx context.Context, d *models.InventoryDashboard) (err error) {
				*d, err = api.InventoryDashboard(ctx)
				return err
			}),
	}
}

func (p *InventoryDashboardPage) Dashboard() models.InventoryDashboard {
	d, _ := p.data()
	return d
}

type UsersData struct {
	Users []models.User
}

type UsersPage struct {
	page[UsersData]
	list collection[models.User]
}

func NewUsersPage(api *client.Client, rc domain.RequestContext, confirm Confirmer) *UsersPage {
	return &UsersPage{
		page: newPage("users", api, rc, confirm,
			listTask(api.Users().List, func(d *UsersData) *[]models.User { return &d.Users })),
		list: collection[models.User]{spec: UserSpec},
	}
}

func (p *UsersPage) Filtered(cr listing.Criteria) []models.User {
	d, v := p.data()
	return p.list.filter(v, d.Users, cr)
}

// RecentlyActive lists users that logged in since the given time.
func (p *UsersPage) RecentlyActive(since time.Time) []models.User {
	d, _ := p.data()
	return listing.Filter(d.Users, listing.Spec[models.User]{
		Date: func(u models.User) *time.Time { return u.LastLoginAt },
	}, listing.Criteria{From: &since})
}

func (p *UsersPage) NextStatuses(id domain.ID) []domain.UserStatus {
	d, _ := p.data()
	u, known := find(d.Users, id, userID)
	return nextStatuses(domain.UserStatuses, u.Status, known)
}

func (p *UsersPage) Create(ctx context.Context, req models.CreateUserRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "user.create",
		Guard:  p.guard(domain.ActManageUsers, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Users().Create(ctx, req)) },
	})
}

func (p *UsersPage) Update(ctx context.Context, id domain.ID, req models.UpdateUserRequest) Result {
	return p.disp.Dispatch(ctx, Mutation{
		Action: "user.update",
		Guard:  p.guard(domain.ActManageUsers, req),
		Do:     func(ctx context.Context) error { return ignore(p.api.Users().Update(ctx, id, req)) },
	})
}

func (p *UsersPage) SetStatus(ctx context.Context, id domain.ID, status domain.UserStatus) Result {
	d, _ := p.data()
	u, known := find(d.Users, id, userID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "user.status",
		Guard: p.guard(domain.ActManageUsers, nil, transition(domain.UserStatuses, u.Status, known, status), func() error {
			if status != domain.UserActive {
				return p.notSelf(id)()
			}
			return nil
		}),
		Do: func(ctx context.Context) error {
			return ignore(client.SetStatus(ctx, p.api.Users(), id, status))
		},
	})
}

func (p *UsersPage) Delete(ctx context.Context, id domain.ID) Result {
	d, _ := p.data()
	u, _ := find(d.Users, id, userID)
	return p.disp.Dispatch(ctx, Mutation{
		Action: "user.delete",
		Prompt: fmt.Sprintf("%s kullanıcısı silinsin mi?", u.Username),
		Guard:  p.guard(domain.ActManageUsers, nil, p.notSelf(id)),
		Do:     func(ctx context.Context) error { return p.api.Users().Delete(ctx, id) },
	})
}

func (p *UsersPage) notSelf(id domain.ID) func() error {
	return func() error {
		if id == p.caller.UserID {
			return domain.ConflictError{Resource: "kullanıcı", Msg: "kendi hesabınız üzerinde bu işlem yapılamaz"}
		}
		return nil
	}
}
