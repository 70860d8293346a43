package handlers

import (
	"net/http"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"
	"adminhub/internal/repositories"
	"adminhub/internal/services"

	"github.com/gin-gonic/gin"
)

func (h Handler) categories(c *gin.Context) services.CategoryService {
	return services.CategoryService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

func (h Handler) assets(c *gin.Context) services.AssetService {
	return services.AssetService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c)}
}

func (h Handler) assignments(c *gin.Context) services.AssignmentService {
	return services.AssignmentService{DB: h.DB, Cache: h.Cache, RequestID: requestID(c), Now: h.Now}
}

// GET /api/categories
func (h Handler) ListCategories(c *gin.Context) {
	cr, valid := criteria(c, repositories.CategoryFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.categories(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/categories/:id
func (h Handler) GetCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	cat, err := h.categories(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, cat)
}

// POST /api/categories
func (h Handler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	cat, err := h.categories(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, cat)
}

// PUT /api/categories/:id
func (h Handler) UpdateCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.CategoryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	cat, err := h.categories(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, cat)
}

// DELETE /api/categories/:id
func (h Handler) DeleteCategory(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.categories(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

// GET /api/assets
func (h Handler) ListAssets(c *gin.Context) {
	cr, valid := criteria(c, repositories.AssetFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.assets(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/assets/:id
func (h Handler) GetAsset(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	a, err := h.assets(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, a)
}

// GET /api/assets/:id/detail
func (h Handler) GetAssetDetail(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	d, err := h.assets(c).Detail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, d)
}

// GET /api/assets/user/:userId/assigned
func (h Handler) ListAssignedAssets(c *gin.Context) {
	userID, valid := pathID(c, "userId")
	if !valid {
		return
	}
	list, err := h.assets(c).ListAssignedTo(c.Request.Context(), caller(c), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// POST /api/assets
func (h Handler) CreateAsset(c *gin.Context) {
	var req models.AssetRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := h.assets(c).Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, a)
}

// PUT /api/assets/:id
func (h Handler) UpdateAsset(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.AssetRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := h.assets(c).Update(c.Request.Context(), id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, a)
}

// PATCH /api/assets/:id/status
func (h Handler) UpdateAssetStatus(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req models.StatusRequest[domain.AssetStatus]
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := h.assets(c).UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, a)
}

// DELETE /api/assets/:id
func (h Handler) DeleteAsset(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.assets(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	noContent(c)
}

// GET /api/assignments
func (h Handler) ListAssignments(c *gin.Context) {
	cr, valid := criteria(c, repositories.AssignmentFilters.SelectorKeys())
	if !valid {
		return
	}
	list, err := h.assignments(c).List(c.Request.Context(), cr)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/assignments/:id
func (h Handler) GetAssignment(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	a, err := h.assignments(c).Get(c.Request.Context(), caller(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, a)
}

// GET /api/assignments/asset/:assetId
func (h Handler) ListAssetAssignments(c *gin.Context) {
	assetID, valid := pathID(c, "assetId")
	if !valid {
		return
	}
	list, err := h.assignments(c).ListByAsset(c.Request.Context(), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// GET /api/assignments/asset/:assetId/active
// Responds 204 when the asset is not held by anyone.
func (h Handler) GetActiveAssignment(c *gin.Context) {
	assetID, valid := pathID(c, "assetId")
	if !valid {
		return
	}
	a, err := h.assignments(c).Active(c.Request.Context(), assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if a == nil {
		noContent(c)
		return
	}
	ok(c, a)
}

// GET /api/assignments/user/:userId
func (h Handler) ListUserAssignments(c *gin.Context) {
	userID, valid := pathID(c, "userId")
	if !valid {
		return
	}
	list, err := h.assignments(c).ListByUser(c.Request.Context(), caller(c), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ok(c, list)
}

// POST /api/assignments
func (h Handler) CreateAssignment(c *gin.Context) {
	var req models.AssignmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	a, err := h.assignments(c).Create(c.Request.Context(), caller(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	created(c, a)
}

// GET /api/assignments/:id/receipt
func (h Handler) GetAssignmentReceipt(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	svc := services.DocsService{DB: h.DB, RequestID: requestID(c), Now: h.Now}
	pdf, filename, err := svc.Receipt(c.Request.Context(), caller(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
