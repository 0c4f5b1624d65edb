package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"educonnect/internal/db"
	"educonnect/internal/middleware"
	"educonnect/internal/models"
	"educonnect/internal/services"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ResourceHandler struct{}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{}
}

// fillSavedFlags batch-derives the per-user saved flag for a page of
// resources. Anonymous callers see saved=false everywhere.
func fillSavedFlags(user *models.User, resources []models.Resource) error {
	if user == nil || len(resources) == 0 {
		return nil
	}

	ids := make([]uint, len(resources))
	for i, r := range resources {
		ids[i] = r.ID
	}

	var saved []models.SavedResource
	if err := db.DB.Where("user_id = ? AND resource_id IN ?", user.ID, ids).Find(&saved).Error; err != nil {
		return err
	}

	savedSet := make(map[uint]bool, len(saved))
	for _, s := range saved {
		savedSet[s.ResourceID] = true
	}
	for i := range resources {
		resources[i].Saved = savedSet[resources[i].ID]
	}
	return nil
}

// List returns the filtered, paginated resource catalog ordered by creation
// time descending.
func (h *ResourceHandler) List(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	resourceType := c.Query("type")
	if resourceType != "" && !models.ValidResourceType(resourceType) {
		JSONError(c, http.StatusBadRequest, "Validation error", "type must be one of course, certificate, software, grant")
		return
	}
	isFree, ok := parseBoolQuery(c, "isFree")
	if !ok {
		return
	}

	query := db.DB.Model(&models.Resource{})
	if resourceType != "" {
		query = query.Where("type = ?", resourceType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isFree != nil {
		query = query.Where("is_free = ?", *isFree)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR provider ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&resources).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if err := fillSavedFlags(middleware.CurrentUser(c), resources); err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources":  resources,
		"pagination": newPagination(page, limit, total),
	})
}

// Get returns one resource and schedules its view-count increment off the
// response path.
func (h *ResourceHandler) Get(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))
	if id <= 0 {
		JSONError(c, http.StatusBadRequest, "Validation error", "id must be a positive integer")
		return
	}

	var resource models.Resource
	if err := db.DB.First(&resource, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	services.GetViewCounter().Schedule(resource.ID)

	if user := middleware.CurrentUser(c); user != nil {
		var saved models.SavedResource
		if err := db.DB.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).First(&saved).Error; err == nil {
			resource.Saved = true
		}
		var application models.Application
		if err := db.DB.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).First(&application).Error; err == nil {
			resource.Applied = true
			resource.ApplicationStatus = string(application.Status)
		}
	}

	c.JSON(http.StatusOK, resource)
}

// ToggleSave creates or removes the caller's saved relation. The relation
// row and the save counter move in one transaction so they never diverge.
func (h *ResourceHandler) ToggleSave(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id := utils.StringToInt(c.Param("id"))
	var resource models.Resource
	if err := db.DB.First(&resource, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	saved := false
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.SavedResource
		err := tx.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Resource{}).Where("id = ?", resource.ID).
				UpdateColumn("save_count", gorm.Expr("GREATEST(save_count - 1, 0)")).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.SavedResource{UserID: user.ID, ResourceID: resource.ID}).Error; err != nil {
			return err
		}
		saved = true
		return tx.Model(&models.Resource{}).Where("id = ?", resource.ID).
			UpdateColumn("save_count", gorm.Expr("save_count + 1")).Error
	})
	if err != nil {
		TranslateError(c, err)
		return
	}

	message := "Resource unsaved"
	if saved {
		message = "Resource saved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
}

type applyRequest struct {
	Notes     string   `json:"notes"`
	Documents []string `json:"documents"`
}

// Apply submits an application. The unique (user, resource) index makes the
// conflict check race-safe; the pre-check only gives a nicer message.
func (h *ResourceHandler) Apply(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id := utils.StringToInt(c.Param("id"))
	var resource models.Resource
	if err := db.DB.First(&resource, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		JSONValidationError(c, err)
		return
	}

	var existing models.Application
	if err := db.DB.Where("user_id = ? AND resource_id = ?", user.ID, resource.ID).First(&existing).Error; err == nil {
		JSONError(c, http.StatusConflict, "Duplicate entry", "Already applied for this resource.")
		return
	}

	application := models.Application{
		UserID:     user.ID,
		ResourceID: resource.ID,
		Notes:      req.Notes,
		Documents:  req.Documents,
	}
	if application.Documents == nil {
		application.Documents = []string{}
	}
	if err := db.DB.Create(&application).Error; err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": application,
	})
}

// Saved returns the caller's saved resources, newest first.
func (h *ResourceHandler) Saved(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	query := db.DB.Model(&models.Resource{}).
		Joins("JOIN saved_resources ON saved_resources.resource_id = resources.id").
		Where("saved_resources.user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var resources []models.Resource
	if err := query.Order("resources.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&resources).Error; err != nil {
		TranslateError(c, err)
		return
	}

	for i := range resources {
		resources[i].Saved = true
	}

	c.JSON(http.StatusOK, gin.H{
		"resources":  resources,
		"pagination": newPagination(page, limit, total),
	})
}

// Applications returns the caller's applications, optionally filtered by
// status.
func (h *ResourceHandler) Applications(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	query := db.DB.Model(&models.Application{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var applications []models.Application
	if err := query.Preload("Resource").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&applications).Error; err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"pagination":   newPagination(page, limit, total),
	})
}

// Categories returns the distinct category list, cached briefly since it
// only changes on catalog writes.
func (h *ResourceHandler) Categories(c *gin.Context) {
	const cacheKey = "resources:categories"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var categories []string
	if err := db.DB.Model(&models.Resource{}).Distinct().Pluck("category", &categories).Error; err != nil {
		TranslateError(c, err)
		return
	}

	utils.GetCache().Set(cacheKey, categories, 5*time.Minute)
	c.JSON(http.StatusOK, categories)
}
