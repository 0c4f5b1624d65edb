package handlers

import (
	"errors"
	"net/http"
	"time"

	"educonnect/internal/db"
	"educonnect/internal/middleware"
	"educonnect/internal/models"
	"educonnect/internal/store"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DealHandler struct{}

func NewDealHandler() *DealHandler {
	return &DealHandler{}
}

func fillSavedDeals(user *models.User, deals []models.Deal) error {
	if user == nil || len(deals) == 0 {
		return nil
	}

	ids := make([]uint, len(deals))
	for i, d := range deals {
		ids[i] = d.ID
	}

	var saved []models.SavedDeal
	if err := db.DB.Where("user_id = ? AND deal_id IN ?", user.ID, ids).Find(&saved).Error; err != nil {
		return err
	}

	savedSet := make(map[uint]bool, len(saved))
	for _, s := range saved {
		savedSet[s.DealID] = true
	}
	for i := range deals {
		deals[i].Saved = savedSet[deals[i].ID]
	}
	return nil
}

// annotateDistances derives the distance field for deals that carry a
// location. Distances are presentation-time values, never persisted.
func annotateDistances(deals []models.Deal, lat, lng float64) {
	for i := range deals {
		d := &deals[i]
		if d.HasLocation() {
			km := utils.Distance(lat, lng, *d.Latitude, *d.Longitude)
			d.Distance = &km
		}
	}
}

// List returns the filtered, paginated deals ordered by creation time
// descending. With lat/lng supplied every located deal is annotated with
// its distance; maxDistance additionally restricts the collection to deals
// strictly closer than the threshold, in which case pagination applies to
// the proximity-filtered collection.
func (h *DealHandler) List(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}
	verified, ok := parseBoolQuery(c, "verified")
	if !ok {
		return
	}

	lat, ok := parseFloatQuery(c, "lat")
	if !ok {
		return
	}
	lng, ok := parseFloatQuery(c, "lng")
	if !ok {
		return
	}
	maxDistance, ok := parseFloatQuery(c, "maxDistance")
	if !ok {
		return
	}
	if maxDistance != nil && (lat == nil || lng == nil) {
		JSONError(c, http.StatusBadRequest, "Validation error", "maxDistance requires lat and lng")
		return
	}

	query := db.DB.Model(&models.Deal{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if verified != nil {
		query = query.Where("verified = ?", *verified)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR company ILIKE ?", pattern, pattern, pattern)
	}

	user := middleware.CurrentUser(c)

	if maxDistance != nil {
		// Proximity needs the distances before it can page, so the match
		// set is loaded and reduced in memory.
		var deals []models.Deal
		if err := query.Order("created_at DESC").Find(&deals).Error; err != nil {
			TranslateError(c, err)
			return
		}
		annotateDistances(deals, *lat, *lng)
		deals = store.FilterDeals(deals, store.Criteria{MaxDistanceKm: maxDistance})

		total := int64(len(deals))
		start := (page - 1) * limit
		if start > len(deals) {
			start = len(deals)
		}
		end := start + limit
		if end > len(deals) {
			end = len(deals)
		}
		pageSlice := deals[start:end]
		if err := fillSavedDeals(user, pageSlice); err != nil {
			TranslateError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"deals":      pageSlice,
			"pagination": newPagination(page, limit, total),
		})
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var deals []models.Deal
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&deals).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if lat != nil && lng != nil {
		annotateDistances(deals, *lat, *lng)
	}
	if err := fillSavedDeals(user, deals); err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deals":      deals,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *DealHandler) Get(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))
	if id <= 0 {
		JSONError(c, http.StatusBadRequest, "Validation error", "id must be a positive integer")
		return
	}

	lat, ok := parseFloatQuery(c, "lat")
	if !ok {
		return
	}
	lng, ok := parseFloatQuery(c, "lng")
	if !ok {
		return
	}

	var deal models.Deal
	if err := db.DB.First(&deal, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if lat != nil && lng != nil && deal.HasLocation() {
		km := utils.Distance(*lat, *lng, *deal.Latitude, *deal.Longitude)
		deal.Distance = &km
	}

	if user := middleware.CurrentUser(c); user != nil {
		var saved models.SavedDeal
		if err := db.DB.Where("user_id = ? AND deal_id = ?", user.ID, deal.ID).First(&saved).Error; err == nil {
			deal.Saved = true
		}
	}

	c.JSON(http.StatusOK, deal)
}

// ToggleSave mirrors the resource save toggle for deals.
func (h *DealHandler) ToggleSave(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id := utils.StringToInt(c.Param("id"))
	var deal models.Deal
	if err := db.DB.First(&deal, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	saved := false
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.SavedDeal
		err := tx.Where("user_id = ? AND deal_id = ?", user.ID, deal.ID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Deal{}).Where("id = ?", deal.ID).
				UpdateColumn("save_count", gorm.Expr("GREATEST(save_count - 1, 0)")).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.SavedDeal{UserID: user.ID, DealID: deal.ID}).Error; err != nil {
			return err
		}
		saved = true
		return tx.Model(&models.Deal{}).Where("id = ?", deal.ID).
			UpdateColumn("save_count", gorm.Expr("save_count + 1")).Error
	})
	if err != nil {
		TranslateError(c, err)
		return
	}

	message := "Deal unsaved"
	if saved {
		message = "Deal saved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
}

// Saved returns the caller's saved deals, newest first.
func (h *DealHandler) Saved(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	query := db.DB.Model(&models.Deal{}).
		Joins("JOIN saved_deals ON saved_deals.deal_id = deals.id").
		Where("saved_deals.user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var deals []models.Deal
	if err := query.Order("deals.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&deals).Error; err != nil {
		TranslateError(c, err)
		return
	}

	for i := range deals {
		deals[i].Saved = true
	}

	c.JSON(http.StatusOK, gin.H{
		"deals":      deals,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *DealHandler) Categories(c *gin.Context) {
	const cacheKey = "deals:categories"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var categories []string
	if err := db.DB.Model(&models.Deal{}).Distinct().Pluck("category", &categories).Error; err != nil {
		TranslateError(c, err)
		return
	}

	utils.GetCache().Set(cacheKey, categories, 5*time.Minute)
	c.JSON(http.StatusOK, categories)
}
