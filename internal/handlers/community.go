package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"educonnect/internal/db"
	"educonnect/internal/middleware"
	"educonnect/internal/models"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommunityHandler struct{}

func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{}
}

// fillLikedFlags batch-derives the per-user liked flag for a page of posts.
func fillLikedFlags(user *models.User, posts []models.Post) error {
	if user == nil || len(posts) == 0 {
		return nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var likes []models.PostLike
	if err := db.DB.Where("user_id = ? AND post_id IN ?", user.ID, ids).Find(&likes).Error; err != nil {
		return err
	}

	likedSet := make(map[uint]bool, len(likes))
	for _, l := range likes {
		likedSet[l.PostID] = true
	}
	for i := range posts {
		posts[i].IsLiked = likedSet[posts[i].ID]
	}
	return nil
}

func preloadPost(query *gorm.DB) *gorm.DB {
	return query.Preload("User").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("comments.created_at ASC")
		}).
		Preload("Comments.User")
}

// List returns the community feed filtered by category, newest first.
func (h *CommunityHandler) List(c *gin.Context) {
	page, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	query := db.DB.Model(&models.Post{})
	if category := c.Query("category"); category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		TranslateError(c, err)
		return
	}

	var posts []models.Post
	if err := preloadPost(query).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if err := fillLikedFlags(middleware.CurrentUser(c), posts); err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": newPagination(page, limit, total),
	})
}

func (h *CommunityHandler) Get(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))
	if id <= 0 {
		JSONError(c, http.StatusBadRequest, "Validation error", "id must be a positive integer")
		return
	}

	var post models.Post
	if err := preloadPost(db.DB).First(&post, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if user := middleware.CurrentUser(c); user != nil {
		var like models.PostLike
		if err := db.DB.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&like).Error; err == nil {
			post.IsLiked = true
		}
	}

	c.JSON(http.StatusOK, post)
}

type createPostRequest struct {
	Content  string   `json:"content" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

// Create publishes a post authored by the caller.
func (h *CommunityHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		JSONError(c, http.StatusBadRequest, "Validation error", "content must not be blank")
		return
	}

	post := models.Post{
		UserID:   user.ID,
		Content:  content,
		Category: req.Category,
		Tags:     req.Tags,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if err := db.DB.Create(&post).Error; err != nil {
		TranslateError(c, err)
		return
	}

	// A new category may have appeared.
	utils.GetCache().Delete("community:categories")

	if err := preloadPost(db.DB).First(&post, post.ID).Error; err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

// ToggleLike creates or removes the caller's like. The relation row and the
// likes counter move in one transaction; the counter never goes negative.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id := utils.StringToInt(c.Param("id"))
	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	liked := false
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.PostLike
		err := tx.Where("user_id = ? AND post_id = ?", user.ID, post.ID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			return tx.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("likes", gorm.Expr("GREATEST(likes - 1, 0)")).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&models.PostLike{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		TranslateError(c, err)
		return
	}

	if err := db.DB.First(&post, post.ID).Error; err != nil {
		TranslateError(c, err)
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "isLiked": liked, "likes": post.Likes})
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// AddComment appends a comment to the post; unknown post ids get a 404.
func (h *CommunityHandler) AddComment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONValidationError(c, err)
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		JSONError(c, http.StatusBadRequest, "Validation error", "content must not be blank")
		return
	}

	id := utils.StringToInt(c.Param("id"))
	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		TranslateError(c, err)
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.ID,
		Content: content,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		TranslateError(c, err)
		return
	}

	if err := db.DB.Preload("User").First(&comment, comment.ID).Error; err != nil {
		TranslateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *CommunityHandler) Categories(c *gin.Context) {
	const cacheKey = "community:categories"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	var categories []string
	if err := db.DB.Model(&models.Post{}).Distinct().Pluck("category", &categories).Error; err != nil {
		TranslateError(c, err)
		return
	}

	utils.GetCache().Set(cacheKey, categories, 5*time.Minute)
	c.JSON(http.StatusOK, categories)
}
