package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// JSONError writes the API error envelope.
func JSONError(c *gin.Context, status int, errLabel, message string) {
	c.JSON(status, gin.H{"error": errLabel, "message": message})
}

// JSONValidationError writes a 400 with field-level detail.
func JSONValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation error",
		"message": "The request input is invalid.",
		"details": err.Error(),
	})
}

// TranslateError is the single funnel mapping storage and token failures to
// the response taxonomy. Handlers pass through any error they did not
// already turn into a specific response.
func TranslateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		JSONError(c, http.StatusNotFound, "Record not found", "The requested record does not exist.")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		JSONError(c, http.StatusConflict, "Duplicate entry", "A record with this value already exists.")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		JSONError(c, http.StatusBadRequest, "Foreign key constraint failed", "The referenced record does not exist.")
	case errors.Is(err, jwt.ErrTokenExpired):
		JSONError(c, http.StatusUnauthorized, "Token expired", "Your session has expired. Please log in again.")
	case errors.As(err, new(*jwt.ValidationError)):
		JSONError(c, http.StatusUnauthorized, "Invalid token", "The provided token is invalid.")
	default:
		body := gin.H{"error": "Internal Server Error", "message": "An unexpected error occurred."}
		if gin.Mode() != gin.ReleaseMode {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// Pagination is the page metadata attached to every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

func newPagination(page, limit int, total int64) Pagination {
	return Pagination{
		Page:       page,
		Limit:      limit,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// parsePagination validates page and limit before any storage access. It
// writes the 400 response itself and reports ok=false.
func parsePagination(c *gin.Context) (page, limit int, ok bool) {
	page, limit = defaultPage, defaultLimit

	if p := c.Query("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			JSONError(c, http.StatusBadRequest, "Validation error", "page must be an integer >= 1")
			return 0, 0, false
		}
		page = n
	}
	if l := c.Query("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 || n > maxLimit {
			JSONError(c, http.StatusBadRequest, "Validation error", "limit must be an integer between 1 and 100")
			return 0, 0, false
		}
		limit = n
	}
	return page, limit, true
}

// parseBoolQuery validates an optional boolean query parameter, writing the
// 400 response itself on bad input.
func parseBoolQuery(c *gin.Context, name string) (val *bool, ok bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Validation error", name+" must be a boolean")
		return nil, false
	}
	return &b, true
}

// parseFloatQuery validates an optional numeric query parameter, writing the
// 400 response itself on bad input.
func parseFloatQuery(c *gin.Context, name string) (val *float64, ok bool) {
	s := c.Query(name)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		JSONError(c, http.StatusBadRequest, "Validation error", name+" must be a number")
		return nil, false
	}
	return &f, true
}
