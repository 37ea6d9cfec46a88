package pkg

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"github.com/safatanc/vidtube/internal/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50

	// MaxPlaylistVideoLimit applies to the video section of a single playlist.
	MaxPlaylistVideoLimit = 100
)

// ListQuery describes one paginated listing. Filter is applied to both the
// count and the fetch, Expand (joins, preloads) only to the fetch.
type ListQuery struct {
	Model  any
	Filter func(*gorm.DB) *gorm.DB
	Expand func(*gorm.DB) *gorm.DB
	Sort   []clause.OrderByColumn
}

// NewPageRequest clamps raw page and limit strings. Invalid values fall back
// to the defaults and limits above maxLimit are capped, so it never fails.
func NewPageRequest(pageStr, limitStr string, maxLimit int) models.PageRequest {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return models.PageRequest{Page: page, Limit: limit}
}

func ParsePageRequest(c *fiber.Ctx, maxLimit int) models.PageRequest {
	return NewPageRequest(c.Query("page"), c.Query("limit"), maxLimit)
}

// SortByCreatedAt is the default listing order.
func SortByCreatedAt(desc bool) []clause.OrderByColumn {
	return []clause.OrderByColumn{{Column: clause.Column{Table: clause.CurrentTable, Name: "created_at"}, Desc: desc}}
}

// Paginate counts and fetches one page of T. Both statements run against
// db, which should already carry the request context.
func Paginate[T any](db *gorm.DB, q ListQuery, req models.PageRequest) (*models.Page[T], error) {
	base := db.Model(q.Model)
	if q.Filter != nil {
		base = q.Filter(base)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to count records")
	}

	items := []T{}
	if total == 0 {
		return models.NewPage(items, total, req), nil
	}
	// Nothing to fetch past the last page.
	if int64(req.Offset()) >= total {
		return models.NewPage(items, total, req), nil
	}

	fetch := base.Session(&gorm.Session{})
	if q.Expand != nil {
		fetch = q.Expand(fetch)
	}

	sort := q.Sort
	if len(sort) == 0 {
		sort = SortByCreatedAt(true)
	}
	for _, col := range sort {
		fetch = fetch.Order(col)
	}
	fetch = fetch.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})

	if err := fetch.Limit(req.Limit).Offset(req.Offset()).Find(&items).Error; err != nil {
		return nil, appError.NewInternalServerError(err, "Failed to fetch records")
	}

	return models.NewPage(items, total, req), nil
}

// PageMessage picks the response message for a page by its state.
func PageMessage(state models.PageState, filled, empty, overshoot string) string {
	switch state {
	case models.PageEmpty:
		return empty
	case models.PageOvershoot:
		return overshoot
	default:
		return filled
	}
}
