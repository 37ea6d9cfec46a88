package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebResponse[T any] struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Stack   string   `json:"stack,omitempty"`
}

// Base holds the identity and timestamps shared by every stored entity.
// IDs are assigned in Go so the same models work on PostgreSQL and SQLite.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// PageRequest is an already clamped page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageState tells an empty page caused by no matches apart from one caused
// by paging past the end.
type PageState int

const (
	PageFilled PageState = iota
	PageEmpty
	PageOvershoot
)

// PageMeta is the resource-independent part of every paginated payload.
type PageMeta struct {
	CurrentPage int  `json:"currentPage"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page is what the pagination engine returns. Handlers convert it into a
// resource-specific list type that names the items and the total.
type Page[T any] struct {
	Items []T
	Total int64
	Meta  PageMeta
	State PageState
}

// NewPage computes the page metadata for a result of items out of total.
func NewPage[T any](items []T, total int64, req PageRequest) *Page[T] {
	if items == nil {
		items = []T{}
	}

	if total <= 0 {
		return &Page[T]{
			Items: []T{},
			Total: 0,
			Meta: PageMeta{
				CurrentPage: 1,
				Limit:       req.Limit,
			},
			State: PageEmpty,
		}
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	page := &Page[T]{
		Items: items,
		Total: total,
		Meta: PageMeta{
			CurrentPage: req.Page,
			Limit:       req.Limit,
			TotalPages:  totalPages,
			HasNextPage: req.Page < totalPages,
			HasPrevPage: req.Page > 1,
		},
		State: PageFilled,
	}
	if req.Page > totalPages {
		page.Items = []T{}
		page.State = PageOvershoot
	}
	return page
}

// MapPage converts the items of a page, keeping its metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	items := make([]U, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return &Page[U]{Items: items, Total: p.Total, Meta: p.Meta, State: p.State}
}
