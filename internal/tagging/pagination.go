package tagging

import "gorm.io/gorm"

// DefaultPageSize applies when a caller asks for a non-positive limit.
const DefaultPageSize = 50

// PageMeta describes where a page sits in the full result.
type PageMeta struct {
	TotalItems  int64
	TotalPages  int
	CurrentPage int
	PageSize    int
}

// Page is one slice of a longer ordered result.
type Page[T any] struct {
	Data []T
	Meta PageMeta
}

// paginate counts the rows matched by query and loads page (1-based) of size
// limit. Scopes (ordering, preloads) apply to the page query only.
func paginate[T any](query *gorm.DB, page, limit int, scopes ...func(*gorm.DB) *gorm.DB) (*Page[T], error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	var totalItems int64
	if err := query.Session(&gorm.Session{}).Model(new(T)).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	results := make([]T, 0, limit)
	offset := (page - 1) * limit
	if err := query.Scopes(scopes...).Offset(offset).Limit(limit).Find(&results).Error; err != nil {
		return nil, err
	}

	return &Page[T]{
		Data: results,
		Meta: PageMeta{
			TotalItems:  totalItems,
			TotalPages:  int((totalItems + int64(limit) - 1) / int64(limit)),
			CurrentPage: page,
			PageSize:    limit,
		},
	}, nil
}
