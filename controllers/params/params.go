// Package params reads path, query and loosely typed body values shared by
// the handlers.
package params

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glamourcosmetics/storefront-api/apperr"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
	MaxOffset    = 1 << 30
)

type Page struct {
	Limit  int
	Offset int
}

// PageFrom reads limit and offset, clamping limit to 1..MaxLimit and
// offset to >= 0.
func PageFrom(c *gin.Context) Page {
	return Page{
		Limit:  intQuery(c, "limit", DefaultLimit, 1, MaxLimit),
		Offset: intQuery(c, "offset", 0, 0, MaxOffset),
	}
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

func (p Page) Of(total int64) Pagination {
	return Pagination{
		Total:   total,
		Limit:   p.Limit,
		Offset:  p.Offset,
		HasMore: int64(p.Offset) < total-int64(p.Limit),
	}
}

func intQuery(c *gin.Context, key string, def, min, max int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// ID parses the named path parameter. A malformed id reads as a missing
// entity.
func ID(c *gin.Context, name, entity string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.E(apperr.NotFound, entity+" not found")
	}
	return uint(n), nil
}

// Bool parses "true"/"false" style query values; anything else is unset.
func Bool(c *gin.Context, key string) *bool {
	b, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return nil
	}
	return &b
}
