package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/leekduck/cache"
	"github.com/use-agent/leekduck/models"
)

// Lister runs one listing.
type Lister interface {
	Scrape(ctx context.Context, kind models.Kind, q models.ListQuery) *models.ListResponse
}

// List returns a handler for GET /api/v1/<kind>.
//
// Flow:
//  1. Bind and validate the query filters.
//  2. Serve from cache when a fresh response exists.
//  3. Scrape, cache on success, then hand the response to onResult.
//
// cc and onResult may be nil.
func List(kind models.Kind, l Lister, cc *cache.Cache, onResult func(*models.ListResponse)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q models.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, models.ListResponse{
				Success: false,
				Kind:    kind,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: err.Error(),
				},
			})
			return
		}
		q.Defaults()

		key := cache.Key(kind, q)
		if cc != nil {
			if cached, hit := cc.Get(key); hit {
				c.Header("X-Cache", "hit")
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		resp := l.Scrape(c.Request.Context(), kind, q)
		if cc != nil {
			cc.Set(key, resp)
			c.Header("X-Cache", "miss")
		}
		if onResult != nil {
			onResult(resp)
		}
		c.JSON(statusOf(resp), resp)
	}
}

// statusOf maps a listing error code to an HTTP status code.
func statusOf(resp *models.ListResponse) int {
	if resp.Success || resp.Error == nil {
		return http.StatusOK
	}
	switch resp.Error.Code {
	case models.ErrCodeFetch, models.ErrCodeParse:
		return http.StatusBadGateway // 502
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
