package helpers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListOptions carries the common list query parameters:
// page (1-based), limit, sortBy/sortType and a free-text query.
type ListOptions struct {
	Page     int64
	Limit    int64
	SortBy   string
	SortType string
	Query    string
}

// ParseListOptions reads pagination parameters off the request and
// coerces them into range: page < 1 becomes 1, limit <= 0 becomes the
// default, oversized limits are clamped.
func ParseListOptions(c *gin.Context) ListOptions {
	opts := ListOptions{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		SortBy:   strings.TrimSpace(c.Query("sortBy")),
		SortType: strings.ToLower(strings.TrimSpace(c.Query("sortType"))),
		Query:    strings.TrimSpace(c.Query("query")),
	}

	if page, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && page >= 1 {
		opts.Page = page
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		if limit > MaxLimit {
			limit = MaxLimit
		}
		opts.Limit = limit
	}
	return opts
}

// Skip returns the number of rows before the requested page.
func (o ListOptions) Skip() int64 {
	return (o.Page - 1) * o.Limit
}

// SortSpec builds a deterministic sort: the requested field first (only
// if allow-listed), then created_at descending and _id descending as
// tie-breakers so repeated calls paginate stably.
func (o ListOptions) SortSpec(allowed ...string) bson.D {
	sort := bson.D{}

	field := o.SortBy
	ok := false
	for _, a := range allowed {
		if field == a {
			ok = true
			break
		}
	}
	if ok {
		direction := -1
		if o.SortType == "asc" {
			direction = 1
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}
	if !ok || field != "created_at" {
		sort = append(sort, bson.E{Key: "created_at", Value: -1})
	}
	sort = append(sort, bson.E{Key: "_id", Value: -1})
	return sort
}

// TextFilter builds a case-insensitive substring match over the given
// fields, or nil when no free-text query was supplied.
func (o ListOptions) TextFilter(fields ...string) bson.M {
	if o.Query == "" || len(fields) == 0 {
		return nil
	}
	pattern := regexp.QuoteMeta(o.Query)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	return bson.M{"$or": or}
}
