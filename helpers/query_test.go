package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func listContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseListOptionsDefaults(t *testing.T) {
	opts := ParseListOptions(listContext(t, ""))

	if opts.Page != DefaultPage {
		t.Fatalf("expected page %d got %d", DefaultPage, opts.Page)
	}
	if opts.Limit != DefaultLimit {
		t.Fatalf("expected limit %d got %d", DefaultLimit, opts.Limit)
	}
	if opts.Skip() != 0 {
		t.Fatalf("expected skip 0 got %d", opts.Skip())
	}
}

func TestParseListOptionsCoercion(t *testing.T) {
	cases := []struct {
		name  string
		query string
		page  int64
		limit int64
	}{
		{"negative page", "page=-3&limit=5", 1, 5},
		{"zero page", "page=0", 1, DefaultLimit},
		{"zero limit", "limit=0", 1, DefaultLimit},
		{"negative limit", "limit=-10", 1, DefaultLimit},
		{"oversized limit", "limit=999", 1, MaxLimit},
		{"not numbers", "page=abc&limit=xyz", 1, DefaultLimit},
		{"well formed", "page=3&limit=25", 3, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := ParseListOptions(listContext(t, tc.query))
			if opts.Page != tc.page {
				t.Fatalf("expected page %d got %d", tc.page, opts.Page)
			}
			if opts.Limit != tc.limit {
				t.Fatalf("expected limit %d got %d", tc.limit, opts.Limit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	opts := ListOptions{Page: 4, Limit: 25}
	if opts.Skip() != 75 {
		t.Fatalf("expected skip 75 got %d", opts.Skip())
	}
}

func TestSortSpecIgnoresUnknownField(t *testing.T) {
	opts := ListOptions{SortBy: "password", SortType: "asc"}
	sort := opts.SortSpec("views", "duration")

	want := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	if len(sort) != len(want) {
		t.Fatalf("expected %d sort keys got %d: %v", len(want), len(sort), sort)
	}
	for i := range want {
		if sort[i] != want[i] {
			t.Fatalf("sort key %d: expected %v got %v", i, want[i], sort[i])
		}
	}
}

func TestSortSpecAllowedField(t *testing.T) {
	opts := ListOptions{SortBy: "views", SortType: "asc"}
	sort := opts.SortSpec("views", "duration")

	if sort[0].Key != "views" || sort[0].Value != 1 {
		t.Fatalf("expected views asc first, got %v", sort[0])
	}
	if sort[1].Key != "created_at" || sort[1].Value != -1 {
		t.Fatalf("expected created_at tie-break, got %v", sort[1])
	}
	if sort[len(sort)-1].Key != "_id" {
		t.Fatalf("expected _id as final tie-break, got %v", sort[len(sort)-1])
	}
}

func TestSortSpecCreatedAtNotDuplicated(t *testing.T) {
	opts := ListOptions{SortBy: "created_at", SortType: "asc"}
	sort := opts.SortSpec("created_at")

	if len(sort) != 2 {
		t.Fatalf("expected 2 sort keys got %v", sort)
	}
	if sort[0].Key != "created_at" || sort[0].Value != 1 {
		t.Fatalf("expected created_at asc first, got %v", sort[0])
	}
}

func TestSortSpecDefaultsDescending(t *testing.T) {
	opts := ListOptions{SortBy: "views", SortType: "weird"}
	sort := opts.SortSpec("views")
	if sort[0].Value != -1 {
		t.Fatalf("expected descending for unknown sortType, got %v", sort[0])
	}
}

func TestTextFilterEmptyQuery(t *testing.T) {
	opts := ListOptions{}
	if filter := opts.TextFilter("title"); filter != nil {
		t.Fatalf("expected nil filter got %v", filter)
	}
}

func TestTextFilterEscapesRegex(t *testing.T) {
	opts := ListOptions{Query: "c++ (tutorial)"}
	filter := opts.TextFilter("title", "description")

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or over 2 fields got %v", filter)
	}
	clause := or[0]["title"].(bson.M)
	if clause["$options"] != "i" {
		t.Fatalf("expected case-insensitive match got %v", clause)
	}
	pattern := clause["$regex"].(string)
	if pattern == "c++ (tutorial)" {
		t.Fatalf("regex metacharacters were not escaped: %q", pattern)
	}
}
