package controllers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hiteshchoudhary/chai-backend-sub000/helpers"
)

func TestCanView(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	cases := []struct {
		name        string
		isPublished bool
		actor       primitive.ObjectID
		hasActor    bool
		want        bool
	}{
		{"published anonymous", true, primitive.NilObjectID, false, true},
		{"published stranger", true, stranger, true, true},
		{"private anonymous", false, primitive.NilObjectID, false, false},
		{"private stranger", false, stranger, true, false},
		{"private owner", false, owner, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := canView(tc.isPublished, owner, tc.actor, tc.hasActor); got != tc.want {
				t.Fatalf("expected %v got %v", tc.want, got)
			}
		})
	}
}

func TestNewPagedResult(t *testing.T) {
	opts := helpers.ListOptions{Page: 2, Limit: 10}

	full := newPagedResult([]int{}, 10, opts)
	if !full.HasNextPage {
		t.Fatal("a full page should report a next page")
	}

	short := newPagedResult([]int{}, 7, opts)
	if short.HasNextPage {
		t.Fatal("a short page is the last one")
	}
	if short.Page != 2 || short.Limit != 10 {
		t.Fatalf("unexpected paging echo %+v", short)
	}
}

func TestPageStages(t *testing.T) {
	opts := helpers.ListOptions{Page: 3, Limit: 20, SortBy: "views", SortType: "asc"}
	stages := pageStages(opts, "views")

	if len(stages) != 3 {
		t.Fatalf("expected sort/skip/limit got %v", stages)
	}
	if stages[1]["$skip"] != int64(40) {
		t.Fatalf("expected skip 40 got %v", stages[1])
	}
	if stages[2]["$limit"] != int64(20) {
		t.Fatalf("expected limit 20 got %v", stages[2])
	}
	sort := stages[0]["$sort"].(bson.D)
	if sort[0].Key != "views" || sort[0].Value != 1 {
		t.Fatalf("expected views asc got %v", sort)
	}
}

func TestLikeStagesAnonymous(t *testing.T) {
	stages := likeStages("video", primitive.NilObjectID, false)

	addFields := stages[1]["$addFields"].(bson.M)
	if addFields["is_liked"] != false {
		t.Fatalf("anonymous is_liked must be constant false, got %v", addFields["is_liked"])
	}
	project := stages[2]["$project"].(bson.M)
	if project["likes"] != 0 {
		t.Fatal("joined likes array must not be materialized in results")
	}
}

func TestLikeStagesActor(t *testing.T) {
	actor := primitive.NewObjectID()
	stages := likeStages("comment", actor, true)

	lookup := stages[0]["$lookup"].(bson.M)
	if lookup["foreignField"] != "comment" {
		t.Fatalf("expected join on comment field got %v", lookup)
	}
	addFields := stages[1]["$addFields"].(bson.M)
	if _, ok := addFields["is_liked"].(bson.M); !ok {
		t.Fatalf("expected $in expression for is_liked, got %v", addFields["is_liked"])
	}
}

func TestVideoListPipelineVisibility(t *testing.T) {
	opts := helpers.ListOptions{Page: 1, Limit: 10}
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	match := func(pipeline []bson.M) bson.M {
		return pipeline[0]["$match"].(bson.M)
	}

	public := match(videoListPipeline(opts, nil, primitive.NilObjectID, false))
	if public["is_published"] != true {
		t.Fatalf("public listing must filter to published, got %v", public)
	}

	foreign := match(videoListPipeline(opts, &owner, stranger, true))
	if foreign["is_published"] != true {
		t.Fatalf("another user's listing must stay published-only, got %v", foreign)
	}
	if foreign["owner"] != owner {
		t.Fatalf("expected owner filter, got %v", foreign)
	}

	own := match(videoListPipeline(opts, &owner, owner, true))
	if _, filtered := own["is_published"]; filtered {
		t.Fatalf("owners see their own unpublished videos, got %v", own)
	}
}

func TestVideoListPipelineTextFilter(t *testing.T) {
	opts := helpers.ListOptions{Page: 1, Limit: 10, Query: "golang"}
	pipeline := videoListPipeline(opts, nil, primitive.NilObjectID, false)

	match := pipeline[0]["$match"].(bson.M)
	and, ok := match["$and"].([]bson.M)
	if !ok || len(and) != 2 {
		t.Fatalf("expected visibility AND text filter, got %v", match)
	}
	if _, ok := and[1]["$or"]; !ok {
		t.Fatalf("expected $or text clause, got %v", and[1])
	}
}
