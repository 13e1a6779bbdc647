package mdb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Query shapes the results of a find: which fields are returned,
// in what order, and which page of the results.
// A nil Query returns all matching items in natural order.
type Query struct {
	Projection bson.D
	Sort       bson.D
	Skip       int64
	Limit      int64
}

// Page returns a query for the specified page of results.
// Pages are numbered from zero.
func Page(page, size int64) *Query {
	return &Query{Skip: page * size, Limit: size}
}

// SortBy returns a copy of the query with the specified sort keys.
// Each key is ascending unless prefixed with '-'.
func (q *Query) SortBy(keys ...string) *Query {
	sorted := q.copy()
	sorted.Sort = bson.D{}
	for _, key := range keys {
		if len(key) > 1 && key[0] == '-' {
			sorted.Sort = append(sorted.Sort, bson.E{Key: key[1:], Value: -1})
		} else {
			sorted.Sort = append(sorted.Sort, bson.E{Key: key, Value: 1})
		}
	}
	return sorted
}

// Fields returns a copy of the query restricted to the specified fields.
// The _id field is suppressed unless it is named.
func (q *Query) Fields(fields ...string) *Query {
	projected := q.copy()
	projected.Projection = bson.D{}
	withID := false
	for _, field := range fields {
		if field == "_id" {
			withID = true
		}
		projected.Projection = append(projected.Projection, bson.E{Key: field, Value: 1})
	}
	if !withID {
		projected.Projection = append(projected.Projection, bson.E{Key: "_id", Value: 0})
	}
	return projected
}

// FindOptions converts the query to driver options.
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if q == nil {
		return opts
	}
	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

func (q *Query) copy() *Query {
	if q == nil {
		return &Query{}
	}
	c := *q
	return &c
}
