package mdb

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexKind selects the type of index key.
type IndexKind int

const (
	// Ascending index keys.
	Ascending IndexKind = iota
	// Text index keys for $text queries.
	// A collection may have at most one text index.
	Text
)

type IndexDescription struct {
	kind   IndexKind
	unique bool
	keys   []string
}

// NewIndexDescription creates a new ascending index description.
func NewIndexDescription(unique bool, keys ...string) *IndexDescription {
	return &IndexDescription{
		kind:   Ascending,
		unique: unique,
		keys:   keys,
	}
}

// NewTextIndexDescription creates a new text index description over the specified fields.
func NewTextIndexDescription(keys ...string) *IndexDescription {
	return &IndexDescription{
		kind: Text,
		keys: keys,
	}
}

func (id *IndexDescription) AsBSON() bson.D {
	asBSON := bson.D{}
	for _, key := range id.keys {
		if id.kind == Text {
			asBSON = append(asBSON, bson.E{Key: key, Value: "text"})
		} else {
			asBSON = append(asBSON, bson.E{Key: key, Value: 1})
		}
	}
	return asBSON
}

// Name returns the default name Mongo assigns to the index.
func (id *IndexDescription) Name() string {
	suffix := "_1"
	if id.kind == Text {
		suffix = "_text"
	}
	parts := make([]string, 0, len(id.keys))
	for _, key := range id.keys {
		parts = append(parts, key+suffix)
	}
	return strings.Join(parts, "_")
}

// Finisher returns a function that can be used as a CollectionFinisher for creating this index.
func (id *IndexDescription) Finisher() CollectionFinisher {
	return func(access *Access, collection *Collection) error {
		return access.Index(collection, id)
	}
}

// Index creates the described index on the collection.
// Creating an identical index a second time is not an error.
func (a *Access) Index(collection *Collection, description *IndexDescription) error {
	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Index)
	defer cancel()
	opts := options.Index()
	if description.unique {
		opts.SetUnique(true)
	}
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    description.AsBSON(),
		Options: opts,
	})
	if err != nil {
		return fmt.Errorf("create index %s: %w", description.Name(), err)
	}

	a.Info("Created index " + description.Name() + " on collection " + collection.Name())

	return nil
}
