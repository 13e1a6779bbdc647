package mdb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	*Access
	*mongo.Collection
	ctx context.Context
}

func newCollection(access *Access, collection *mongo.Collection, ctx context.Context) *Collection {
	return &Collection{
		Access:     access,
		Collection: collection,
		ctx:        ctx,
	}
}

// ConnectCollection creates a new collection object with the specified collection definition.
func ConnectCollection(access *Access, definition *CollectionDefinition) (*Collection, error) {
	collection, err := access.Collection(
		access.Context(), definition.Name, definition.ValidationJSON, definition.Finishers...)
	if err != nil {
		return nil, fmt.Errorf("connecting collection: %w", err)
	}
	return collection, nil
}

func (c *Collection) ContextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, c.Access.config.Collection)
}

// Count documents in collection matching filter.
func (c *Collection) Count(filter bson.D) (int64, error) {
	if filter == nil {
		filter = NoFilter()
	}
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	if count, err := c.CountDocuments(ctx, filter); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	} else {
		return count, nil
	}
}

// Create item in DB.
func (c *Collection) Create(item interface{}) error {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	if _, err := c.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// CreateMany inserts all of the items in a single call.
// Returns the number of inserted items.
func (c *Collection) CreateMany(items []interface{}) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("insert items: %w", err)
	}

	return len(result.InsertedIDs), nil
}

// Delete item from DB.
// Set idempotent to true to avoid errors if the item does not exist.
func (c *Collection) Delete(filter bson.D, idempotent bool) error {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.DeletedCount > 1 || (result.DeletedCount == 0 && !idempotent) {
		// Should have deleted a single item or none if idempotent flag set.
		return fmt.Errorf("deleted %d items", result.DeletedCount)
	}

	return nil
}

// DeleteAll items from this collection.
func (c *Collection) DeleteAll() error {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	_, err := c.DeleteMany(ctx, NoFilter())
	if err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Drop collection.
func (c *Collection) Drop() error {
	ctx, cancelFn := c.ContextWithTimeout()
	defer cancelFn()
	return c.Collection.Drop(ctx)
}

// Find an item in the database and return it as a blank interface.
// The result will likely contain bson objects.
func (c *Collection) Find(filter bson.D) (interface{}, error) {
	var item bson.M
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	if err := c.FindOne(ctx, filter).Decode(&item); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// FindOrCreate returns an existing object or creates it if it does not already exist.
// The filter must correctly find the object as a second Find is done after any necessary creation.
func (c *Collection) FindOrCreate(filter bson.D, item interface{}) (interface{}, error) {
	found, err := c.Find(filter)
	if err != nil {
		if !IsNotFound(err) {
			return found, err
		}

		err = c.Create(item)
		if err != nil {
			return found, err
		}

		found, err = c.Find(filter)
		if err != nil {
			return found, fmt.Errorf("find just created item: %w", err)
		}
	}

	return found, nil
}

// Iterate over a set of items, applying the specified function to each one.
// The items passed to the function will likely contain bson objects.
func (c *Collection) Iterate(filter bson.D, fn func(item interface{}) error) error {
	cursor, err := c.Collection.Find(c.ctx, filter)
	if err != nil {
		return fmt.Errorf("find items: %w", err)
	}
	defer func() { _ = cursor.Close(c.ctx) }()

	for cursor.Next(c.ctx) {
		var item bson.M
		if err := cursor.Decode(&item); err != nil {
			return fmt.Errorf("decode item: %w", err)
		} else if err := fn(item); err != nil {
			return fmt.Errorf("apply function: %w", err)
		}
	}

	return cursor.Err()
}

// Query returns the items matching the filter, shaped by the query options.
func (c *Collection) Query(filter interface{}, query *Query) ([]bson.M, error) {
	items := make([]bson.M, 0)
	if err := c.queryAll(filter, query, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// TextSearch returns the items matching the search terms via the collection's text index.
// The collection must have a text index or the server will reject the query.
func (c *Collection) TextSearch(terms string, query *Query) ([]bson.M, error) {
	return c.Query(TextFilter(terms), query)
}

func (c *Collection) queryAll(filter interface{}, query *Query, results interface{}) error {
	if filter == nil {
		filter = NoFilter()
	}
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	cursor, err := c.Collection.Find(ctx, filter, query.FindOptions())
	if err != nil {
		return fmt.Errorf("find items: %w", err)
	}
	if err = cursor.All(ctx, results); err != nil {
		return fmt.Errorf("decode items: %w", err)
	}

	return nil
}

var errNotString = errors.New("value not a string")

// StringValuesFor returns an array of distinct string values for the specified filter and field.
func (c *Collection) StringValuesFor(field string, filter bson.D) ([]string, error) {
	if filter == nil {
		filter = NoFilter()
	}
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	values, err := c.Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("distinct values: %w", err)
	}

	var ok bool
	result := make([]string, len(values))
	for i, value := range values {
		if result[i], ok = value.(string); !ok {
			return nil, errNotString
		}
	}

	return result, nil
}

var errNoItemMatch = errors.New("no matching item")
var errNoItemModified = errors.New("no modified item")

// Replace entire item referenced by filter with specified item.
// If the filter matches more than one document Mongo will choose one to update.
func (c *Collection) Replace(filter, item interface{}, opts ...*options.UpdateOptions) error {
	return c.Update(filter, bson.M{"$set": item}, opts...)
}

// Update item referenced by filter by applying update operator expressions.
// If the filter matches more than one document Mongo will choose one to update.
func (c *Collection) Update(filter, operators interface{}, opts ...*options.UpdateOptions) error {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.UpdateOne(ctx, filter, operators, opts...)
	if err != nil {
		return fmt.Errorf("replace item: %w", err)
	} else if result.MatchedCount < 1 && result.UpsertedCount < 1 {
		return errNoItemMatch
	} else if result.ModifiedCount < 1 && result.UpsertedCount < 1 {
		return errNoItemModified
	} else {
		return nil
	}
}

// Upsert sets the specified fields on the item referenced by filter,
// inserting a new item if none matches.
// The result reports whether an existing item was matched or a new one upserted.
func (c *Collection) Upsert(filter, fields interface{}) (*mongo.UpdateResult, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.UpdateOne(ctx, filter, bson.M{"$set": fields}, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("upsert item: %w", err)
	}

	return result, nil
}

////////////////////////////////////////////////////////////////////////////////

// NoFilter returns an empty bson.D object for use as an empty filter.
func NoFilter() bson.D {
	return bson.D{}
}

// TextFilter returns a $text filter searching for the specified terms.
func TextFilter(terms string) bson.D {
	return bson.D{{Key: "$text", Value: bson.D{{Key: "$search", Value: terms}}}}
}
