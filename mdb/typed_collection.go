package mdb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// TypedCollection decodes items returned from Mongo into the collection's type.
type TypedCollection[T any] struct {
	Collection
}

func NewTypedCollection[T any](collection *Collection) *TypedCollection[T] {
	return &TypedCollection[T]{
		Collection: *collection,
	}
}

// ConnectTypedCollection creates a new typed collection object with the specified collection definition.
func ConnectTypedCollection[T any](access *Access, definition *CollectionDefinition) (*TypedCollection[T], error) {
	collection, err := ConnectCollection(access, definition)
	if err != nil {
		return nil, err
	}
	return NewTypedCollection[T](collection), nil
}

// Find an item in the database.
func (c *TypedCollection[T]) Find(filter bson.D) (*T, error) {
	item := new(T)
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	err := c.FindOne(ctx, filter).Decode(item)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// FindOrCreate returns an existing object or creates it if it does not already exist.
func (c *TypedCollection[T]) FindOrCreate(filter bson.D, item *T) (*T, error) {
	// Can't inherit from Collection here, must redo the algorithm due to typing.
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
// A new item is decoded for each call to the function.
func (c *TypedCollection[T]) Iterate(filter bson.D, fn func(item *T) error) error {
	cursor, err := c.Collection.Collection.Find(c.ctx, filter)
	if err != nil {
		return fmt.Errorf("find items: %w", err)
	}
	defer func() { _ = cursor.Close(c.ctx) }()

	for cursor.Next(c.ctx) {
		item := new(T)
		if err := cursor.Decode(item); err != nil {
			return fmt.Errorf("decode item: %w", err)
		}

		if err := fn(item); err != nil {
			return fmt.Errorf("apply function: %w", err)
		}
	}

	return cursor.Err()
}

// Query returns the items matching the filter, shaped by the query options.
func (c *TypedCollection[T]) Query(filter interface{}, query *Query) ([]T, error) {
	items := make([]T, 0)
	if err := c.queryAll(filter, query, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// TextSearch returns the items matching the search terms via the collection's text index.
func (c *TypedCollection[T]) TextSearch(terms string, query *Query) ([]T, error) {
	return c.Query(TextFilter(terms), query)
}
