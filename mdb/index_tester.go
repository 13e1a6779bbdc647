package mdb

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// IndexTester provides a utility for verifying index creation.
type IndexTester []indexDatum

type indexDatum struct {
	Name    string
	Key     bson.M
	Unique  bool
	Weights bson.M
}

func NewIndexTester() IndexTester {
	return make(IndexTester, 0, 2)
}

// TestIndexes verifies that the collection has exactly the _id index plus the described indexes.
func (it IndexTester) TestIndexes(t *testing.T, collection *Collection, descriptions ...*IndexDescription) {
	ctx := context.Background()
	cursor, err := collection.Indexes().List(ctx)
	require.NoError(t, err)
	err = cursor.All(ctx, &it)
	require.NoError(t, err)
	assert.Len(t, it, len(descriptions)+1)
	it.hasIndexNamed(t, "_id_", NewIndexDescription(false, "_id"))
	for _, description := range descriptions {
		it.hasIndexNamed(t, description.Name(), description)
	}
}

func (it IndexTester) hasIndexNamed(t *testing.T, name string, description *IndexDescription) {
	for _, data := range it {
		if data.Name == name {
			assert.Equal(t, description.unique, data.Unique, "check unique for index %s", name)
			if description.kind == Text {
				// Text indexes are keyed on internal fields, the indexed fields are in the weights.
				assert.Equal(t, "text", data.Key["_fts"], "check text key for index %s", name)
				for _, key := range description.keys {
					assert.Contains(t, data.Weights, key, "check weights for index %s", name)
				}
				return
			}
			keyMap := make(bson.M, len(description.keys))
			for _, key := range description.keys {
				keyMap[key] = int32(1)
			}
			assert.Equal(t, keyMap, data.Key, "check keys for index %s", name)
			return
		}
	}

	names := make([]string, 0, len(it))
	for _, data := range it {
		names = append(names, data.Name)
	}
	assert.Fail(t, "missing index", "no index %s (%s)", name, strings.Join(names, ", "))
}
