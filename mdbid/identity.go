package mdbid

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identifier provides an interface to items that use the primitive Mongo ObjectID.
type Identifier interface {
	ID() primitive.ObjectID
	Filter() bson.D
}

var _ Identifier = &Identity{}

// Identity instantiates the Identifier interface.
// Embed it with `bson:"inline"`.
type Identity struct {
	OID primitive.ObjectID `bson:"_id,omitempty"`
}

// FromUUID returns an Identity whose ObjectID is derived from the specified UUID.
func FromUUID(id uuid.UUID) Identity {
	return Identity{OID: ObjectIDFromUUID(id)}
}

// ID returns the primitive Mongo ObjectID for an item.
func (idm *Identity) ID() primitive.ObjectID {
	return idm.OID
}

// Filter returns a Mongo filter object for the item's ID.
func (idm *Identity) Filter() bson.D {
	return bson.D{{Key: "_id", Value: idm.OID}}
}

// ObjectIDFromUUID sets an ObjectID manually from the first 12 bytes of a UUID.
// Equivalent to parsing the first 24 hex digits of the UUID with the dashes removed.
// Distinct UUIDs may map to the same ObjectID, though not in practice for random UUIDs.
func ObjectIDFromUUID(id uuid.UUID) primitive.ObjectID {
	var oid primitive.ObjectID
	copy(oid[:], id[:len(oid)])
	return oid
}
