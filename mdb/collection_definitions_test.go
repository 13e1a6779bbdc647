package mdb

import "errors"

var (
	testCollectionProfiles = &CollectionDefinition{
		Name: "Col1",
	}
	testCollectionRecords = &CollectionDefinition{
		Name: "Col2",
	}
	testCollectionBulk = &CollectionDefinition{
		Name: "Col2-bulk",
	}
	testCollectionValidation = &CollectionDefinition{
		Name:           "test-collection-validation",
		ValidationJSON: testValidatorJSON,
	}
)

var testValidatorJSON = `{
	"$jsonSchema": {
		"bsonType": "object",
		"required": ["id", "fullName", "text"],
		"properties": {
			"id": {
				"bsonType": "string"
			},
			"fullName": {
				"bsonType": "string"
			},
			"text": {
				"bsonType": "string"
			}
		}
	}
}`

var errFinisher = errors.New("finisher failed")
