package test

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/madkins23/mongo-harness/mdbid"
)

const (
	// KnownAddress is assigned to every seventh record so that address filters have matches.
	KnownAddress = "989 East Road"

	// SearchTerm is included in the content of every fifth record so that text searches have matches.
	SearchTerm = "Magazine"

	contentWords = 20
)

// Record is one of the bulk documents used by query tests.
type Record struct {
	mdbid.Identity `bson:"inline"`
	UUID           string `bson:"id"`
	Timestamp      string `bson:"timestamp"`
	Seq            int    `bson:"seq"`
	FullName       string `bson:"fullName"`
	Address        string `bson:"address"`
	Content        string `bson:"content"`
	HasFlag        bool   `bson:"hasFlag"`
}

// Records generates count records with fake names, addresses, and content.
// The same seed always generates the same text, ids are always random.
// Record i is timestamped i days before now and flagged if i is a multiple of three.
func Records(count int, seed uint64, now time.Time) []*Record {
	faker := gofakeit.New(seed)
	records := make([]*Record, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		record := &Record{
			Identity:  mdbid.FromUUID(id),
			UUID:      id.String(),
			Timestamp: now.AddDate(0, 0, -i).UTC().Format(time.RFC3339Nano),
			Seq:       i,
			FullName:  faker.Name(),
			Address:   faker.Street(),
			Content:   content(faker, i%5 == 0),
			HasFlag:   i%3 == 0,
		}
		if i%7 == 0 {
			record.Address = KnownAddress
		}
		records = append(records, record)
	}
	return records
}

// Items converts records to the form needed for bulk insertion.
func Items(records []*Record) []interface{} {
	items := make([]interface{}, len(records))
	for i, record := range records {
		items[i] = record
	}
	return items
}

func content(faker *gofakeit.Faker, withSearchTerm bool) string {
	words := make([]string, 0, contentWords+1)
	if withSearchTerm {
		words = append(words, SearchTerm)
	}
	for len(words) < contentWords {
		words = append(words, faker.Word())
	}
	return faker.ProductDescription() + ". " + strings.Join(words, " ") + "."
}
