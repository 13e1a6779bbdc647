//go:build database

package mdb

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/madkins23/mongo-harness/test"
)

const recordCount = 1000

type queryTestSuite struct {
	AccessTestSuite
	records   *TypedCollection[test.Record]
	textIndex *IndexDescription
	seeds     []*test.Record
}

func TestQuerySuite(t *testing.T) {
	suite.Run(t, new(queryTestSuite))
}

func (suite *queryTestSuite) SetupSuite() {
	suite.AccessTestSuite.SetupSuite()
	suite.textIndex = NewTextIndexDescription("content")
	suite.records = ConnectTypedCollectionHelper[test.Record](
		&suite.AccessTestSuite, testCollectionRecords, suite.textIndex)
	suite.seeds = test.Records(recordCount, 1, time.Now())
	inserted, err := suite.records.CreateMany(test.Items(suite.seeds))
	suite.Require().NoError(err)
	suite.Require().Equal(recordCount, inserted)
}

func (suite *queryTestSuite) TestInsertMany() {
	bulk := suite.ConnectCollection(testCollectionBulk)
	defer func() { suite.NoError(bulk.Drop()) }()
	inserted, err := bulk.CreateMany(test.Items(test.Records(recordCount, 2, time.Now())))
	suite.Require().NoError(err)
	suite.Equal(recordCount, inserted)
	count, err := bulk.Count(nil)
	suite.Require().NoError(err)
	suite.Equal(int64(recordCount), count)
	inserted, err = bulk.CreateMany(nil)
	suite.NoError(err)
	suite.Zero(inserted)
}

func (suite *queryTestSuite) TestInsertManyDuplicate() {
	_, err := suite.records.CreateMany(test.Items(suite.seeds[:1]))
	suite.Require().Error(err)
	suite.True(IsDuplicate(err))
}

func (suite *queryTestSuite) TestCount() {
	count, err := suite.records.Count(nil)
	suite.Require().NoError(err)
	suite.Equal(int64(recordCount), count)
	count, err = suite.records.Count(bson.D{{Key: "hasFlag", Value: true}})
	suite.Require().NoError(err)
	suite.Equal(int64((recordCount+2)/3), count)
}

func (suite *queryTestSuite) TestComplexFilter() {
	filter := bson.D{
		{Key: "hasFlag", Value: true},
		{Key: "fullName", Value: bson.D{{Key: "$ne", Value: "John Smith"}}},
		{Key: "seq", Value: bson.D{{Key: "$lt", Value: 50}}},
		{Key: "address", Value: bson.D{{Key: "$in", Value: bson.A{test.KnownAddress}}}},
	}
	records, err := suite.records.Query(filter, &Query{Skip: 0, Limit: 10})
	suite.Require().NoError(err)
	suite.Require().NotEmpty(records)
	suite.LessOrEqual(len(records), 10)
	for _, record := range records {
		suite.True(record.HasFlag)
		suite.Less(record.Seq, 50)
		suite.Equal(test.KnownAddress, record.Address)
		suite.Zero(record.Seq % 21)
	}
}

func (suite *queryTestSuite) TestPagination() {
	seen := make(map[int]bool)
	query := Page(0, 100).SortBy("seq")
	for page := int64(0); page < 3; page++ {
		query.Skip = page * query.Limit
		records, err := suite.records.Query(bson.D{{Key: "seq", Value: bson.D{{Key: "$lt", Value: 250}}}}, query)
		suite.Require().NoError(err)
		if page < 2 {
			suite.Require().Len(records, 100)
		} else {
			suite.Require().Len(records, 50)
		}
		for i, record := range records {
			suite.Equal(int(page*100)+i, record.Seq)
			suite.False(seen[record.Seq])
			seen[record.Seq] = true
		}
	}
	suite.Len(seen, 250)
}

func (suite *queryTestSuite) TestSortDescending() {
	records, err := suite.records.Query(nil, Page(0, 5).SortBy("-seq"))
	suite.Require().NoError(err)
	suite.Require().Len(records, 5)
	for i, record := range records {
		suite.Equal(recordCount-1-i, record.Seq)
	}
}

func (suite *queryTestSuite) TestProjection() {
	items, err := suite.records.Collection.Query(
		bson.D{{Key: "seq", Value: 7}}, (&Query{}).Fields("seq", "address"))
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	item := items[0]
	suite.Len(item, 2)
	suite.EqualValues(7, item["seq"])
	suite.Equal(test.KnownAddress, item["address"])
	suite.NotContains(item, "_id")
	suite.NotContains(item, "content")
}

func (suite *queryTestSuite) TestTextIndex() {
	NewIndexTester().TestIndexes(suite.T(), &suite.records.Collection, suite.textIndex)
	// Creating the same index again is not an error.
	suite.NoError(suite.access.Index(&suite.records.Collection, suite.textIndex))
}

func (suite *queryTestSuite) TestTextSearch() {
	records, err := suite.records.TextSearch(test.SearchTerm, &Query{Skip: 0, Limit: 10})
	suite.Require().NoError(err)
	suite.Require().NotEmpty(records)
	suite.LessOrEqual(len(records), 10)
	for _, record := range records {
		suite.Contains(strings.ToLower(record.Content), "magazin")
	}
}

func (suite *queryTestSuite) TestTextSearchNoMatch() {
	records, err := suite.records.TextSearch("xyzzyplugh", nil)
	suite.Require().NoError(err)
	suite.Empty(records)
}

func (suite *queryTestSuite) TestFindByIdentity() {
	seed := suite.seeds[123]
	found, err := suite.records.Find(seed.Filter())
	suite.Require().NoError(err)
	suite.Equal(seed.ID(), found.ID())
	suite.Equal(seed.UUID, found.UUID)
	suite.Equal(seed.FullName, found.FullName)
	suite.Equal(seed.Timestamp, found.Timestamp)
}

func (suite *queryTestSuite) TestIterate() {
	var total int
	err := suite.records.Iterate(bson.D{{Key: "hasFlag", Value: true}}, func(record *test.Record) error {
		suite.True(record.HasFlag)
		total++
		return nil
	})
	suite.Require().NoError(err)
	suite.Equal((recordCount+2)/3, total)
}

func (suite *queryTestSuite) TestDelete() {
	scratch := suite.ConnectCollection(testCollectionBulk)
	defer func() { suite.NoError(scratch.Drop()) }()
	records := test.Records(10, 3, time.Now())
	_, err := scratch.CreateMany(test.Items(records))
	suite.Require().NoError(err)
	suite.Require().NoError(scratch.Delete(records[0].Filter(), false))
	count, err := scratch.Count(nil)
	suite.Require().NoError(err)
	suite.Equal(int64(9), count)
	suite.Require().NoError(scratch.DeleteAll())
	count, err = scratch.Count(nil)
	suite.Require().NoError(err)
	suite.Zero(count)
}
