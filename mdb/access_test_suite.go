package mdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// AccessTestSuite wraps database connect/disconnect for suites that hit the database.
// The database named by the connection settings is dropped at teardown.
type AccessTestSuite struct {
	suite.Suite
	access    *Access
	connected bool
}

func (suite *AccessTestSuite) Access() *Access {
	return suite.access
}

func (suite *AccessTestSuite) SetupSuite() {
	suite.SetupSuiteConfig(nil)
}

func (suite *AccessTestSuite) SetupSuiteConfig(config *Config) {
	config, err := fixConfig(config)
	suite.Require().NoError(err, "configure mongo")
	access, err := Connect(config.Settings.Database, config)
	suite.Require().NoError(err, "connect to mongo")
	suite.acquired(access)
	suite.access.Info("Suite setup")
}

// acquired records the connection and registers its release with the suite's test.
// Testify only schedules TearDownSuite once SetupSuite returns,
// so a failing check later in a derived SetupSuite would otherwise leak the connection.
func (suite *AccessTestSuite) acquired(access *Access) {
	suite.access = access
	suite.connected = true
	t := suite.T()
	t.Cleanup(func() { suite.release(t) })
}

// TearDownSuite releases the connection only if SetupSuite acquired it.
func (suite *AccessTestSuite) TearDownSuite() {
	suite.release(suite.T())
}

// release drops the test database and disconnects, at most once per acquisition.
func (suite *AccessTestSuite) release(t *testing.T) {
	if !suite.connected {
		return
	}
	suite.connected = false
	suite.access.Info("Suite teardown")
	if !suite.access.Connected() {
		return
	}
	assert.NoError(t, suite.access.DropDatabase(), "drop test database")
	assert.NoError(t, suite.access.Disconnect(), "disconnect from mongo")
}

// ConnectCollection connects to the specified collection and adds any provided indexes
// as necessary in a SetupSuite() with test checks so that any errors blow up the test.
// The collection is emptied before it is returned.
func (suite *AccessTestSuite) ConnectCollection(
	definition *CollectionDefinition, indexDescriptions ...*IndexDescription) *Collection {
	collection, err := ConnectCollection(suite.access, definition)
	suite.Require().NoError(err)
	suite.NotNil(collection)
	suite.Require().NoError(collection.DeleteAll())
	for _, indexDescription := range indexDescriptions {
		suite.Require().NoError(suite.access.Index(collection, indexDescription))
	}
	return collection
}

// ConnectTypedCollectionHelper is similar to AccessTestSuite.ConnectionCollection().
// Go doesn't support generic methods so this can't be a method on AccessTestSuite.
func ConnectTypedCollectionHelper[T any](
	suite *AccessTestSuite, definition *CollectionDefinition, indexDescriptions ...*IndexDescription) *TypedCollection[T] {
	collection, err := ConnectTypedCollection[T](suite.access, definition)
	suite.Require().NoError(err)
	suite.NotNil(collection)
	suite.Require().NoError(collection.DeleteAll())
	for _, indexDescription := range indexDescriptions {
		suite.Require().NoError(suite.access.Index(&collection.Collection, indexDescription))
	}
	return collection
}
