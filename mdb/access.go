package mdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/madkins23/mongo-harness/mdbenv"
)

// Access encapsulates database connection.
type Access struct {
	client    *mongo.Client
	database  *mongo.Database
	config    Config
	connected bool
}

var (
	// DefaultLogInfoFn is the default info logging function.
	DefaultLogInfoFn = func(msg string) {
		log.Info().Str("component", "mdb").Msg(msg)
	}

	// DefaultConnectTimeout is the default timeout for the initial connect.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultDisconnectTimeout is the default timeout for the disconnect.
	DefaultDisconnectTimeout = 10 * time.Second

	// DefaultPingTimeout is the default timeout for the ping to make sure the connection is up.
	DefaultPingTimeout = 2 * time.Second

	// DefaultCollectionTimeout is the default timeout for collection access.
	DefaultCollectionTimeout = 5 * time.Second

	// DefaultIndexTimeout is the default timeout for index access.
	DefaultIndexTimeout = 5 * time.Second
)

// Config items for Mongo DB connection.
type Config struct {
	// Base context for use in calls to Mongo.
	Ctx context.Context

	// Connection settings, loaded from the environment if not provided.
	Settings *mdbenv.Settings

	// Optional Mongo options applied over those built from Settings.
	Options *options.ClientOptions

	// Logging function for information messages may be overridden.
	LogInfoFn func(msg string)
	// Errors should bubble up and be handled by client code.

	Timeout
}

// Timeout settings for Mongo DB access.
type Timeout struct {
	// Timeout for the initial connect.
	Connect time.Duration

	// Timeout for the disconnect.
	Disconnect time.Duration

	// Timeout for the ping to make sure the connection is up.
	Ping time.Duration

	// Timeout for collection access.
	Collection time.Duration

	// Timeout for indexes.
	Index time.Duration
}

var ErrNoDbName = errors.New("no database name")

// NewClient opens a Mongo client for the specified settings and pings the primary.
// There is a single attempt, any failure is returned to the caller.
// Additional client options are applied after the URI and logging options.
func NewClient(ctx context.Context, settings *mdbenv.Settings, opts ...*options.ClientOptions) (*mongo.Client, error) {
	clientOpts := ClientOptions(settings)
	client, err := mongo.Connect(ctx, append([]*options.ClientOptions{clientOpts}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect mongo server: %w", err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("unable to ping mongo server: %w", err)
	}

	return client, nil
}

// ClientOptions returns driver options for the specified settings.
func ClientOptions(settings *mdbenv.Settings) *options.ClientOptions {
	opts := options.Client().ApplyURI(settings.URI())
	if settings.DriverLog {
		opts.SetLoggerOptions(DriverLoggerOptions(Logger(settings)))
	}

	return opts
}

// Connect to Mongo DB via NewClient and return Access object.
// If the config is nil or incomplete it is filled in with defaults,
// connection settings are loaded from the environment if not provided.
// The connect and the ping of the primary both run within Timeout.Connect.
func Connect(dbName string, config *Config) (*Access, error) {
	if dbName == "" {
		return nil, ErrNoDbName
	}

	config, err := fixConfig(config)
	if err != nil {
		return nil, err
	}

	extra := make([]*options.ClientOptions, 0, 1)
	if config.Options != nil {
		extra = append(extra, config.Options)
	}

	ctx, cancel := context.WithTimeout(config.Ctx, config.Timeout.Connect)
	defer cancel()

	client, err := NewClient(ctx, config.Settings, extra...)
	if err != nil {
		return nil, err
	}

	access := &Access{
		client:    client,
		database:  client.Database(dbName),
		config:    *config,
		connected: true,
	}

	access.Info("Connected to MongoDB database " + access.database.Name())

	return access, nil
}

// ConnectOrPanic connects to Mongo DB and returns Access object or panics on error.
func ConnectOrPanic(dbName string, config *Config) *Access {
	access, err := Connect(dbName, config)
	if err != nil {
		panic(err)
	}

	return access
}

// Disconnect Mongo DB client.
// Provided for use in defer statements.
// Does nothing if the client is not connected.
func (a *Access) Disconnect() error {
	if !a.connected {
		return nil
	}

	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Disconnect)
	defer cancel()
	if err := a.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("unable to disconnect mongo server: %w", err)
	}
	a.connected = false

	return nil
}

// DisconnectOrPanic disconnects the Mongo DB client or panics on error.
// Provided for use in defer statements.
func (a *Access) DisconnectOrPanic() {
	if err := a.Disconnect(); err != nil {
		panic(err)
	}
}

// Connected is true until the Access object is disconnected.
func (a *Access) Connected() bool {
	return a.connected
}

// Client returns the Mongo client object.
func (a *Access) Client() *mongo.Client {
	return a.client
}

// Context returns the base context for the object.
func (a *Access) Context() context.Context {
	return a.config.Ctx
}

// ContextWithTimeout returns the base context for the object with the specified timeout.
func (a *Access) ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.config.Ctx, timeout)
}

// Database returns the Mongo database object.
func (a *Access) Database() *mongo.Database {
	return a.database
}

// Settings returns the connection settings used by the object.
func (a *Access) Settings() *mdbenv.Settings {
	return a.config.Settings
}

// Ping executes a ping against the Mongo server within Timeout.Ping.
func (a *Access) Ping() error {
	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Ping)
	defer cancel()
	err := a.client.Ping(ctx, readpref.Primary())
	if err != nil {
		return fmt.Errorf("unable to ping mongo server: %w", err)
	}

	return nil
}

// DropDatabase drops the Access object's database within Timeout.Collection.
func (a *Access) DropDatabase() error {
	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Collection)
	defer cancel()
	if err := a.database.Drop(ctx); err != nil {
		return fmt.Errorf("drop database %s: %w", a.database.Name(), err)
	}

	return nil
}

// Info logs a simple message via the configured LogInfoFn.
// This is used for a few calls within the Access code.
// It may be overridden to use another logger or to block these messages.
func (a *Access) Info(msg string) {
	a.config.LogInfoFn(msg)
}

func fixConfig(config *Config) (*Config, error) {
	if config == nil {
		config = &Config{}
	}

	if config.Ctx == nil {
		config.Ctx = context.Background()
	}

	if config.Settings == nil {
		settings, err := mdbenv.Load()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		config.Settings = settings
	}

	if config.LogInfoFn == nil {
		config.LogInfoFn = DefaultLogInfoFn
	}

	if config.Timeout.Connect == 0 {
		config.Timeout.Connect = DefaultConnectTimeout
	}

	if config.Timeout.Disconnect == 0 {
		config.Timeout.Disconnect = DefaultDisconnectTimeout
	}

	if config.Timeout.Ping == 0 {
		config.Timeout.Ping = DefaultPingTimeout
	}

	if config.Timeout.Collection == 0 {
		config.Timeout.Collection = DefaultCollectionTimeout
	}

	if config.Timeout.Index == 0 {
		config.Timeout.Index = DefaultIndexTimeout
	}

	return config, nil
}

////////////////////////////////////////////////////////////////////////////////

var errMissingCollectionName = errors.New("no collection name argument")

// CollectionExists checks to see if a specific collection already exists.
func (a *Access) CollectionExists(name string) (bool, error) {
	if name == "" {
		return false, errMissingCollectionName
	}

	ctx, cancel := a.ContextWithTimeout(a.config.Timeout.Collection)
	defer cancel()
	names, err := a.database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("getting collection names: %w", err)
	}

	for _, collName := range names {
		if collName == name {
			return true, nil
		}
	}

	return false, nil
}

// CollectionFinisher provides a way to add special processing when creating a collection.
type CollectionFinisher func(access *Access, collection *Collection) error

// Collection acquires the named collection, creating it if necessary.
// The validator JSON and finishers are only applied when the collection is created.
func (a *Access) Collection(
	ctx context.Context, collectionName string, validatorJSON string, finishers ...CollectionFinisher) (*Collection, error) {
	if collectionName == "" {
		return nil, errMissingCollectionName
	}

	if ctx == nil {
		ctx = a.Context()
	}

	if exists, err := a.CollectionExists(collectionName); err != nil {
		return nil, fmt.Errorf("does collection '%s' exist: %w", collectionName, err)
	} else if exists {
		// Collection already exists, just return it.
		return newCollection(a, a.database.Collection(collectionName), ctx), nil
	}

	// Add option for validator JSON if it is provided.
	opts := make([]*options.CreateCollectionOptions, 0)
	if validatorJSON != "" {
		var validator interface{}
		if err := bson.UnmarshalExtJSON([]byte(validatorJSON), false, &validator); err != nil {
			return nil, fmt.Errorf("unmarshal validator for collection: %w", err)
		}
		opts = append(opts, options.CreateCollection().SetValidator(validator))
	}

	createCtx, cancel := a.ContextWithTimeout(a.config.Timeout.Collection)
	defer cancel()
	err := a.database.CreateCollection(createCtx, collectionName, opts...)
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Name != "NamespaceExists" {
			return nil, fmt.Errorf("create collection: %w", err)
		}
	}

	collection := newCollection(a, a.database.Collection(collectionName), ctx)
	a.Info("Created collection " + collection.Name())

	// Run finishers on the collection.
	for i, finisher := range finishers {
		if err = finisher(a, collection); err != nil {
			return nil, fmt.Errorf("collection finisher #%d: %w", i, err)
		}
	}

	return collection, nil
}

// CollectionDefinition describes a collection to be acquired via ConnectCollection.
type CollectionDefinition struct {
	Name           string
	ValidationJSON string
	Finishers      []CollectionFinisher
}

////////////////////////////////////////////////////////////////////////////////
// Functions to check for specific, known errors.

// IsDuplicate checks to see if the specified error is for attempting to create a duplicate document.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	return mongo.IsDuplicateKeyError(err)
}

// IsNotFound checks an error condition to see if it matches the underlying database "not found" error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsValidationFailure checks to see if the specified error is for a validation failure.
func IsValidationFailure(err error) bool {
	if err == nil {
		return false
	}

	var e mongo.WriteException
	if errors.As(err, &e) {
		for _, we := range e.WriteErrors {
			if we.Code == 121 {
				return true
			}
		}
	}

	return false
}
