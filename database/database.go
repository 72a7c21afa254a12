// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/appbridge/migration-backend/util"
	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
)

var logger = util.InitLogger() // setup the logger

// Collection names
const (
	CatalogCollection             = "catalog"
	SccmMappingCollection         = "sccm_mapping"
	PackagingJobCollection        = "packaging_job"
	UpdateHistoryCollection       = "update_history"
	UpdatePolicyCollection        = "update_policy"
	BatchDeploymentItemCollection = "batch_deployment_item"
	MetadataCollection            = "metadata"
)

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Options holds the connection settings for ArangoDB
type Options struct {
	URL      string
	User     string
	Password string
	Name     string
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxFields  []string
	Unique     bool
	Sparse     bool
}

var initDone = false          // has the data been initialized
var dbConnection DBConnection // database connection definition

var collectionNames = []string{
	CatalogCollection,
	SccmMappingCollection,
	PackagingJobCollection,
	UpdateHistoryCollection,
	UpdatePolicyCollection,
	BatchDeploymentItemCollection,
	MetadataCollection,
}

var idxList = []indexConfig{
	// Catalog lookups by package id
	{Collection: CatalogCollection, IdxName: "catalog_winget_id", IdxFields: []string{"winget_id"}, Unique: true},

	// Custom mappings are resolved by name, product code or CI id within a tenant
	{Collection: SccmMappingCollection, IdxName: "sccm_mapping_name", IdxFields: []string{"tenant_id", "sccm_display_name_normalized"}},
	{Collection: SccmMappingCollection, IdxName: "sccm_mapping_product_code", IdxFields: []string{"sccm_product_code"}, Sparse: true},
	{Collection: SccmMappingCollection, IdxName: "sccm_mapping_ci_id", IdxFields: []string{"sccm_ci_id"}, Sparse: true},

	{Collection: PackagingJobCollection, IdxName: "packaging_job_policy", IdxFields: []string{"auto_update_policy_id"}, Sparse: true},
	{Collection: PackagingJobCollection, IdxName: "packaging_job_status", IdxFields: []string{"status"}},

	{Collection: UpdateHistoryCollection, IdxName: "update_history_job", IdxFields: []string{"job_id"}},
	{Collection: UpdateHistoryCollection, IdxName: "update_history_policy_status", IdxFields: []string{"policy_id", "status"}},

	{Collection: UpdatePolicyCollection, IdxName: "update_policy_tenant_package", IdxFields: []string{"tenant_id", "winget_id"}},

	// Job dismissal clears these references first
	{Collection: BatchDeploymentItemCollection, IdxName: "batch_item_job", IdxFields: []string{"packaging_job_id"}, Sparse: true},
}

// DefaultOptions reads the connection settings from the environment
func DefaultOptions() Options {
	dbhost := util.GetEnvDefault("ARANGO_HOST", "localhost")
	dbport := util.GetEnvDefault("ARANGO_PORT", "8529")

	return Options{
		URL:      util.GetEnvDefault("ARANGO_URL", "http://"+dbhost+":"+dbport),
		User:     util.GetEnvDefault("ARANGO_USER", "root"),
		Password: util.GetEnvDefault("ARANGO_PASS", "mypassword"),
		Name:     util.GetEnvDefault("ARANGO_DATABASE", "appbridge"),
	}
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// InitializeDatabase is the function for connecting to the db engine, creating the database and collections
func InitializeDatabase(opts Options) DBConnection {
	const initialInterval = 10 * time.Second
	const maxInterval = 2 * time.Minute

	var db arangodb.Database
	var collections map[string]arangodb.Collection

	ctx := context.Background()

	if initDone {
		return dbConnection
	}

	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0 // Set to 0 for indefinite retries

	err := backoff.RetryNotify(func() error {
		logger.Sugar().Infof("Attempting to connect to ArangoDB at %s", opts.URL)
		endpoint := connection.NewRoundRobinEndpoints([]string{opts.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, opts.User, opts.Password))

		client = arangodb.NewClient(conn)

		// Ask the version of the server
		versionInfo, err := client.Version(context.Background())
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil

	}, bo, func(err error, _ time.Duration) {
		logger.Sugar().Warnf("Retrying connection to ArangoDB: %v", err)
	})

	if err != nil {
		logger.Sugar().Fatalf("Backoff Error %v\n", err)
	}

	//
	// Database creation
	//

	exists := false
	dblist, _ := client.Databases(ctx)

	for _, dbinfo := range dblist {
		if dbinfo.Name() == opts.Name {
			exists = true
			break
		}
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		if db, err = client.GetDatabase(ctx, opts.Name, &options); err != nil {
			logger.Sugar().Fatalf("Failed to get Database: %v", err)
		}
	} else {
		if db, err = client.CreateDatabase(ctx, opts.Name, nil); err != nil {
			logger.Sugar().Fatalf("Failed to create Database: %v", err)
		}
	}

	//
	// Collection creation for document storage
	//

	collections = make(map[string]arangodb.Collection)

	for _, collectionName := range collectionNames {
		var col arangodb.Collection

		exists, _ = db.CollectionExists(ctx, collectionName)
		if exists {
			var options arangodb.GetCollectionOptions
			if col, err = db.GetCollection(ctx, collectionName, &options); err != nil {
				logger.Sugar().Fatalf("Failed to use collection: %v", err)
			}
		} else {
			if col, err = db.CreateCollectionV2(ctx, collectionName, nil); err != nil {
				logger.Sugar().Fatalf("Failed to create collection: %v", err)
			}
		}

		collections[collectionName] = col
	}

	//
	// Index creation
	//

	for _, idx := range idxList {
		if err := ensureIndex(ctx, collections[idx.Collection], idx); err != nil {
			logger.Sugar().Fatalln("Error creating index:", err)
		}
	}

	initDone = true

	dbConnection = DBConnection{
		Database:    db,
		Collections: collections,
	}

	logger.Sugar().Infof("Database initialization complete for %s", opts.Name)

	return dbConnection
}

func ensureIndex(ctx context.Context, col arangodb.Collection, idx indexConfig) error {
	if indexes, err := col.Indexes(ctx); err == nil {
		for _, index := range indexes {
			if idx.IdxName == index.Name {
				return nil
			}
		}
	}

	unique := idx.Unique
	sparse := idx.Sparse
	indexOptions := arangodb.CreatePersistentIndexOptions{
		Unique: &unique,
		Sparse: &sparse,
		Name:   idx.IdxName,
	}

	if _, _, err := col.EnsurePersistentIndex(ctx, idx.IdxFields, &indexOptions); err != nil {
		return fmt.Errorf("index %s on %s: %w", idx.IdxName, idx.Collection, err)
	}
	logger.Sugar().Infof("Created index: %s on %s%v", idx.IdxName, idx.Collection, idx.IdxFields)
	return nil
}
