// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/aishield/shield-backend/internal/config"
	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Journal collections
const (
	CollectionNarrative    = "narrative"
	CollectionIntervention = "intervention"
	CollectionKPIEvent     = "kpi_event"
)

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxFields  []string
}

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
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

// Connect opens the journal database, creating the database, collections and
// indexes when missing. Connection attempts back off exponentially until ctx ends.
func Connect(ctx context.Context, cfg config.Arango, logger *zap.Logger) (*DBConnection, error) {
	const initialInterval = 2 * time.Second
	const maxInterval = 30 * time.Second

	var client arangodb.Client

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialInterval
	bo.MaxInterval = maxInterval
	bo.MaxElapsedTime = 0

	err := backoff.RetryNotify(func() error {
		logger.Info("Attempting to connect to ArangoDB", zap.String("url", cfg.URL))
		endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, cfg.User, cfg.Pass))

		client = arangodb.NewClient(conn)

		versionInfo, err := client.Version(ctx)
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		logger.Warn("Retrying connection to ArangoDB", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ArangoDB: %w", err)
	}

	db, err := ensureDatabase(ctx, client, cfg.Database)
	if err != nil {
		return nil, err
	}

	collections := make(map[string]arangodb.Collection)
	for _, name := range []string{CollectionNarrative, CollectionIntervention, CollectionKPIEvent} {
		col, err := ensureCollection(ctx, db, name)
		if err != nil {
			return nil, err
		}
		collections[name] = col
	}

	idxList := []indexConfig{
		{Collection: CollectionNarrative, IdxName: "narrative_kind_created", IdxFields: []string{"kind", "created_at"}},
		{Collection: CollectionNarrative, IdxName: "narrative_source", IdxFields: []string{"source"}},
		{Collection: CollectionIntervention, IdxName: "intervention_at", IdxFields: []string{"at"}},
		{Collection: CollectionIntervention, IdxName: "intervention_outcome", IdxFields: []string{"outcome"}},
		{Collection: CollectionKPIEvent, IdxName: "kpi_event_type_at", IdxFields: []string{"type", "at"}},
		{Collection: CollectionKPIEvent, IdxName: "kpi_event_origin", IdxFields: []string{"origin"}},
	}
	for _, idx := range idxList {
		if err := ensureIndex(ctx, collections[idx.Collection], idx, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("Database initialization complete", zap.String("database", cfg.Database))

	return &DBConnection{
		Database:    db,
		Collections: collections,
	}, nil
}

func ensureDatabase(ctx context.Context, client arangodb.Client, name string) (arangodb.Database, error) {
	exists, err := client.DatabaseExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check database %s: %w", name, err)
	}
	if exists {
		var options arangodb.GetDatabaseOptions
		db, err := client.GetDatabase(ctx, name, &options)
		if err != nil {
			return nil, fmt.Errorf("failed to get database %s: %w", name, err)
		}
		return db, nil
	}
	db, err := client.CreateDatabase(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return db, nil
}

func ensureCollection(ctx context.Context, db arangodb.Database, name string) (arangodb.Collection, error) {
	exists, _ := db.CollectionExists(ctx, name)
	if exists {
		var options arangodb.GetCollectionOptions
		col, err := db.GetCollection(ctx, name, &options)
		if err != nil {
			return nil, fmt.Errorf("failed to use collection %s: %w", name, err)
		}
		return col, nil
	}
	col, err := db.CreateCollectionV2(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return col, nil
}

func ensureIndex(ctx context.Context, col arangodb.Collection, idx indexConfig, logger *zap.Logger) error {
	if indexes, err := col.Indexes(ctx); err == nil {
		for _, index := range indexes {
			if index.Name == idx.IdxName {
				return nil
			}
		}
	}

	False := false
	indexOptions := arangodb.CreatePersistentIndexOptions{
		Unique: &False,
		Sparse: &False,
		Name:   idx.IdxName,
	}
	if _, _, err := col.EnsurePersistentIndex(ctx, idx.IdxFields, &indexOptions); err != nil {
		return fmt.Errorf("failed to create index %s: %w", idx.IdxName, err)
	}
	logger.Sugar().Infof("Created index: %s on %s.%v", idx.IdxName, idx.Collection, idx.IdxFields)
	return nil
}
