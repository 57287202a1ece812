package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// DBTracingConfig controls span creation for database queries.
type DBTracingConfig struct {
	Enabled    bool
	DBName     string
	LogFullSQL bool
}

// RegisterDBTracing installs the otelgorm plugin so that every query
// reachable through the gorm instance produces a child span. When
// LogFullSQL is false, query parameter values are omitted from span
// attributes.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	dbName := cfg.DBName
	if dbName == "" {
		dbName = "postgresql"
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(dbName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	return db.Use(otelgorm.NewPlugin(opts...))
}
