package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/backend"
	"github.com/reglabs/coaflow/internal/catalog"
	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/engine"
	"github.com/reglabs/coaflow/internal/host"
	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/service"
	"github.com/reglabs/coaflow/internal/storage"

	appconfig "github.com/reglabs/coaflow/internal/config"
)

// buildEngine wires the collaborators from configuration. The returned
// cleanup closes the local store.
func buildEngine(ctx context.Context, needHost bool) (*engine.Engine, func(), error) {
	backendClient, err := backend.NewClient(
		viper.GetString("backend.url"),
		viper.GetDuration("backend.timeout"),
	)
	if err != nil {
		return nil, nil, common.NewUserError("backend is not configured; set backend.url", err)
	}

	var hostClient service.Host
	if needHost {
		client, hostErr := host.NewClient(
			viper.GetString("host.url"),
			viper.GetDuration("host.timeout"),
		)
		if hostErr != nil {
			return nil, nil, common.NewUserError("document host is not configured; set host.url", hostErr)
		}
		hostClient = client
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}

	store, err := openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Warn("failed to close store", "error", closeErr)
		}
	}

	return engine.New(backendClient, hostClient, store, cat), cleanup, nil
}

// loadCatalog reads the configured catalog file or falls back to the
// built-in catalog. A malformed catalog file is fatal.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(appconfig.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError("invalid parameter catalog", err)
	}
	return cat, nil
}

func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = appconfig.DefaultDatabasePath()
	} else {
		dbPath = appconfig.ExpandPath(dbPath)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError("failed to open local store", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("failed to migrate local store", err)
	}

	return store, nil
}

// backendTimeoutDefault keeps upload/processing calls from hanging when
// nothing is configured.
const backendTimeoutDefault = 60 * time.Second

func init() {
	viper.SetDefault("backend.timeout", backendTimeoutDefault)
	viper.SetDefault("host.timeout", 30*time.Second)
}

// surface turns any failure into the single user-facing message for the
// operation. Classified kinds keep their detail; everything else gets
// the fallback.
func surface(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch common.KindOf(err) {
	case common.KindPrecondition:
		return common.NewUserError("missing selection", err)
	case common.KindTransport:
		if common.IsRetryable(err) {
			return common.NewUserError("backend timed out; try again", err)
		}
		return common.NewUserError("could not reach the backend; check your connection", err)
	case common.KindNotFound:
		return common.NewUserError("the referenced document or resource does not exist", err)
	case common.KindServer:
		return common.NewUserError("the backend reported a failure", err)
	case common.KindValidation:
		return common.NewUserError("the backend returned malformed data", err)
	case common.KindHostInsertion:
		return common.NewUserError("failed to insert into the document", err)
	default:
		return common.NewUserError(fallback, err)
	}
}

// findCompound resolves a compound by id or code.
func findCompound(compounds []model.Compound, idOrCode string) (*model.Compound, error) {
	for i := range compounds {
		if compounds[i].ID == idOrCode || compounds[i].Code == idOrCode {
			return &compounds[i], nil
		}
	}
	return nil, fmt.Errorf("unknown compound %q", idOrCode)
}

// findTemplate resolves a template by id or region for a compound.
func findTemplate(templates []model.Template, idOrRegion string) (*model.Template, error) {
	for i := range templates {
		if templates[i].ID == idOrRegion || templates[i].Region == idOrRegion {
			return &templates[i], nil
		}
	}
	return nil, fmt.Errorf("unknown template %q", idOrRegion)
}
