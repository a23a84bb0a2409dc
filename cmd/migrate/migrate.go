package migrate

import (
	"fmt"
	"net/url"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/crowdsale/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	crowdsaleMigrationSource = "modules/crowdsale/database/postgresql/migrations"
	crowdsaleMigrationTable  = "crowdsale_schema_migrations"
)

type migrateCmdOptions struct {
	DatabaseURL string
	Source      string
	Verbose     bool
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

// resolveDatabaseURL returns the database URL to migrate, falling back to the
// configured crowdsale Postgres database.
func resolveDatabaseURL(databaseURL string) (*url.URL, error) {
	if databaseURL == "" {
		databaseURL = config.Load().Modules.Crowdsale.Postgres.MigrationURL()
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[u.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", u.Scheme)
	}
	return u, nil
}

func newMigrate(opts *migrateCmdOptions) (*migrate.Migrate, error) {
	databaseURL, err := resolveDatabaseURL(opts.DatabaseURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	databaseURL = cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {crowdsaleMigrationTable}})

	m, err := migrate.New("file://"+opts.Source, databaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{
		out:     os.Stdout,
		prefix:  fmt.Sprintf("[%s] ", "Crowdsale"),
		verbose: opts.Verbose,
	}
	return m, nil
}
