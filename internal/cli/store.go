package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/hush/internal/constants"
	herrors "github.com/julianstephens/hush/internal/errors"
	"github.com/julianstephens/hush/internal/keyring"
	"github.com/julianstephens/hush/internal/logger"
	"github.com/julianstephens/hush/internal/storage"
	"github.com/julianstephens/hush/internal/storage/postgres"
	"github.com/julianstephens/hush/internal/storage/sqlite"
	"github.com/julianstephens/hush/internal/utils"
)

var (
	lookupEnv  = os.LookupEnv
	keyringGet = keyring.GetConnectionString
)

// OpenStore picks the storage backend for the --config value.
//
// A postgres:// URL passed on the command line must not embed a password.
// With no --config, HUSH_DB_CONNECTION and then the OS keyring are consulted
// for a connection string; these may carry credentials. Anything else is a
// SQLite file path.
func OpenStore(config string) (storage.Provider, error) {
	if config == "" {
		if connStr, ok := lookupEnv(constants.EnvDBConnection); ok && connStr != "" {
			logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
			return postgres.New(connStr), nil
		}
		connStr, err := keyringGet()
		if err == nil && connStr != "" {
			logger.Debug("Using connection string from keyring")
			return postgres.New(connStr), nil
		}
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		config = constants.DefaultConfigPath
	}

	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, herrors.WithHint(err,
					fmt.Sprintf("store it with 'hush keyring set' or export %s instead", constants.EnvDBConnection))
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandHome(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}
