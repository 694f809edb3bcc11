package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/config"
	"payarakit/internal/credential"
	"payarakit/internal/logx"
	"payarakit/internal/paths"
	"payarakit/internal/project"
	"payarakit/internal/remote"
)

// Seams replaced in tests.
var (
	newRunner   = func() command.Runner { return command.CmdRunner{} }
	envLookuper = envconfig.OsLookuper
	keyFilePath = paths.KeyFile
	storeDir    = paths.PropertyStoreDir
	newSource   = func(cfg config.Config) remote.Source { return remote.NewHTTPSource(cfg.Cloud.APIURL, cfg.Cloud.Token) }
)

// session bundles what every project-scoped command needs.
type session struct {
	paths  paths.ProjectPaths
	cfg    config.Config
	logger *logrus.Logger
	closer io.Closer
}

func openSession(cmd *cobra.Command) (*session, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return nil, err
	}
	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return nil, fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project directory does not exist: %s", pp.Root)
	}

	cfg, err := config.LoadWithEnv(commandContext(cmd), pp.ConfigFile, envLookuper())
	if err != nil {
		return nil, err
	}
	if productFlag != "" {
		cfg.Product = productFlag
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return nil, err
	}
	logger.Infof("payarakit %s: project=%s", cmd.CommandPath(), pp.Root)
	return &session{paths: pp, cfg: cfg, logger: logger, closer: closer}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// project detects the Payara project under the session root.
func (s *session) project() (*project.Project, error) {
	return s.projectAt(s.paths.Root)
}

func (s *session) projectAt(root string) (*project.Project, error) {
	opts, err := project.OptionsFromConfig(s.cfg)
	if err != nil {
		return nil, err
	}
	opts.Logger = s.logger
	p, err := project.Open(root, opts)
	if errors.Is(err, project.ErrNotFound) {
		return nil, fmt.Errorf("%w; run inside a Payara project or pass --project", err)
	}
	return p, err
}

// credentials opens the configured password store. The closer releases the
// underlying property database.
func (s *session) credentials() (*credential.Store, io.Closer, error) {
	keyPath, err := keyFilePath()
	if err != nil {
		return nil, nil, err
	}

	var (
		props  credential.PropertyStore
		closer io.Closer = nopCloser{}
	)
	switch s.cfg.Credentials.Backend {
	case config.CredentialsKeyring:
		props = credential.KeyringStore{}
	case config.CredentialsLevelDB, "":
		dir, err := storeDir()
		if err != nil {
			return nil, nil, err
		}
		db, err := credential.OpenLevelDB(dir)
		if err != nil {
			return nil, nil, err
		}
		props, closer = db, db
	default:
		return nil, nil, fmt.Errorf("unknown credentials backend %q", s.cfg.Credentials.Backend)
	}
	return credential.NewStore(props, afero.NewOsFs(), keyPath, s.logger), closer, nil
}

// cloudCache returns a listing cache over the configured Payara Cloud API.
func (s *session) cloudCache() (*remote.Cache, error) {
	if s.cfg.Cloud.APIURL == "" {
		return nil, fmt.Errorf("cloud.api_url is not configured (set it in %s or PAYARAKIT_CLOUD_API_URL)", s.paths.ConfigFile)
	}
	return remote.NewCache(newSource(s.cfg), s.cfg.Cloud.CacheSize, s.logger)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	if len(header) > 0 {
		table.SetHeader(header)
	}
	return table
}
