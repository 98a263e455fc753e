package cli

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dispatchr/pkg/config"
	"github.com/arthur-debert/dispatchr/pkg/dispatcher"
	"github.com/arthur-debert/dispatchr/pkg/errors"
	"github.com/arthur-debert/dispatchr/pkg/logging"
	"github.com/arthur-debert/dispatchr/pkg/manifest"
	"github.com/arthur-debert/dispatchr/pkg/render"
	"github.com/spf13/cobra"
)

// app holds flag values and the state derived from them for one run
type app struct {
	verbosity    int
	configPath   string
	manifestPath string
	format       string

	cfg *config.Config
}

// overrides returns config keys for the flags that were set explicitly
func (a *app) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		out["logging.verbosity"] = a.verbosity
	}
	if flags.Changed("format") {
		out["output.format"] = a.format
	}
	if flags.Changed("manifest") {
		out["manifest.path"] = a.manifestPath
	}
	return out
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath, a.overrides(cmd))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logging.Setup(logging.Options{
		Verbosity: cfg.Logging.Verbosity,
		File:      cfg.Logging.File,
		Console:   cmd.ErrOrStderr(),
	})
	logging.LogCommand(cmd.Name(), args)
	return nil
}

// findManifest returns the configured manifest path or the first search
// path that exists in the working directory
func (a *app) findManifest() (string, error) {
	if a.cfg.Manifest.Path != "" {
		return a.cfg.Manifest.Path, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to get working directory")
	}
	for _, name := range a.cfg.Manifest.SearchPaths {
		candidate := filepath.Join(wd, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "no manifest found in %s", wd).
		WithDetail("search_paths", a.cfg.Manifest.SearchPaths)
}

// dispatcher loads the manifest and builds a dispatcher from it
func (a *app) dispatcher() (*dispatcher.Dispatcher, error) {
	path, err := a.findManifest()
	if err != nil {
		return nil, err
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}

	stores, domains := m.Build()
	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("manifest", path).
		Int("stores", len(stores)).
		Int("domains", len(domains)).
		Msg("Manifest loaded")

	return dispatcher.New(dispatcher.Options{Stores: stores, Domains: domains})
}

func (a *app) renderer(cmd *cobra.Command) (*render.Renderer, error) {
	f, err := render.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return render.New(f, cmd.OutOrStdout())
}
