package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/internal/config"
	"github.com/dendrascience/dendra-file-organizer/internal/logging"
	"github.com/dendrascience/dendra-file-organizer/organizer"
	"github.com/dendrascience/dendra-file-organizer/util"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	sample     bool
	from       string
	probing    string
	capacity   int
	logLevel   string
}

// env is what a subcommand runs against: the resolved configuration, its
// logger, and a populated organizer.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	org    *organizer.Organizer
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.logger.Close()
}

// loadConfig resolves the configuration file and applies the index flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, _, _, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.probing != "" {
		cfg.Index.Probing = strings.ToLower(strings.TrimSpace(o.probing))
	}
	if o.capacity != 0 {
		cfg.Index.InitialCapacity = o.capacity
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup builds the environment for a subcommand. Extra organizer options are
// applied after the configured ones.
func (o *options) setup(cmd *cobra.Command, extra ...organizer.Option) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		if err := logger.SetLevel(strings.ToLower(strings.TrimSpace(o.logLevel))); err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("--log-level: %w", err)
		}
	}
	indexOpts, err := cfg.IndexOptions()
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	orgOpts := []organizer.Option{
		organizer.WithRootName(cfg.Tree.RootName),
		organizer.WithIndexOptions(indexOpts),
		organizer.WithLogger(logger.Logger),
	}
	e := &env{
		cfg:    cfg,
		logger: logger,
		org:    organizer.New(append(orgOpts, extra...)...),
	}

	if o.sample {
		if err := e.org.LoadSample(); err != nil {
			e.Close()
			return nil, fmt.Errorf("load sample data: %w", err)
		}
	}
	if o.from != "" {
		res, err := loadFrom(e.org, o.from, logger.Logger)
		if err != nil {
			e.Close()
			return nil, err
		}
		logger.Info("loaded directory",
			zap.String("path", o.from),
			zap.Int("folders", res.Folders),
			zap.Int("files", res.Files),
			zap.Int("skipped", res.Skipped))
	}
	return e, nil
}

// scanResult counts what loadFrom added and what it had to leave out.
type scanResult struct {
	Folders int
	Files   int
	Skipped int
}

// loadFrom mirrors the folder and file names below dir into org. Names the
// organizer cannot hold are skipped: invalid characters, and files whose name
// is already indexed under another folder.
func loadFrom(org *organizer.Organizer, dir string, logger *zap.Logger) (scanResult, error) {
	var res scanResult

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if err := util.ValidatePath(rel); err != nil {
				logger.Debug("skipping folder", zap.String("path", rel), zap.Error(err))
				res.Skipped++
				return filepath.SkipDir
			}
			if _, err := org.CreateFolder(rel); err != nil {
				return err
			}
			res.Folders++
			return nil
		}

		folder, name := splitRel(rel)
		if err := util.ValidateName(name); err != nil {
			logger.Debug("skipping file", zap.String("path", rel), zap.Error(err))
			res.Skipped++
			return nil
		}
		_, err = org.AddFile(name, folder)
		if errors.Is(err, util.ErrTableFull) {
			org.Rehash()
			_, err = org.AddFile(name, folder)
		}
		switch {
		case errors.Is(err, util.ErrAlreadyExists):
			logger.Debug("skipping duplicate file", zap.String("path", rel))
			res.Skipped++
		case err != nil:
			return err
		default:
			res.Files++
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", dir, err)
	}
	return res, nil
}

func splitRel(rel string) (folder, name string) {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return "", rel
	}
	return rel[:i], rel[i+1:]
}
