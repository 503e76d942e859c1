package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dendrascience/dendra-file-organizer/internal/metrics"
	"github.com/dendrascience/dendra-file-organizer/organizer"
	"github.com/dendrascience/dendra-file-organizer/orgfs"
	"github.com/dendrascience/dendra-file-organizer/version"
)

// NewMountCmd creates and returns the mount subcommand for the organizer CLI.
// It exposes an organizer as a FUSE filesystem until interrupted.
func NewMountCmd(opts *options) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount the organizer as a FUSE filesystem",
		Long: `Mount an in-memory organizer at the specified mountpoint.

Directories are folders and regular files are index entries: mkdir creates a
folder, creating a file adds it, and rm deletes it. Files are always empty and
folders cannot be removed. Only one mount runs at a time; the lock file is set
in the [mount] section of the configuration.

Nothing is persisted: the tree is lost when the filesystem is unmounted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(cmd, opts, args[0], metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	return cmd
}

func runMount(cmd *cobra.Command, opts *options, mountpoint, metricsAddr string) error {
	m := metrics.New(nil)
	e, err := opts.setup(cmd, organizer.WithRecorder(m))
	if err != nil {
		return err
	}
	defer e.Close()

	logger := e.logger.With(zap.String("session_id", uuid.NewString()))
	logger.Info("organizer starting", zap.String("version", version.GetFullVersion()))

	lockPath := e.cfg.Mount.LockFile
	if err := checkLockPath(lockPath, mountpoint); err != nil {
		return err
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another organizer mount is already running")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release lock", zap.Error(err))
		}
	}()

	if metricsAddr == "" {
		metricsAddr = e.cfg.Metrics.Addr
	}
	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: metricsMux(m), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", zap.Error(err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		logger.Info("serving metrics", zap.String("addr", metricsAddr))
	}

	filesystem := orgfs.NewFS(e.org, logger)

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("organizer"),
		fuse.Subtype("organizer"),
	)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Warn("unmount", zap.String("mountpoint", mountpoint), zap.Error(err))
		}
	}()

	logger.Info("mounted", zap.String("mountpoint", mountpoint))
	if err := fs.Serve(c, filesystem); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("shutdown complete",
		zap.Int("folders", e.org.Statistics().FolderCount),
		zap.Int("files", e.org.Statistics().FileCount))
	return nil
}

func metricsMux(m *metrics.Metrics) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return mux
}

// checkLockPath rejects a lock file that would be hidden by the mount.
func checkLockPath(lockPath, mountpoint string) error {
	if lockPath == "" {
		return errors.New("mount.lock_file is empty")
	}
	if pathsOverlap(lockPath, mountpoint) {
		return fmt.Errorf("lock file %s must not be inside mountpoint %s", lockPath, mountpoint)
	}
	return nil
}

// pathsOverlap reports whether either path contains the other.
func pathsOverlap(path1, path2 string) bool {
	abs1, err1 := filepath.Abs(path1)
	abs2, err2 := filepath.Abs(path2)
	if err1 != nil || err2 != nil {
		return filepath.Clean(path1) == filepath.Clean(path2)
	}
	if abs1 == abs2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(abs1, abs2+sep) || strings.HasPrefix(abs2, abs1+sep)
}
