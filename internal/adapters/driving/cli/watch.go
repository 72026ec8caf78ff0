package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Leafra-ai/LeafraSDK/internal/logger"
)

// watchSettleDelay is how long a new file must be quiet before it is
// ingested. PDFs are often written in several chunks.
const watchSettleDelay = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest PDFs as they appear",
	Long: `Watches the given directory and ingests every PDF that is created or
modified in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	if err := initRetrieval(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for PDFs (Ctrl-C to stop)\n", dir)

	deb := newDebouncer(watchSettleDelay)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopping watch")
			return nil

		case f := <-deb.settled:
			if !deb.accept(f) {
				continue
			}
			ingestWatched(ctx, cmd, f.path)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}
			deb.touch(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// debouncer coalesces bursts of writes to the same file, reporting a
// path on settled only once it has been quiet for the full delay. Its
// methods are not safe for concurrent use; touch and accept belong to
// the watch loop.
type debouncer struct {
	delay   time.Duration
	settled chan settledFile
	pending map[string]*time.Timer
}

// settledFile carries the timer that fired so a stale fire can be told
// apart from the current one.
type settledFile struct {
	path  string
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		settled: make(chan settledFile),
		pending: make(map[string]*time.Timer),
	}
}

// touch arms the settle timer for path, or pushes it back if one is
// already running. A timer that has fired cannot be reset safely (the
// fire may be queued on settled already), so a fresh timer replaces it
// and accept drops the stale one.
func (d *debouncer) touch(ctx context.Context, path string) {
	if timer, ok := d.pending[path]; ok && timer.Stop() {
		timer.Reset(d.delay)
		return
	}

	t := time.NewTimer(d.delay)
	d.pending[path] = t
	go func() {
		select {
		case <-t.C:
		case <-ctx.Done():
			return
		}
		select {
		case d.settled <- settledFile{path: path, timer: t}:
		case <-ctx.Done():
		}
	}()
}

// accept reports whether f is still the current settle for its path,
// clearing the pending entry when it is. A fire superseded by a later
// write is rejected so one write burst never ingests a file twice.
func (d *debouncer) accept(f settledFile) bool {
	if d.pending[f.path] != f.timer {
		return false
	}
	delete(d.pending, f.path)
	return true
}

// ingestWatched extracts and ingests one settled file.
func ingestWatched(ctx context.Context, cmd *cobra.Command, path string) {
	doc, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Error("Extracting %s failed: %v", path, err)
		return
	}

	result, err := retrievalService.Ingest(ctx, doc)
	if err != nil {
		logger.Error("Ingesting %s failed: %v", path, err)
		return
	}

	cmd.Printf("Ingested %s: %d chunks (index size %d)\n",
		path, result.ChunkCount, result.IndexSize)
}
