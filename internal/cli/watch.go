package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-digest/internal/distributor"
	"github.com/nguyentantai21042004/meeting-digest/internal/orchestrator"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-digest/internal/watcher"
)

func NewWatchCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Process every recording dropped into the inbox folder",
		Long:  "Watch paths.inbox. Each new video or transcript runs in its own session; a .docx report is written to paths.reports and, with --to, the summary is emailed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx, deps, flags)
			if err != nil {
				return err
			}

			if to != "" {
				if _, err := distributor.ParseRecipients(to); err != nil {
					return err
				}
			}

			if err := ensureDirectories(rt.cfg.Paths.Inbox, rt.cfg.Paths.Reports, rt.cfg.Paths.Temp); err != nil {
				return err
			}

			w, err := watcher.New(rt.cfg.Paths.Inbox, rt.handleFile(to), rt.log, rt.cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			rt.out.Info(fmt.Sprintf("Watching %s (Ctrl+C to stop)", rt.cfg.Paths.Inbox))

			err = w.Start(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Email every summary to these recipients")
	return cmd
}

// handleFile processes one inbox file in a fresh session.
func (rt *runtime) handleFile(to string) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		in, err := orchestrator.InputForPath(path)
		if err != nil {
			return err
		}
		if _, isVideo := in.(orchestrator.VideoFile); isVideo && rt.app.VideoErr != nil {
			return fmt.Errorf("video input unavailable: %w", rt.app.VideoErr)
		}

		session := rt.app.NewSession()
		if err := session.Select(in); err != nil {
			return err
		}
		if err := session.Process(ctx); err != nil {
			return err
		}

		bundle, _ := session.Bundle()
		base := filepath.Base(path)
		report := filepath.Join(rt.cfg.Paths.Reports, strings.TrimSuffix(base, filepath.Ext(base))+"-summary.docx")
		if err := summarizer.WriteReport(bundle, base, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		rt.log.Info(ctx, "[DONE] %s -> %s", base, report)

		if to != "" {
			if err := session.Send(ctx, to); err != nil {
				return err
			}
		}
		return nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
