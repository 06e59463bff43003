package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-digest/internal/distributor"
	"github.com/nguyentantai21042004/meeting-digest/internal/fetcher"
	"github.com/nguyentantai21042004/meeting-digest/internal/orchestrator"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
)

type runFlags struct {
	video  string
	docx   string
	vtt    string
	remote string
	to     string
	yes    bool
	report string
}

func NewRunCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process one recording and optionally email the summary",
		Long: "Process one recording: a local video (--video), a transcript document (--docx, --vtt) or a video in the remote library (--remote NAME).\n" +
			"The summary is printed; with --to (or when prompted) it is emailed with every recipient in BCC.",
		Example: "  digest run --vtt standup.vtt --to alice@example.com,bob@example.com\n" +
			"  digest run --remote 'Weekly sync.mp4' --report weekly.docx",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), deps, flags)
			if err != nil {
				return err
			}
			return runOnce(cmd.Context(), rt, rf)
		},
	}

	cmd.Flags().StringVar(&rf.video, "video", "", "Local video file")
	cmd.Flags().StringVar(&rf.docx, "docx", "", "Transcript in Word format")
	cmd.Flags().StringVar(&rf.vtt, "vtt", "", "Transcript in WebVTT format")
	cmd.Flags().StringVar(&rf.remote, "remote", "", "Name of a video in the remote library")
	cmd.Flags().StringVar(&rf.to, "to", "", "Recipients, separated by commas, semicolons or newlines")
	cmd.Flags().BoolVarP(&rf.yes, "yes", "y", false, "Send without asking for confirmation")
	cmd.Flags().StringVar(&rf.report, "report", "", "Also write the summary to this .docx file")

	return cmd
}

func runOnce(ctx context.Context, rt *runtime, rf *runFlags) error {
	in, err := selectInput(ctx, rt, rf)
	if err != nil {
		return err
	}

	session := rt.app.NewSession()
	session.OnTransition(rt.out.Transition)

	if err := session.Select(in); err != nil {
		return err
	}
	if err := session.Process(ctx); err != nil {
		return err
	}

	bundle, _ := session.Bundle()
	rt.out.Bundle(bundle)

	if rf.report != "" {
		if err := summarizer.WriteReport(bundle, in.Name(), rf.report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		rt.out.Success("Report saved: " + rf.report)
	}

	return sendInteractive(ctx, rt, session, rf.to, rf.yes)
}

func selectInput(ctx context.Context, rt *runtime, rf *runFlags) (orchestrator.Input, error) {
	set := 0
	for _, v := range []string{rf.video, rf.docx, rf.vtt, rf.remote} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of --video, --docx, --vtt or --remote is required")
	}

	switch {
	case rf.video != "":
		if rt.app.VideoErr != nil {
			return nil, fmt.Errorf("video input unavailable: %w", rt.app.VideoErr)
		}
		return orchestrator.VideoFile{Source: fetcher.LocalSource{Path: rf.video}}, nil
	case rf.docx != "":
		return orchestrator.DocxTranscript{Source: fetcher.LocalSource{Path: rf.docx}}, nil
	case rf.vtt != "":
		return orchestrator.VTTTranscript{Source: fetcher.LocalSource{Path: rf.vtt}}, nil
	}

	if rt.app.VideoErr != nil {
		return nil, fmt.Errorf("video input unavailable: %w", rt.app.VideoErr)
	}
	items, err := rt.app.Fetcher.ListRemote(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, rf.remote) {
			return orchestrator.RemoteVideo{Item: it}, nil
		}
	}
	return nil, fmt.Errorf("remote recording %q not found (see 'digest remote list')", rf.remote)
}

// sendInteractive collects recipients if none were given, confirms, and
// offers to retry failed deliveries. Nothing is retried without the user.
func sendInteractive(ctx context.Context, rt *runtime, session *orchestrator.Session, raw string, yes bool) error {
	if raw == "" && !yes {
		raw = rt.ask("Recipients (comma-separated, blank to skip):")
	}
	if strings.TrimSpace(raw) == "" {
		rt.out.Info("No recipients given, summary not sent")
		return nil
	}

	recipients, err := distributor.ParseRecipients(raw)
	if err != nil {
		return err
	}
	if !yes && !rt.confirm(fmt.Sprintf("Send summary to %d recipients (BCC)?", recipients.Len())) {
		rt.out.Info("Summary not sent")
		return nil
	}

	for {
		err := session.Send(ctx, raw)
		if err == nil {
			rt.out.Success(fmt.Sprintf("Email sent to %d recipients", recipients.Len()))
			return nil
		}
		rt.out.Error(err.Error())
		if yes || !rt.confirm("Retry sending?") {
			return err
		}
	}
}
