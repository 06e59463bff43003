package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/output"
)

func NewDoctorCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(deps.Out)

			cfg, err := config.Read(flags.resolvedConfigPath(), deps.Sources...)
			if err != nil {
				return err
			}
			ok := true

			for _, bin := range []struct{ name, path string }{
				{"ffmpeg", cfg.FFmpeg.BinaryPath},
				{"whisper", cfg.Whisper.BinaryPath},
			} {
				if p, err := deps.Executor.LookPath(bin.path); err != nil {
					f.SetupCheck(bin.name, false, fmt.Sprintf("%s not found in PATH", bin.path))
					ok = false
				} else {
					f.SetupCheck(bin.name, true, p)
				}
			}

			switch _, err := os.Stat(cfg.Whisper.ModelPath); {
			case cfg.Whisper.ModelPath == "":
				f.SetupCheck("Whisper model", false, "whisper.model_path is not set")
				ok = false
			case err != nil:
				f.SetupCheck("Whisper model", false, fmt.Sprintf("%s not found", cfg.Whisper.ModelPath))
				ok = false
			default:
				f.SetupCheck("Whisper model", true, cfg.Whisper.ModelPath)
			}

			if err := cfg.Validate(); err != nil {
				detail := err.Error()
				if errors.Is(err, config.ErrMissingSecrets) {
					detail += ". Set them in the environment or the \"" + config.KeyringService + "\" keyring"
				}
				f.SetupCheck("Configuration", false, detail)
				ok = false
			} else {
				f.SetupCheck("Configuration", true, fmt.Sprintf("provider %s, model %s", cfg.LLM.Provider, cfg.LLM.Model))
			}

			if cfg.Remote.Enabled {
				f.SetupCheck("Remote library", true, cfg.Remote.Folder)
			} else {
				f.SetupCheck("Remote library", true, "disabled")
			}
			f.SetupCheck("Inbox directory", true, cfg.Paths.Inbox)

			if ok {
				f.Success("\nAll prerequisites met.")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
