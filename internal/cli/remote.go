package cli

import (
	"github.com/spf13/cobra"
)

func NewRemoteCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Browse the remote recording library",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List videos in the configured remote folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), deps, flags)
			if err != nil {
				return err
			}
			items, err := rt.app.Fetcher.ListRemote(cmd.Context())
			if err != nil {
				return err
			}
			rt.out.RemoteList(items)
			return nil
		},
	})

	return cmd
}
