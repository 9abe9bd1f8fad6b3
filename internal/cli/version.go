package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcv-app/vcv/internal/platform"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and host information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "vcv %s\n", a.opts.Version)

			arch := "unknown"
			if h, err := a.opts.HostArch(); err == nil {
				arch = h.String()
			}
			_, err := fmt.Fprintf(out, "host: %s (%s, %s)\n", platform.OSCaption(cmd.Context()), arch, a.opts.Platform.Name())
			return err
		},
	}
}
