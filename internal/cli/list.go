package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/vcv-app/vcv/internal/selector"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered Visual Studio installations",
		Long: `List every installation discovery reports, best first. The entry vcv
would activate (honouring --vs) is marked with '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := a.setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			installs, err := a.newLocator(cfg, logger).Locate(cmd.Context())
			if err != nil {
				return err
			}
			ranked := selector.Rank(installs)

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(ranked, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			chosen, selErr := selector.Select(installs, cfg.VSVersion)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, inst := range ranked {
				marker := " "
				if selErr == nil && inst == chosen {
					marker = "*"
				}
				state := ""
				if !inst.IsComplete {
					state = "(incomplete)"
				}
				fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\n", marker, inst.Year, inst.Version, inst.RootPath, state)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print installations as JSON")
	return cmd
}
