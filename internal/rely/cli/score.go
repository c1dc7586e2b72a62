package cli

import (
	"github.com/build-flow-labs/rely/internal/rely/output"
	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/build-flow-labs/rely/internal/rely/server"
	"github.com/build-flow-labs/rely/internal/rely/service"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newScoreCmd(a *app) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "score [repo_url]",
		Short: "Score a GitHub repository",
		Long: `Fetches the repository and prints its trust score.

Pass a URL of the form https://github.com/OWNER/REPO, or run without
arguments to be prompted for the owner and name.
Use --output json or --output yaml for machine-readable output.`,
		Example: `  rely score https://github.com/1cph93/bcolz
  rely score --output json https://github.com/spf13/cobra`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.newService(ctx)
			if err != nil {
				return err
			}

			var result *service.Result
			if len(args) == 1 {
				result, err = svc.ScoreRepository(ctx, args[0])
			} else {
				p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
				owner := p.askDefault("Repository owner", server.DefaultOwner)
				name := p.askDefault("Repository name", server.DefaultName)
				var id repo.Identifier
				id, err = repo.NewIdentifier(owner, name)
				if err == nil {
					result, err = svc.ScoreIdentifier(ctx, id)
				}
			}
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), result, a.cfg.Output, output.Options{
				Color: a.cfg.Color && !noColor && !color.NoColor,
			})
		},
	}

	cmd.Flags().StringP("output", "o", "table", "output format: table, json, yaml")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	_ = a.v.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}
