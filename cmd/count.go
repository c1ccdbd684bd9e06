package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gitissues/internal/domain"
)

var countCmd = &cobra.Command{
	Use:   "count <githubUrl>",
	Short: "Counts open issues of a repository once and outputs them as JSON",
	Long: `Counts the open issues of the repository at githubUrl (for example
https://github.com/octocat/Hello-World) in every time window and prints the
result as JSON. A window whose search failed holds an "error:..." value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := domain.ParseRepositoryURL(args[0])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}

		results := a.aggregator.Aggregate(cmd.Context(), repo)

		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
