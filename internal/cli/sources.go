package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magnusgp/fermatter/internal/sources"
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the built-in source library",
	Long: `Sources lists the writing references the analyzer can attach to its
observations. Pass their ids to analyze via --sources to opt in.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range sources.Library {
			fmt.Printf("%-3s %s\n", s.ID, s.Title)
			if s.URL != "" {
				fmt.Printf("    %s\n", s.URL)
			}
			if s.Snippet != "" {
				fmt.Printf("    %s\n", s.Snippet)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
