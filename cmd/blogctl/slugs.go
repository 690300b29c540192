package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdxblog/internal/content"
)

var slugsCmd = &cobra.Command{
	Use:   "slugs",
	Short: "List post slugs",
	Long:  `List the slug of every supported file in the posts directory, one per line.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slugs, err := content.NewStore(postsDir).Slugs()
		if err != nil {
			return err
		}
		for _, s := range slugs {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(slugsCmd)
}
