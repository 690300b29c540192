package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/mdxblog/internal/parser"
	"github.com/dgallion1/mdxblog/internal/render"
)

var renderPage bool

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Transform a single file and print the HTML",
	Long: `Parse FILE by its extension, run the transform pipeline and print the
resulting HTML fragment. With --page the full page layout is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pipe, err := loadPipeline()
		if err != nil {
			return err
		}

		p, err := parser.ForFile(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := p.Parse(f, filepath.Base(args[0]))
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		tree, err := pipe.Run(cmd.Context(), doc.Tree)
		if err != nil {
			return err
		}

		if renderPage {
			page, err := render.NewRenderer(siteTitle).Page(doc.Title, doc.Meta, tree)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(page.HTML)
			return err
		}
		out, err := render.Fragment(tree)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "Print the full page instead of the fragment")
	rootCmd.AddCommand(renderCmd)
}
