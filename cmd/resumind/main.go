package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvarma/resumind/internal/catalogue"
	"github.com/nvarma/resumind/internal/engine"
	"github.com/nvarma/resumind/internal/parser"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "resumind",
		Short: "Resume section and field extraction",
		Long: `Resumind parses resumes and similar documents into structured fields.

It detects section boundaries from header lines, extracts singleton
fields (name, contact details) by pattern matching, and preserves the
document's top-to-bottom field order.`,
		Version: version,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(sectionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseCmd() *cobra.Command {
	var catalogueFile string
	var showText bool

	cmd := &cobra.Command{
		Use:   "parse <file> [files...]",
		Short: "Parse documents and print extracted fields as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalogue(catalogueFile)
			if err != nil {
				return err
			}
			eng := engine.New(cat)

			for _, path := range args {
				out, err := parseFile(eng, path, showText)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogueFile, "catalogue", "", "YAML catalogue file overriding the built-in sections")
	cmd.Flags().BoolVar(&showText, "text", false, "include the decoded raw text in the output")
	return cmd
}

func parseFile(eng *engine.Engine, path string, showText bool) (string, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return "", err
	}
	res, err := eng.Extract(doc.Text)
	if err != nil {
		return "", err
	}

	out := map[string]any{
		"filename":          doc.Filename,
		"parsed_data":       res.Fields(),
		"parsed_data_order": res.Order(),
	}
	if showText {
		out["raw_text_content"] = doc.Text
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func sectionsCmd() *cobra.Command {
	var catalogueFile string

	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Print the section catalogue in match priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalogue(catalogueFile)
			if err != nil {
				return err
			}
			for _, sec := range cat.Sections {
				kind := "text"
				if sec.List {
					kind = "list"
				}
				fmt.Printf("%-16s %-4s %v\n", sec.ID, kind, sec.Variants)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogueFile, "catalogue", "", "YAML catalogue file overriding the built-in sections")
	return cmd
}

func loadCatalogue(path string) (catalogue.Catalogue, error) {
	if path == "" {
		return catalogue.Default(), nil
	}
	return catalogue.Load(path)
}
