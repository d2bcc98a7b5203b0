package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caseline/caseline/internal/thread"
)

func newParseCmd() *cobra.Command {
	var (
		budget  int
		asJSON  bool
		linkify bool
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Reduce a raw email HTML body",
		Long:  "Reduce a raw email HTML body into new content and quoted history.\nReads from the file argument, or stdin when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(args)
			if err != nil {
				return err
			}

			if budget < 0 {
				return fmt.Errorf("budget must not be negative")
			}
			if !cmd.Flags().Changed("budget") {
				budget = GetConfig().Engine.CharacterBudget
			}

			result := thread.Reduce(string(body), thread.Options{CharacterBudget: budget})
			if linkify {
				result.NewContent = thread.Linkify(result.NewContent)
				result.HistoryContent = thread.Linkify(result.HistoryContent)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, sectionStyle.Render("new content"))
			fmt.Fprintln(out, result.NewContent)
			if result.HasHistory {
				fmt.Fprintln(out, sectionStyle.Render("history"))
				fmt.Fprintln(out, result.HistoryContent)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&budget, "budget", 0, "character budget for new content (0 = unlimited)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the parse result as JSON")
	cmd.Flags().BoolVar(&linkify, "linkify", true, "rewrite bare URLs into anchors")

	return cmd
}

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print the plain-text preview of an HTML body",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(args)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), previewLine(GetConfig(), string(body)))
			return nil
		},
	}
	return cmd
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
