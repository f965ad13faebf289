package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bounce/internal/ui/theme"
)

var requirementCmd = &cobra.Command{
	Use:   "requirement",
	Short: "Browse routine requirements",
}

var requirementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List requirements grouped by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		groups := e.requirements.ByCategory()
		for i, cat := range e.requirements.Categories() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, theme.Heading.Render(cat))
			for _, q := range groups[cat] {
				fmt.Fprintf(w, "  %-14s  %-22s  %s\n",
					q.ID, q.Name, theme.TierStyle(q.Tier).Render(q.Tier.DisplayName()))
			}
		}
		fmt.Fprintf(w, "\n%d requirements\n", e.requirements.Len())
		return nil
	},
}

var requirementShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a requirement and its rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		q, err := e.requirements.Get(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, theme.Title.Render(q.Name))
		fmt.Fprintln(w, theme.Field("ID", q.ID))
		fmt.Fprintln(w, theme.Field("Category", q.Category))
		fmt.Fprintln(w, theme.Field("Tier", theme.TierStyle(q.Tier).Render(q.Tier.DisplayName())))
		if q.Description != "" {
			fmt.Fprintln(w, theme.Field("Description", q.Description))
		}
		fmt.Fprintln(w)
		for i, r := range q.Rules {
			fmt.Fprintf(w, "%2d. %s %s\n", i+1, r.Description, theme.Label.Render("("+r.ID+")"))
		}
		return nil
	},
}

func init() {
	requirementCmd.AddCommand(requirementListCmd)
	requirementCmd.AddCommand(requirementShowCmd)
}
