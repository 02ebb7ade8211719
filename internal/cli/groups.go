package cli

import (
	"fmt"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List groups with a stored schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		groups, err := s.schedules.Groups(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d %s", len(groups), formatting.PluralizeGroups(len(groups)))))
		for _, g := range groups {
			fmt.Fprintf(w, "• %s\n", g)
		}
		return nil
	},
}

var deleteGroupCmd = &cobra.Command{
	Use:   "delete-group GROUP",
	Short: "Remove the stored schedule of a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.schedules.DeleteGroup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), warnStyle.Render("Группа "+args[0]+" не найдена"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Удалено дней: %d", n)))
		return nil
	},
}

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Show recently imported documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		docs, err := s.documents.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Импортировано %d %s", len(docs), formatting.PluralizeFiles(len(docs)))))
		for _, d := range docs {
			fmt.Fprintf(w, "• %s %s\n  %s\n", d.Filename,
				mutedStyle.Render(d.IngestedAt.Format("02.01.2006 15:04")),
				mutedStyle.Render(fmt.Sprintf("%s, run %s, %d %s", shortHash(d.Hash), d.RunID, d.Groups, formatting.PluralizeGroups(d.Groups))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd, deleteGroupCmd, documentsCmd)

	documentsCmd.Flags().IntP("limit", "n", 20, "How many documents to show")
}

func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
