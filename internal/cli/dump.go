package cli

import (
	"fmt"
	"io"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/pdfgrid"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Extract a schedule PDF and print it without touching the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		odd, _ := cmd.Flags().GetBool("odd")

		grids, err := pdfgrid.ReadFile(args[0])
		if err != nil {
			return err
		}
		table, report := timetable.Extract(grids)

		return dumpTimetable(cmd.OutOrStdout(), table, report, group, odd)
	},
}

// dumpTimetable печатает статистику разбора и недели групп выбранной чётности
func dumpTimetable(w io.Writer, table timetable.Timetable, report timetable.Report, group string, odd bool) error {
	groups := table.Groups()
	if group != "" {
		if _, ok := table[group]; !ok {
			return fmt.Errorf("group %s not found in document", group)
		}
		groups = []string{group}
	}

	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(
		"страниц: %d (распознано %d), дней: %d, строк времени: %d, объединённых: %d, нераспознанных: %d",
		report.Pages, report.Recognized, report.Weekdays, report.TimeRows, report.MergedRows, report.Unrecognized)))

	parity := "чётная"
	if odd {
		parity = "нечётная"
	}
	for _, g := range groups {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Группа %s, %s неделя", g, parity)))
		writeSchedule(w, formatting.FormatWeek(timetable.ResolveWeek(table[g], odd)))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringP("group", "g", "", "Print only this group")
	dumpCmd.Flags().Bool("odd", false, "Print the odd week (default even)")
}
