package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/config"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/exporter"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/pdfgrid"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/timetable"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Render a group's week from a PDF as PNG or ICS",
	Long: `Render the current week of a group straight from a schedule PDF.
The output format follows the extension of --output (.png or .ics).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		group, _ := cmd.Flags().GetString("group")
		output, _ := cmd.Flags().GetString("output")
		weeks, _ := cmd.Flags().GetInt("weeks")

		cfg, err := config.LoadTool()
		if err != nil {
			return err
		}
		cal, err := service.NewCalendar(cfg.Timezone, cfg.ParityInverted)
		if err != nil {
			return err
		}

		grids, err := pdfgrid.ReadFile(args[0])
		if err != nil {
			return err
		}
		table, _ := timetable.Extract(grids)
		days, ok := table[group]
		if !ok {
			return fmt.Errorf("group %s not found in document", group)
		}

		if output == "" {
			output = "schedule_" + strings.ReplaceAll(group, "/", "-") + ".png"
		}

		now := cal.In(time.Now())
		var data []byte
		switch strings.ToLower(filepath.Ext(output)) {
		case ".png":
			odd := cal.IsOdd(now)
			data, err = exporter.RenderWeekImage(exporter.WeekImage{
				Group:     group,
				Odd:       odd,
				WeekStart: cal.WeekStart(now),
				Week:      timetable.ResolveWeek(days, odd),
				Now:       now,
			})
		case ".ics":
			var buf strings.Builder
			err = exporter.GenerateICS(&buf, exporter.CalendarRequest{
				Group: group,
				From:  now,
				Weeks: weeks,
				Odd:   timetable.ResolveWeek(days, true),
				Even:  timetable.ResolveWeek(days, false),
				IsOdd: cal.IsOdd,
			})
			data = []byte(buf.String())
		default:
			return fmt.Errorf("unsupported output format %q, use .png or .ics", filepath.Ext(output))
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Сохранено в "+output))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("group", "g", "", "Group number")
	renderCmd.Flags().StringP("output", "o", "", "Output file (.png or .ics)")
	renderCmd.Flags().Int("weeks", 4, "Weeks to export into ICS")
	renderCmd.MarkFlagRequired("group")
}
