package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/vmk_schedule_bot/internal/formatting"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/pdfgrid"
	"github.com/Freeeeeet/vmk_schedule_bot/internal/service"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Import schedule PDFs into the database",
	Long: `Import the given PDF files, or every PDF in --dir when no files are given.
Documents that were already imported are skipped unless --force is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		force, _ := cmd.Flags().GetBool("force")

		s, cfg, err := openStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		ingest := service.NewIngestService(s.schedules, s.documents, pdfgrid.ReadBytes, s.logger)
		opts := service.IngestOptions{Force: force}

		var results []*service.IngestResult
		if len(args) == 0 {
			if dir == "" {
				dir = cfg.TablesDir
			}
			results, err = ingest.IngestDir(cmd.Context(), dir, opts)
		} else {
			var errs []error
			for _, path := range args {
				res, ferr := ingest.IngestFile(cmd.Context(), path, opts)
				if ferr != nil {
					errs = append(errs, ferr)
					continue
				}
				results = append(results, res)
			}
			err = errors.Join(errs...)
		}

		printResults(cmd, results)
		return err
	},
}

func printResults(cmd *cobra.Command, results []*service.IngestResult) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Обработано: %d %s", len(results), formatting.PluralizeFiles(len(results)))))

	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(w, "• %s %s\n", r.File, mutedStyle.Render("(уже импортирован)"))
			continue
		}
		fmt.Fprintf(w, "• %s %s\n", r.File, okStyle.Render(fmt.Sprintf("%d %s", r.Groups, formatting.PluralizeGroups(r.Groups))))
		if len(r.SkippedGroups) > 0 {
			fmt.Fprintf(w, "  %s\n", warnStyle.Render("пропущены группы: "+strings.Join(r.SkippedGroups, ", ")))
		}
		if r.Report.Unrecognized > 0 || r.Report.Orphaned > 0 {
			fmt.Fprintf(w, "  %s\n", warnStyle.Render(fmt.Sprintf("нераспознанных строк: %d, строк времени без дня: %d", r.Report.Unrecognized, r.Report.Orphaned)))
		}
	}
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("dir", "d", "", "Directory with schedule PDFs (default TABLES_DIR)")
	ingestCmd.Flags().BoolP("force", "f", false, "Re-import documents that were already imported")
}
