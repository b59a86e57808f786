package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-lifelike/storage"
)

var (
	flagHistoryLimit   int
	flagHistoryLongest bool
	flagHistoryClear   bool
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Display the most recent runs from the run log, or with --longest the
longest runs of the configured rule.

Examples:
  lifelike history
  lifelike history --limit 25
  lifelike history --longest --rule highlife
  lifelike history --clear`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryLongest, "longest", false, "Show the longest runs of the configured rule instead of the latest runs")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete every recorded run")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(config.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagHistoryClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Run log cleared.")
		return nil
	}

	var (
		runs  []storage.Run
		title string
	)
	if flagHistoryLongest {
		rs, err := config.RuleSet()
		if err != nil {
			return err
		}
		title = fmt.Sprintf("Longest runs - %s", rs)
		runs, err = store.LongestRuns(rs.String(), flagHistoryLimit)
		if err != nil {
			return err
		}
	} else {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagHistoryLimit)
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, headerStyle.Render(title))
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out, "Finish a 'lifelike run' to record the first one.")
		return nil
	}

	fmt.Fprintln(out, historyTable(runs))
	return nil
}

func historyTable(runs []storage.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		pattern := r.Pattern
		if pattern == "" {
			pattern = "random"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Rule,
			fmt.Sprintf("%dx%d", r.Size, r.Size),
			pattern,
			strconv.Itoa(r.Generations),
			strconv.Itoa(r.PeakPopulation),
			strconv.Itoa(r.Restarts),
			r.EndReason,
			r.Duration.Round(100 * time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderHeader(true).
		BorderRow(false).
		Headers("ID", "Date", "Rule", "Size", "Pattern", "Gens", "Peak", "Restarts", "End", "Duration").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	return t.String()
}
