package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/kairos/internal/kairos/service"
	"github.com/msto63/kairos/pkg/datetime"
	"github.com/spf13/cobra"
)

var (
	periodFlag string
	edgeFlag   string
	stepCount  int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input>",
	Short: "Parse a timestamp and show its fields",
	Long: `Parse a timestamp and show its text, positional and compact forms.

Accepted inputs:
  2023-01-15, 2023/1/15, 2023-Jan-15     midnight
  20230115                               compact date
  202301151030                           compact date and time (digits only)
  2023-01-15T10:30:00.250                ISO form
  2023-01-15 10:30[:00[.000250]]         space separated
  +infinity                              Null`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var alignCmd = &cobra.Command{
	Use:   "align <input>",
	Short: "Move a timestamp to the start or end of its period",
	Example: `  kairos align 2023-05-17 --period quarter
  kairos align "2023-05-17 13:45" --period month --edge end`,
	Args: cobra.ExactArgs(1),
	RunE: runAlign,
}

var stepCmd = &cobra.Command{
	Use:   "step <input>",
	Short: "Move a timestamp n periods forward or backward",
	Long: `Move a timestamp n periods forward (n > 0) or backward (n < 0). Every
step lands on a period start and stops at the representable bounds.`,
	Example: `  kairos step 2023-05-17 --period month -n 3
  kairos step 2023-05-17 --period week -n -2`,
	Args: cobra.ExactArgs(1),
	RunE: runStep,
}

var rangeCmd = &cobra.Command{
	Use:   "range <start> <end>",
	Short: "List the days in [start, end)",
	Args:  cobra.ExactArgs(2),
	RunE:  runRange,
}

var bucketCmd = &cobra.Command{
	Use:   "bucket <input>...",
	Short: "Group timestamps by period",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBucket,
}

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the current wall clock",
	Args:  cobra.NoArgs,
	RunE:  runNow,
}

func init() {
	for _, c := range []*cobra.Command{alignCmd, stepCmd, bucketCmd} {
		c.Flags().StringVarP(&periodFlag, "period", "p", "day", "period: day, week, month, quarter, halfyear, year")
	}
	alignCmd.Flags().StringVarP(&edgeFlag, "edge", "e", "start", "edge: start or end")
	stepCmd.Flags().IntVarP(&stepCount, "count", "n", 1, "number of periods; negative steps backward")

	rootCmd.AddCommand(inspectCmd, alignCmd, stepCmd, rangeCmd, bucketCmd, nowCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	in, err := b.Inspect(ctx, args[0])
	if err != nil {
		return err
	}
	printInspection(cmd.OutOrStdout(), in)
	return nil
}

func printInspection(w io.Writer, in *service.Inspection) {
	lines := []string{
		titleStyle.Render(in.Input),
		field("value", renderValue(in.Value)),
		field("repr", in.Repr),
		field("number", in.Number),
	}
	if in.Fields != nil {
		lines = append(lines,
			field("day of week", fmt.Sprintf("%d (%s)", in.DayOfWeek, weekdayName(in.DayOfWeek))),
			field("day of year", in.DayOfYear),
		)
	}
	fmt.Fprintln(w, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

func runAlign(cmd *cobra.Command, args []string) error {
	period, err := datetime.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}
	edge, err := service.ParseEdge(edgeFlag)
	if err != nil {
		return err
	}

	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	dt, err := b.Align(ctx, args[0], period, edge)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderValue(dt))
	return nil
}

func runStep(cmd *cobra.Command, args []string) error {
	period, err := datetime.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}

	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	dt, err := b.Step(ctx, args[0], period, stepCount)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderValue(dt))
	return nil
}

func runRange(cmd *cobra.Command, args []string) error {
	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	days, err := b.Range(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	printDays(cmd.OutOrStdout(), days)
	return nil
}

func runBucket(cmd *cobra.Command, args []string) error {
	period, err := datetime.ParsePeriod(periodFlag)
	if err != nil {
		return err
	}

	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	buckets, err := b.Bucket(ctx, args, period)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, bucket := range buckets {
		fmt.Fprintf(w, "%s  %s\n",
			titleStyle.Render(fmt.Sprintf("%s .. %s", dateOnly(bucket.Start), dateOnly(bucket.End))),
			okStyle.Render(fmt.Sprintf("(%d)", bucket.Count())))
		for _, m := range bucket.Members {
			fmt.Fprintf(w, "  %s\n", renderValue(m))
		}
	}
	return nil
}

func runNow(cmd *cobra.Command, args []string) error {
	b, closeFn, err := openBackend(false)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	now, err := b.Now(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderValue(now))
	return nil
}

func printDays(w io.Writer, days []datetime.Datetime) {
	for _, d := range days {
		fmt.Fprintf(w, "%s  %s\n", dateOnly(d), labelStyle.Render(weekdayName(d.DayOfWeek())))
	}
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("%d day(s)", len(days))))
}

func renderValue(dt datetime.Datetime) string {
	if dt.IsNull() {
		return nullStyle.Render(dt.String())
	}
	return dt.String()
}

// dateOnly drops the time of day from a midnight value
func dateOnly(dt datetime.Datetime) string {
	s := dt.String()
	if dt.IsNull() {
		return s
	}
	return strings.TrimSuffix(s, " 00:00:00")
}

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func weekdayName(d int) string {
	if d < 0 || d >= len(weekdayNames) {
		return "-"
	}
	return weekdayNames[d]
}
