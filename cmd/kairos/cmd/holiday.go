package cmd

import (
	"fmt"

	kerror "github.com/msto63/kairos/foundation/core/error"
	"github.com/msto63/kairos/pkg/datetime"
	"github.com/spf13/cobra"
)

var (
	marketFlag      string
	holidayName     string
	holidayFromFlag string
	holidayToFlag   string
)

var holidayCmd = &cobra.Command{
	Use:   "holiday",
	Short: "Manage market holidays in the local calendar store",
}

var holidayAddCmd = &cobra.Command{
	Use:     "add <day>",
	Short:   "Mark a day as holiday of a market",
	Example: `  kairos holiday add 2024-12-25 --market XETR --name "Christmas Day"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runHolidayAdd,
}

var holidayRmCmd = &cobra.Command{
	Use:     "rm <day>",
	Aliases: []string{"remove"},
	Short:   "Remove a holiday of a market",
	Args:    cobra.ExactArgs(1),
	RunE:    runHolidayRm,
}

var holidayLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List the holidays of a market",
	Args:    cobra.NoArgs,
	RunE:    runHolidayLs,
}

var tradingDaysCmd = &cobra.Command{
	Use:   "trading-days <start> <end>",
	Short: "List the trading days in [start, end)",
	Long: `List the days in [start, end) that are neither configured weekend days
nor holidays of the market.`,
	Args: cobra.ExactArgs(2),
	RunE: runTradingDays,
}

func init() {
	for _, c := range []*cobra.Command{holidayAddCmd, holidayRmCmd, holidayLsCmd, tradingDaysCmd} {
		c.Flags().StringVarP(&marketFlag, "market", "m", "", "market code (default: calendar.default_market)")
	}
	holidayAddCmd.Flags().StringVar(&holidayName, "name", "", "holiday name")
	holidayLsCmd.Flags().StringVar(&holidayFromFlag, "from", "", "first day to list (default: all)")
	holidayLsCmd.Flags().StringVar(&holidayToFlag, "to", "", "last day to list (default: all)")

	holidayCmd.AddCommand(holidayAddCmd, holidayRmCmd, holidayLsCmd)
	rootCmd.AddCommand(holidayCmd, tradingDaysCmd)
}

// localOnly rejects --remote for commands without an RPC
func localOnly(name string) error {
	if remote != "" {
		return kerror.Newf("%s is not available with --remote", name).
			WithCode(kerror.CodeInvalidInput).
			WithOperation("cmd." + name)
	}
	return nil
}

func market() string {
	if marketFlag != "" {
		return marketFlag
	}
	return appConfig.Calendar.DefaultMarket
}

func runHolidayAdd(cmd *cobra.Command, args []string) error {
	if err := localOnly("holiday add"); err != nil {
		return err
	}
	svc, st, err := openService(true)
	if err != nil {
		return err
	}
	defer st.Close()
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	day, err := svc.Parse(args[0])
	if err != nil {
		return err
	}
	if err := st.AddHoliday(ctx, market(), day, holidayName); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okStyle.Render("added"), market(), dateOnly(day.StartOfDay()))
	return nil
}

func runHolidayRm(cmd *cobra.Command, args []string) error {
	if err := localOnly("holiday rm"); err != nil {
		return err
	}
	svc, st, err := openService(true)
	if err != nil {
		return err
	}
	defer st.Close()
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	day, err := svc.Parse(args[0])
	if err != nil {
		return err
	}
	if err := st.RemoveHoliday(ctx, market(), day); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", okStyle.Render("removed"), market(), dateOnly(day.StartOfDay()))
	return nil
}

func runHolidayLs(cmd *cobra.Command, args []string) error {
	if err := localOnly("holiday ls"); err != nil {
		return err
	}
	svc, st, err := openService(true)
	if err != nil {
		return err
	}
	defer st.Close()
	defer svc.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	from, to := datetime.Min(), datetime.Null()
	if holidayFromFlag != "" {
		if from, err = svc.Parse(holidayFromFlag); err != nil {
			return err
		}
	}
	if holidayToFlag != "" {
		if to, err = svc.Parse(holidayToFlag); err != nil {
			return err
		}
	}

	holidays, err := st.Holidays(ctx, market(), from, to)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Holidays %s", market())))
	for _, h := range holidays {
		name := h.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", dateOnly(h.Day), labelStyle.Render(weekdayName(h.Day.DayOfWeek())), name)
	}
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("%d holiday(s)", len(holidays))))
	return nil
}

func runTradingDays(cmd *cobra.Command, args []string) error {
	b, closeFn, err := openBackend(true)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	days, err := b.TradingDays(ctx, marketFlag, args[0], args[1])
	if err != nil {
		return err
	}
	printDays(cmd.OutOrStdout(), days)
	return nil
}
