package command

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"PortfolioDeck/internal/aggregate"
	"PortfolioDeck/internal/filter"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"
)

// watchCmd runs the interactive dashboard session: initial load, periodic
// auto-refresh, and a command prompt for mutations, filters, and quote views.
type watchCmd struct {
	configFile string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the interactive dashboard session" }
func (*watchCmd) Usage() string {
	return `deck watch [-config <file>]

  Loads all views, refreshes them on the configured schedule, and accepts
  commands on stdin. Type "help" at the prompt for the command list.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to the YAML config file")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSession(c.configFile, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Println("[INFO] loading dashboard")
	s.ctrl.LoadAll(ctx)

	cr := cron.New(cron.WithSeconds())
	if _, err := cr.AddFunc(s.cfg.Session.RefreshCron, func() {
		log.Println("[INFO] scheduled refresh")
		s.ctrl.LoadAll(ctx)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering refresh schedule: %v\n", err)
		return subcommands.ExitFailure
	}
	cr.Start()
	defer cr.Stop()

	fmt.Println(`Type "help" for commands, "quit" to exit.`)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("deck> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		c.handle(ctx, s, line)
	}
	log.Println("[INFO] session ended")
	return subcommands.ExitSuccess
}

// handle runs one prompt command. Failures never end the session.
func (c *watchCmd) handle(ctx context.Context, s *session, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		fmt.Print(helpText)

	case "portfolio":
		state := s.ctrl.State()
		printTable(s.term.HoldingsTable(state.Holdings()))
		printTable(s.term.TransactionsTable(state.Transactions()))

	case "settlement":
		state := s.ctrl.State()
		if balance, known := state.Balance(); known {
			fmt.Printf("Current balance: %s\n", aggregate.Cash(balance, s.cfg.Session.Currency).Display())
		}
		printTable(s.term.StatementTable(state.Statement()))

	case "companies":
		fmt.Println(strings.Join(s.ctrl.State().Companies(), ", "))

	case "quotes":
		// No argument selects the combined all-tickers view.
		company := ""
		if len(args) > 0 {
			company = args[0]
		}
		s.ctrl.ShowQuotes(ctx, company)

	case "buy":
		company, quantity, ok := parseOrder(args)
		if !ok {
			fmt.Println("usage: buy <ticker> <quantity>")
			return
		}
		c.mutate(ctx, s, company, func() error {
			return s.ctrl.AddAsset(ctx, company, quantity)
		})

	case "sell":
		company, quantity, ok := parseOrder(args)
		if !ok {
			fmt.Println("usage: sell <ticker> <quantity>")
			return
		}
		c.mutate(ctx, s, company, func() error {
			return s.ctrl.RemoveAsset(ctx, company, quantity)
		})

	case "liquidate":
		if len(args) != 1 {
			fmt.Println("usage: liquidate <ticker>")
			return
		}
		company := args[0]
		c.mutate(ctx, s, company, func() error {
			return s.ctrl.LiquidateCompany(ctx, company)
		})

	case "liquidate-all":
		s.ctrl.LiquidateAll(ctx)

	case "deposit", "withdraw":
		if len(args) != 1 {
			fmt.Printf("usage: %s <amount>\n", cmd)
			return
		}
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Println("amount must be a number")
			return
		}
		if cmd == "deposit" {
			s.ctrl.Deposit(ctx, amount)
		} else {
			s.ctrl.Withdraw(ctx, amount)
		}

	case "filter":
		crit, err := parseCriteria(args)
		if err != nil {
			fmt.Println(err)
			return
		}
		rows, err := s.ctrl.FilterTransactions(crit)
		if err != nil {
			return
		}
		printTable(s.term.TransactionsTable(rows))

	case "sfilter":
		crit, err := parseCriteria(args)
		if err != nil {
			fmt.Println(err)
			return
		}
		rows, err := s.ctrl.FilterStatement(crit)
		if err != nil {
			return
		}
		printTable(s.term.StatementTable(rows))

	case "clear":
		s.ctrl.ClearFilter()
		fmt.Println("filters cleared")

	case "refresh":
		s.ctrl.LoadAll(ctx)

	default:
		fmt.Printf("unknown command %q, type \"help\"\n", cmd)
	}
}

// mutate runs one form-scoped mutation: open the form, fetch a fresh price
// for the payload, submit, close. The price cache dies with the form.
func (c *watchCmd) mutate(ctx context.Context, s *session, company string, submit func() error) {
	s.ctrl.OpenForm()
	defer s.ctrl.CloseForm()

	if _, err := s.ctrl.FetchFormPrice(ctx, company); err != nil {
		return
	}
	submit()
}

func parseOrder(args []string) (company string, quantity int64, ok bool) {
	if len(args) != 2 {
		return "", 0, false
	}
	quantity, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return args[0], quantity, true
}

// parseCriteria reads clause pairs like company=AAPL action=buy date=2025-03-01.
func parseCriteria(args []string) (filter.Criteria, error) {
	var crit filter.Criteria
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			return crit, fmt.Errorf("bad clause %q, expected key=value", arg)
		}
		switch key {
		case "company":
			crit.Company = value
		case "action":
			crit.Action = value
		case "date":
			crit.Date = value
		default:
			return crit, fmt.Errorf("unknown clause %q", key)
		}
	}
	return crit, nil
}

const helpText = `Commands:
  portfolio                       show holdings and transactions
  settlement                      show balance and statement
  companies                       list held tickers
  quotes [ticker]                 price trends (no ticker = all, combined)
  buy <ticker> <quantity>         add to a position at the fetched price
  sell <ticker> <quantity>        remove from a position
  liquidate <ticker>              close one position
  liquidate-all                   close every position
  deposit <amount>                add funds to the settlement account
  withdraw <amount>               withdraw funds
  filter k=v ...                  filter transactions (company/action/date)
  sfilter k=v ...                 filter the statement (action/date)
  clear                           clear active filters
  refresh                         re-fetch everything now
  quit                            exit
`
