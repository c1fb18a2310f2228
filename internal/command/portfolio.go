package command

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// portfolioCmd renders the portfolio page once: holdings, composition chart,
// and transaction history.
type portfolioCmd struct {
	configFile string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "display holdings, valuation, and transactions" }
func (*portfolioCmd) Usage() string {
	return `deck portfolio [-config <file>]

  Fetches the portfolio views once and renders them.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to the YAML config file")
}

func (c *portfolioCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSession(c.configFile, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	s.ctrl.LoadAll(ctx)

	state := s.ctrl.State()
	printTable(s.term.HoldingsTable(state.Holdings()))
	printFrame(s.board.Valuation)
	printTable(s.term.TransactionsTable(state.Transactions()))
	return subcommands.ExitSuccess
}
