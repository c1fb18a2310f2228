package command

import (
	"context"
	"flag"
	"fmt"
	"os"

	"PortfolioDeck/internal/aggregate"

	"github.com/google/subcommands"
)

// settlementCmd renders the settlement page once: balance, statement, and
// the balance trend chart.
type settlementCmd struct {
	configFile string
}

func (*settlementCmd) Name() string     { return "settlement" }
func (*settlementCmd) Synopsis() string { return "display the settlement account and balance trend" }
func (*settlementCmd) Usage() string {
	return `deck settlement [-config <file>]

  Fetches the settlement account views once and renders them.
`
}

func (c *settlementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "config", "", "Path to the YAML config file")
}

func (c *settlementCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := newSession(c.configFile, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	s.ctrl.LoadAll(ctx)

	state := s.ctrl.State()
	if balance, known := state.Balance(); known {
		fmt.Printf("Current balance: %s\n", aggregate.Cash(balance, s.cfg.Session.Currency).Display())
	} else {
		fmt.Println("Current balance: unavailable")
	}
	printTable(s.term.StatementTable(state.Statement()))
	printFrame(s.board.Trend)
	return subcommands.ExitSuccess
}
