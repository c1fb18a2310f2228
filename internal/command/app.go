// Package command implements the deck CLI subcommands. Each former page of
// the dashboard is one subcommand; watch is the long-lived session.
package command

import (
	"fmt"
	"io"
	"log"
	"os"

	"PortfolioDeck/internal/chart"
	"PortfolioDeck/internal/config"
	"PortfolioDeck/internal/gateway"
	"PortfolioDeck/internal/journal"
	"PortfolioDeck/internal/notify"
	"PortfolioDeck/internal/view"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&portfolioCmd{}, "views")
	c.Register(&settlementCmd{}, "views")
	c.Register(&watchCmd{}, "session")
}

// session bundles one wired dashboard session.
type session struct {
	cfg     *config.Config
	ctrl    *view.Controller
	term    *chart.TermRenderer
	board   *chart.Board
	journal journal.Journal
}

// newSession loads configuration and wires the full stack. When live is set,
// chart replacements draw straight to stdout; otherwise frames are kept on
// their handles for the command to print in order.
func newSession(configFile string, live bool) (*session, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] no .env file found, using process environment")
	}

	if v := os.Getenv("DECK_CONFIG"); configFile == "" && v != "" {
		configFile = v
	}
	if configFile == "" {
		configFile = "deck.yaml"
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	backend := gateway.NewClient(cfg.Backend.BaseURL, cfg.Proxy)
	quotes := gateway.NewQuoteClient(cfg.Quotes.BaseURL, cfg.Proxy)

	term, err := chart.NewTermRenderer(cfg.Session.Currency)
	if err != nil {
		return nil, err
	}
	var chartOut io.Writer = io.Discard
	if live {
		chartOut = os.Stdout
	}
	board := chart.NewBoard(term, chartOut)

	var jr journal.Journal
	if cfg.Journal.SQLitePath != "" {
		sj, err := journal.NewSQLiteJournal(cfg.Journal.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
			jr = journal.NewNoopJournal()
		} else {
			jr = sj
		}
	} else {
		jr = journal.NewNoopJournal()
	}

	ctrl := view.NewController(backend, quotes, board, notify.NewTerminal(os.Stdout), jr)
	return &session{cfg: cfg, ctrl: ctrl, term: term, board: board, journal: jr}, nil
}

func (s *session) close() {
	if err := s.journal.Close(); err != nil {
		log.Printf("[ERROR] close journal: %v", err)
	}
}

// printFrame writes an owned chart frame, if the handle holds one.
func printFrame(h *chart.Handle) {
	if frame, ok := h.Frame(); ok {
		fmt.Print(frame)
	}
}

func printTable(md string, err error) {
	if err != nil {
		log.Printf("[ERROR] render table: %v", err)
		return
	}
	fmt.Print(md)
}
