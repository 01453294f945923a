package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "github.com/vraelian/OrbitalTrading/internal/cli"
	"github.com/vraelian/OrbitalTrading/internal/config"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "trader-ctl",
		Short:        "Orbital Trading command-line client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newStatusCmd(&apiBase),
		newMarketCmd(&apiBase),
		newLedgerCmd(&apiBase),
		newRoutesCmd(&apiBase),
		newShipyardCmd(&apiBase),
		newBuyCmd(&apiBase),
		newSellCmd(&apiBase),
		newTravelCmd(&apiBase),
		newResolveCmd(&apiBase),
		newAgeCmd(&apiBase),
		newRefuelCmd(&apiBase),
		newRepairCmd(&apiBase),
		newLoanCmd(&apiBase),
		newIntelCmd(&apiBase),
		newShipCmd(&apiBase),
		newNewGameCmd(&apiBase),
		newSavesCmd(&apiBase),
		newAdvanceCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func callCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the captain, ship and clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			st, err := newClient(apiBase).State(ctx)
			if err != nil {
				return err
			}
			renderStatus(st)
			return nil
		},
	}
}

func newMarketCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Show commodity prices at the current port",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			quotes, err := newClient(apiBase).Market(ctx)
			if err != nil {
				return err
			}
			renderMarket(quotes)
			return nil
		},
	}
}

func newLedgerCmd(apiBase *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Show the finance log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			entries, err := newClient(apiBase).Ledger(ctx)
			if err != nil {
				return err
			}
			renderLedger(entries, limit)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "show only the last N entries (0 for all)")
	return cmd
}

func newRoutesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List reachable destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			routes, err := newClient(apiBase).TravelOptions(ctx)
			if err != nil {
				return err
			}
			renderRoutes(routes)
			return nil
		},
	}
}

func newShipyardCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shipyard",
		Short: "List hulls for sale at the current port",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			ships, err := newClient(apiBase).Shipyard(ctx)
			if err != nil {
				return err
			}
			renderShipyard(ships)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <commodity-id> <quantity>",
		Short: "Buy cargo at the current port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).Buy(ctx, args[0], qty)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <commodity-id> <quantity>",
		Short: "Sell cargo at the current port",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity must be a number: %w", err)
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).Sell(ctx, args[0], qty)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newTravelCmd(apiBase *string) *cobra.Command {
	var forceEvent bool
	cmd := &cobra.Command{
		Use:   "travel <location-id>",
		Short: "Set sail for another port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).Travel(ctx, args[0], forceEvent)
			if err != nil {
				return err
			}
			renderNotices(res.Notices)
			if res.PendingChoice != nil {
				renderChoice(res.PendingChoice, "resolve")
				return nil
			}
			printSuccess(fmt.Sprintf("Arrived at %s on day %d.", res.LocationID, res.Day))
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceEvent, "force-event", false, "roll a travel event regardless of chance")
	return cmd
}

func newResolveCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <option>",
		Short: "Answer a pending event prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("option must be a number: %w", err)
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).ResolveChoice(ctx, choice)
			if err != nil {
				return err
			}
			if res.Narrative != "" {
				printInfo(res.Narrative)
			}
			renderNotices(res.Notices)
			return nil
		},
	}
}

func newAgeCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "age [option]",
		Short: "Show or answer a pending life decision",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			client := newClient(apiBase)
			if len(args) == 0 {
				pending, err := client.PendingEvents(ctx)
				if err != nil {
					return err
				}
				if pending.PendingAge == nil {
					printInfo("No life decision is waiting.")
					return nil
				}
				renderChoice(pending.PendingAge, "age")
				return nil
			}
			choice, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("option must be a number: %w", err)
			}
			res, err := client.ResolveAgeChoice(ctx, choice)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newRefuelCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refuel",
		Short: "Buy one tick of fuel",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).Refuel(ctx)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newRepairCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Buy one tick of hull repair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).Repair(ctx)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newLoanCmd(apiBase *string) *cobra.Command {
	loan := &cobra.Command{
		Use:   "loan",
		Short: "Loan offers and repayment",
	}
	loan.AddCommand(
		&cobra.Command{
			Use:   "offers",
			Short: "List available loan packages",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				offers, err := newClient(apiBase).LoanOffers(ctx)
				if err != nil {
					return err
				}
				renderLoanOffers(offers)
				return nil
			},
		},
		&cobra.Command{
			Use:   "take <offer>",
			Short: "Take a loan package by index",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				offer, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("offer must be a number: %w", err)
				}
				ctx, cancel := callCtx(cmd)
				defer cancel()
				res, err := newClient(apiBase).TakeLoan(ctx, offer)
				if err != nil {
					return err
				}
				renderResult(res)
				return nil
			},
		},
		&cobra.Command{
			Use:   "pay",
			Short: "Pay off the outstanding debt in full",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				res, err := newClient(apiBase).PayDebt(ctx)
				if err != nil {
					return err
				}
				renderResult(res)
				return nil
			},
		},
	)
	return loan
}

func newIntelCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "intel",
		Short: "Buy a market tip from the local broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).BuyIntel(ctx)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}

func newShipCmd(apiBase *string) *cobra.Command {
	ship := &cobra.Command{
		Use:   "ship",
		Short: "Buy, sell and switch ships",
	}
	ship.AddCommand(
		&cobra.Command{
			Use:   "buy <ship-id>",
			Short: "Buy a hull from the local shipyard",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				res, err := newClient(apiBase).BuyShip(ctx, args[0])
				if err != nil {
					return err
				}
				renderResult(res)
				return nil
			},
		},
		&cobra.Command{
			Use:   "sell <ship-id>",
			Short: "Sell an owned, inactive, empty ship",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				res, err := newClient(apiBase).SellShip(ctx, args[0])
				if err != nil {
					return err
				}
				renderResult(res)
				return nil
			},
		},
		&cobra.Command{
			Use:   "use <ship-id>",
			Short: "Make an owned ship the active one",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				res, err := newClient(apiBase).ActivateShip(ctx, args[0])
				if err != nil {
					return err
				}
				renderResult(res)
				return nil
			},
		},
	)
	return ship
}

func newNewGameCmd(apiBase *string) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a fresh game",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callCtx(cmd)
			defer cancel()
			st, err := newClient(apiBase).NewGame(ctx, seed)
			if err != nil {
				return err
			}
			printSuccess("New game started.")
			renderStatus(st)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "fixed RNG seed (0 for server default)")
	return cmd
}

func newSavesCmd(apiBase *string) *cobra.Command {
	saves := &cobra.Command{
		Use:   "saves",
		Short: "List, write, load and delete saves",
	}
	saves.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored saves",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				out, err := newClient(apiBase).ListSaves(ctx)
				if err != nil {
					return err
				}
				renderSaves(out)
				return nil
			},
		},
		&cobra.Command{
			Use:   "write [name]",
			Short: "Save the current game",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				ctx, cancel := callCtx(cmd)
				defer cancel()
				id, err := newClient(apiBase).SaveGame(ctx, name)
				if err != nil {
					return err
				}
				printSuccess("Saved as " + id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "load <save-id>",
			Short: "Load a stored save",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				if err := newClient(apiBase).LoadGame(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Save loaded.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <save-id>",
			Short: "Delete a stored save",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := callCtx(cmd)
				defer cancel()
				if err := newClient(apiBase).DeleteSave(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Save deleted.")
				return nil
			},
		},
	)
	return saves
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:    "advance <days>",
		Short:  "Advance the clock without traveling",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("days must be a number: %w", err)
			}
			ctx, cancel := callCtx(cmd)
			defer cancel()
			res, err := newClient(apiBase).AdvanceDays(ctx, days)
			if err != nil {
				return err
			}
			renderResult(res)
			return nil
		},
	}
}
