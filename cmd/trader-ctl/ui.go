package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/vraelian/OrbitalTrading/internal/cli"
	"github.com/vraelian/OrbitalTrading/internal/game"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderNotices(notices []game.Notice) {
	for _, n := range notices {
		switch n.Kind {
		case game.NoticeGameOver:
			danger.Printf("!! %s", n.Title)
			fmt.Println()
			fmt.Printf("   %s\n", n.Message)
		case game.NoticeHull, game.NoticeEvent:
			warn.Printf(" * %s", n.Title)
			fmt.Println()
			fmt.Printf("   %s\n", n.Message)
		default:
			if n.Title != "" {
				accent.Printf(" - %s", n.Title)
				fmt.Println()
				fmt.Printf("   %s\n", n.Message)
			} else {
				fmt.Printf(" - %s\n", n.Message)
			}
		}
	}
}

func renderResult(res cli.MutationResult) {
	renderNotices(res.Notices)
	fmt.Printf("Day %d | %s credits | debt %s\n", res.Day, comma(int64(res.Credits)), comma(res.Debt))
	if res.GameOver {
		danger.Println("GAME OVER")
	}
}

func renderStatus(st *game.State) {
	accent.Printf("Day %d", st.Day)
	fmt.Println()
	title := st.Player.Title
	if title == "" {
		title = "Captain"
	}
	fmt.Printf("%s, age %d (level %d)\n", title, st.Player.Age, st.Player.UnlockLevel)
	fmt.Printf("Location: %s\n", st.Player.LocationID)
	fmt.Printf("Credits:  %s\n", comma(int64(st.Player.Credits)))
	if st.Player.Debt > 0 {
		danger.Printf("Debt:     %s (+%s/week)", comma(st.Player.Debt), comma(st.Player.WeeklyInterest))
		fmt.Println()
	}
	if ship, ok := st.Player.ShipStates[st.Player.ActiveShipID]; ok {
		fmt.Printf("Ship:     %s  hull %.0f  fuel %.0f\n", st.Player.ActiveShipID, ship.Health, ship.Fuel)
	}
	if st.Intel.Active {
		fmt.Printf("Intel:    %s at %s until day %d\n", st.Intel.CommodityID, st.Intel.LocationID, st.Intel.EndDay)
	}
	if st.PendingChoice != nil {
		renderChoice(st.PendingChoice, "resolve")
	}
	for range st.PendingAge {
		warn.Println("A life decision is waiting. Run `trader-ctl age` to answer it.")
		break
	}
	if st.GameOver {
		danger.Printf("GAME OVER (%s)", st.EndCause)
		fmt.Println()
	}
}

func renderChoice(pc *game.PendingChoice, answerCmd string) {
	warn.Printf("EVENT: %s", pc.Title)
	fmt.Println()
	fmt.Println(pc.Scenario)
	for i, opt := range pc.Options {
		fmt.Printf("  [%d] %s\n", i, opt)
	}
	fmt.Printf("Answer with `trader-ctl %s <n>`.\n", answerCmd)
}

func renderMarket(quotes []game.Quote) {
	fmt.Printf("%-22s %10s %10s %7s %6s\n", "COMMODITY", "BUY", "SELL", "STOCK", "HELD")
	for _, q := range quotes {
		name := truncate(q.Name, 22)
		if q.Locked {
			fmt.Printf("%-22s %10s %10s %7s %6s\n", name, "-", "-", "locked", "-")
			continue
		}
		fmt.Printf("%-22s %10s %10s %7d %6d\n", name, comma(q.BuyPrice), comma(q.SellPrice), q.Stock, q.Held)
	}
}

func renderLedger(entries []game.LedgerEntry, limit int) {
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	for _, e := range entries {
		amount := comma(e.Amount)
		if e.Amount > 0 {
			amount = "+" + amount
		}
		fmt.Printf("day %4d  %-12s %-40s %12s %14s\n", e.Day, e.Type, truncate(e.Description, 40), amount, comma(e.Balance))
	}
}

func renderRoutes(routes []game.RouteQuote) {
	fmt.Printf("%-22s %6s %6s\n", "DESTINATION", "DAYS", "FUEL")
	for _, r := range routes {
		fmt.Printf("%-22s %6d %6d\n", truncate(r.Name, 22), r.Days, r.FuelCost)
	}
}

func renderShipyard(ships []game.ShipListing) {
	if len(ships) == 0 {
		printInfo("Nothing for sale here.")
		return
	}
	fmt.Printf("%-14s %-22s %5s %12s\n", "ID", "NAME", "CLASS", "PRICE")
	for _, s := range ships {
		fmt.Printf("%-14s %-22s %5s %12s\n", s.ShipID, truncate(s.Name, 22), s.Class, comma(s.Price))
	}
}

func renderLoanOffers(offers []game.LoanOffer) {
	for i, o := range offers {
		fmt.Printf("[%d] %s credits, %s fee, %s interest per week\n", i, comma(o.Principal), comma(o.Fee), comma(o.WeeklyInterest))
	}
}

func renderSaves(saves []cli.SaveInfo) {
	if len(saves) == 0 {
		printInfo("No saves yet.")
		return
	}
	for _, s := range saves {
		fmt.Printf("%s  %-20s day %4d  %12s  %s\n", s.ID, truncate(s.Name, 20), s.Day, comma(int64(s.Credits)), s.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func comma(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
