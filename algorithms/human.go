package algorithms

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/signalnine/wonders/engine"
)

// Human prompts a person on a text terminal for every decision.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHuman reads answers from in and writes prompts to out
func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{in: bufio.NewScanner(in), out: out}
}

// NextAction implements engine.Algorithm. If input runs out the first card
// in hand is discarded so the game can still finish.
func (h *Human) NextAction(player *engine.Player, visible *engine.VisibleGame) engine.Action {
	hand := player.Hand()
	for {
		h.printBoards(visible)
		h.printHand(player, visible)

		choice, ok := h.askNumber(fmt.Sprintf("Choose a card (1-%d): ", len(hand)), len(hand))
		if !ok {
			return engine.Discard(hand[0])
		}
		card := hand[choice-1]

		verb, ok := h.ask("(b)uild or (d)iscard? ")
		if !ok {
			return engine.Discard(card)
		}
		switch strings.ToLower(verb) {
		case "d", "discard":
			return engine.Discard(card)
		case "b", "build":
		default:
			fmt.Fprintln(h.out, "Please answer b or d.")
			continue
		}

		options := player.OptionsForCard(card, visible)
		if !options.Possible() {
			fmt.Fprintf(h.out, "You can't afford %s.\n", card.Name())
			continue
		}
		if len(options.Actions) == 1 {
			return options.Actions[0]
		}

		fmt.Fprintln(h.out, "How do you want to pay?")
		PrintBorrowingOptions(h.out, options.Actions, visible)
		pick, ok := h.askNumber(fmt.Sprintf("Choose an option (1-%d): ", len(options.Actions)), len(options.Actions))
		if !ok {
			return engine.Discard(card)
		}
		action := options.Actions[pick-1]
		if player.CanPlay(action, visible) {
			return action
		}
	}
}

func (h *Human) ask(prompt string) (string, bool) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.in.Text()), true
}

// askNumber keeps asking until it reads a number in 1..max.
func (h *Human) askNumber(prompt string, max int) (int, bool) {
	for {
		answer, ok := h.ask(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= max {
			return n, true
		}
		fmt.Fprintf(h.out, "%q is not a number between 1 and %d.\n", answer, max)
	}
}

// printBoards shows every seat with the deciding player in the middle row.
func (h *Human) printBoards(visible *engine.VisibleGame) {
	n := len(visible.Players)
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Age %s, turn %d\n", visible.Age(), visible.Turn+1)
	fmt.Fprintln(tw, "PLAYER\tWONDER\tCOINS\tBUILT")
	start := visible.PlayerIndex - n/2
	for k := 0; k < n; k++ {
		i := ((start+k)%n + n) % n
		p := visible.Players[i]
		label := fmt.Sprintf("%d", i+1)
		if i == visible.PlayerIndex {
			label += " (you)"
		}
		names := make([]string, len(p.Built))
		for j, c := range p.Built {
			names[j] = c.Name()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", label, p.Wonder.Name(), p.Coins, strings.Join(names, ", "))
	}
	tw.Flush()
}

// printHand marks cards payable with own resources (*) or by borrowing (#).
func (h *Human) printHand(player *engine.Player, visible *engine.VisibleGame) {
	tw := tabwriter.NewWriter(h.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\t\tCARD\tCOST\tPOWER")
	for i, card := range player.Hand() {
		mark := " "
		options := player.OptionsForCard(card, visible)
		switch {
		case options.OwnCardsOnly():
			mark = "*"
		case options.Possible():
			mark = "#"
		}
		fmt.Fprintf(tw, "%s\t%d)\t%s\t%s\t%s\n", mark, i+1, card.Name(), card.Cost(), card.Power())
	}
	tw.Flush()
}

// PrintBorrowingOptions lists payment options as
// "1) Borrow Lumber Yard from player 3 and Clay Pool from player 1".
func PrintBorrowingOptions(w io.Writer, actions []engine.Action, visible *engine.VisibleGame) {
	for i, a := range actions {
		fmt.Fprintf(w, "  %d) %s\n", i+1, DescribeBorrowing(a.Borrowing, visible))
	}
}

// DescribeBorrowing names each borrowed structure and its owner, counting
// seats from 1.
func DescribeBorrowing(b engine.Borrowing, visible *engine.VisibleGame) string {
	if !b.HasBorrowing() {
		return "Use your own resources"
	}
	var parts []string
	for _, x := range b.Left {
		parts = append(parts, fmt.Sprintf("%s from player %d", x.Card.Name(), visible.LeftNeighbourIndex()+1))
	}
	for _, x := range b.Right {
		parts = append(parts, fmt.Sprintf("%s from player %d", x.Card.Name(), visible.RightNeighbourIndex()+1))
	}
	return "Borrow " + strings.Join(parts, " and ")
}
