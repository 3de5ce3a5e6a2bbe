package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/JoepDriesen/Rikker/bots"
	"github.com/JoepDriesen/Rikker/game"
	"github.com/JoepDriesen/Rikker/protocol"
)

func main() {
	seed := flag.Int64("seed", 0, "shuffle seed (0 picks one)")
	rounds := flag.Int("rounds", 1, "number of rounds to play")
	flag.Parse()

	var players [game.NumSeats]protocol.PlayerInfo
	for seat := range players {
		players[seat] = protocol.PlayerInfo{
			PlayerID: fmt.Sprintf("bot-%d", seat),
			Name:     fmt.Sprintf("Bot #%d", seat+1),
		}
	}

	g, err := game.New(game.Opts{ID: "cli", Players: players, Seed: *seed})
	if err != nil {
		log.Fatal(err)
	}

	table := bots.Table()
	for i := 0; i < *rounds; i++ {
		if err := g.StartRound(); err != nil {
			log.Fatal(err)
		}
		if err := bots.RunRound(g, table); err != nil {
			log.Fatal(err)
		}
		printRound(g)
		if err := g.FinishRound(); err != nil {
			log.Fatal(err)
		}
	}

	scores := g.Scores()
	fmt.Println("final scores:")
	for seat, score := range scores {
		fmt.Printf("  %s: %d\n", players[seat].Name, score)
	}
}

func printRound(g *game.Game) {
	round := g.CurrentRound()
	if round == nil {
		return
	}

	fmt.Printf("round %d, dealt by %s\n", g.RoundNumber(), seatName(round.Dealer))
	for _, bid := range round.Bids {
		fmt.Printf("  %s: %s\n", seatName(bid.Seat), bid.Value)
	}
	if round.HighestBid != nil {
		fmt.Printf("  contract: %s by %s", round.HighestBid.Value, seatName(round.HighestBid.Seat))
		if round.HighestBid.TrumpSuit != nil {
			fmt.Printf(", trump %s", *round.HighestBid.TrumpSuit)
		}
		if round.Mate != nil {
			fmt.Printf(", mate %s", seatName(*round.Mate))
		}
		fmt.Println()
	}
	for seat := game.Seat(0); seat < game.NumSeats; seat++ {
		fmt.Printf("  %s took %d tricks\n", seatName(seat), round.TricksWonBy(seat))
	}
	won, _ := round.AskingTeamWon()
	fmt.Printf("  asking team tricks: %d, won: %t\n", round.AskingTeamTricks(), won)
}

func seatName(seat game.Seat) string {
	return fmt.Sprintf("Bot #%d", int(seat)+1)
}
