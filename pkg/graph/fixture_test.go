package graph_test

import (
	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/teams"
)

// victories builds a five team graph: a current season chain
// Alabama -> Georgia -> Auburn -> Vanderbilt, one prior season upset of
// Alabama by Auburn, and an isolated Tufts.
func victories() *graph.Graph {
	b := graph.NewBuilder()
	b.AddNode("0", "Alabama")
	b.AddNode("1", "Georgia")
	b.AddNode("2", "Auburn")
	b.AddNode("3", "Vanderbilt")
	b.AddNode("4", "Tufts")

	must(b.AddEdge("0", "1", 1, "Alabama def. Georgia"))
	must(b.AddEdge("1", "2", 1, "Georgia def. Auburn"))
	must(b.AddEdge("2", "3", 1, "Auburn def. Vanderbilt"))
	must(b.AddEdge("2", "0", 2025, "Auburn def. Alabama (2024)"))
	return b.Build()
}

func roster() []teams.Team {
	return []teams.Team{
		{ID: "0", Name: "Alabama", Mascot: "Crimson Tide", Logo: "https://a.espncdn.com/media/college/alabama-logo.png", Wins: 12, Losses: 1},
		{ID: "1", Name: "Georgia", Mascot: "Bulldogs", Logo: "https://a.espncdn.com/media/college/georgia-logo.png", Wins: 11, Losses: 2},
		{ID: "2", Name: "Auburn", Mascot: "Tigers", Logo: "https://a.espncdn.com/media/college/auburn-logo.png", Wins: 9, Losses: 4},
		{ID: "3", Name: "Vanderbilt", Mascot: "Commodores", Logo: "https://a.espncdn.com/media/college/vanderbilt-logo.png", Wins: 6, Losses: 7},
		{ID: "4", Name: "Tufts", Mascot: "Jumbos", Logo: "https://a.espncdn.com/media/college/tufts-logo.png", Wins: 8, Losses: 5},
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
