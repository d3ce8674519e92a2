package graph_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/explain"
	"github.com/papercomputeco/beatpath/pkg/graph"
	"github.com/papercomputeco/beatpath/pkg/graph/gexf"
	"github.com/papercomputeco/beatpath/pkg/logger"
	"github.com/papercomputeco/beatpath/pkg/teams"
)

const bulldogText = "The Georgia Bulldogs would defeat Tufts because the sheer " +
	"ferocity and size of the mascot would overwhelm the Jumbo."

var _ = Describe("Service", func() {
	var (
		ctx     context.Context
		config  graph.ServiceConfig
		service *graph.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		config = graph.ServiceConfig{
			Source: graph.SourceFunc(func(context.Context) (*graph.Graph, error) {
				return victories(), nil
			}),
			Teams:  teams.Static{Teams: roster()},
			Logger: logger.Nop(),
		}
	})

	JustBeforeEach(func() {
		var err error
		service, err = graph.NewService(ctx, config)
		Expect(err).NotTo(HaveOccurred())
	})

	It("loads the graph and teams", func() {
		Expect(service.NumTeams()).To(Equal(5))
		Expect(service.TeamNames()).To(ContainElements("Alabama", "Georgia"))
	})

	It("rejects the same team", func() {
		res := service.FindPath(ctx, "Alabama", "alabama")
		Expect(res.Outcome).To(Equal(graph.OutcomeSameTeam))
		Expect(res.Error).To(Equal("Choose two different teams."))
		Expect(res.Path).To(Equal([]string{"Alabama"}))
		Expect(res.Edges).To(BeEmpty())
	})

	It("rejects unknown teams", func() {
		res := service.FindPath(ctx, "Unknown Team", "Alabama")
		Expect(res.Outcome).To(Equal(graph.OutcomeUnknownTeam))
		Expect(res.Error).To(Equal("Unknown team name provided."))
		Expect(res.Path).To(BeEmpty())
		Expect(res.Edges).To(BeEmpty())
	})

	It("treats blank names as unknown", func() {
		res := service.FindPath(ctx, "", "")
		Expect(res.Error).To(Equal(graph.MsgUnknownTeam))
	})

	It("finds a current season path with logos", func() {
		res := service.FindPath(ctx, "Alabama", "Auburn")
		Expect(res.Failed()).To(BeFalse())
		Expect(res.Path).To(Equal([]string{"Alabama", "Georgia", "Auburn"}))
		Expect(res.Edges).To(HaveLen(2))
		Expect(res.Edges[0].From).To(Equal("Alabama"))
		Expect(res.Edges[0].To).To(Equal("Georgia"))
		Expect(res.Edges[1].From).To(Equal("Georgia"))
		Expect(res.Edges[1].To).To(Equal("Auburn"))
		for _, e := range res.Edges {
			Expect(e.FromLogo).NotTo(BeEmpty())
			Expect(e.ToLogo).NotTo(BeEmpty())
		}
	})

	It("matches names case-insensitively", func() {
		res := service.FindPath(ctx, "alabama", "AUBURN")
		Expect(res.Failed()).To(BeFalse())
		Expect(res.Path).To(Equal([]string{"Alabama", "Georgia", "Auburn"}))
	})

	It("includes prior season games", func() {
		res := service.FindPath(ctx, "Georgia", "Alabama")
		Expect(res.Failed()).To(BeFalse())
		Expect(res.Path).To(Equal([]string{"Georgia", "Auburn", "Alabama"}))
		Expect(res.Edges[1].Label).To(ContainSubstring("(2024)"))
		Expect(res.Edges[1].PastSeason()).To(BeTrue())
	})

	Context("without stored labels", func() {
		BeforeEach(func() {
			config.Source = graph.SourceFunc(func(context.Context) (*graph.Graph, error) {
				b := graph.NewBuilder()
				b.AddNode("0", "Alabama")
				b.AddNode("1", "Georgia")
				must(b.AddEdge("0", "1", 1, ""))
				return b.Build(), nil
			})
		})

		It("defaults the label", func() {
			res := service.FindPath(ctx, "Alabama", "Georgia")
			Expect(res.Edges[0].Label).To(Equal("Alabama def. Georgia"))
		})
	})

	Context("when no path exists", func() {
		It("reports a missing explainer when fallback is enabled", func() {
			config.Fallback = true
			service, _ = graph.NewService(ctx, config)

			res := service.FindPath(ctx, "Alabama", "Tufts")
			Expect(res.Outcome).To(Equal(graph.OutcomeNoPath))
			Expect(res.Error).To(Equal("LLM service not configured."))
			Expect(res.LLMText).To(BeEmpty())
			Expect(res.Edges).To(BeEmpty())
		})

		It("reports no path when fallback is disabled", func() {
			config.Explainer = explain.Func(func(context.Context, string, string) (string, error) {
				Fail("explainer should not be called")
				return "", nil
			})
			service, _ = graph.NewService(ctx, config)

			res := service.FindPath(ctx, "Alabama", "Tufts")
			Expect(res.Error).To(Equal("No transitive path found."))
		})

		It("falls back to a generated explanation", func() {
			var victor, loser string
			config.Fallback = true
			config.Explainer = explain.Func(func(_ context.Context, v, l string) (string, error) {
				victor, loser = v, l
				return bulldogText, nil
			})
			service, _ = graph.NewService(ctx, config)

			res := service.FindPath(ctx, "georgia", "tufts")
			Expect(res.Outcome).To(Equal(graph.OutcomeFallback))
			Expect(res.Failed()).To(BeFalse())
			Expect(victor).To(Equal("Georgia"))
			Expect(loser).To(Equal("Tufts"))
			Expect(res.LLMText).To(ContainSubstring("sheer ferocity"))
			Expect(res.Path).To(BeEmpty())
			Expect(res.Edges).To(HaveLen(1))
			Expect(res.Edges[0].From).To(Equal("Georgia"))
			Expect(res.Edges[0].To).To(Equal("Tufts"))
			Expect(res.Edges[0].FromLogo).To(ContainSubstring("georgia"))
			Expect(res.Edges[0].ToLogo).To(ContainSubstring("tufts"))
		})

		It("reports explainer failures", func() {
			config.Fallback = true
			config.Explainer = explain.Func(func(context.Context, string, string) (string, error) {
				return "", errors.New("API Error")
			})
			service, _ = graph.NewService(ctx, config)

			res := service.FindPath(ctx, "Alabama", "Tufts")
			Expect(res.Outcome).To(Equal(graph.OutcomeExplainError))
			Expect(res.Error).To(Equal("Error generating LLM response: API Error"))
			Expect(res.LLMText).To(BeEmpty())
		})
	})

	Describe("Response", func() {
		It("never encodes nil slices", func() {
			resp := service.FindPath(ctx, "Unknown", "Alabama").Response()
			Expect(resp.Path).NotTo(BeNil())
			Expect(resp.Edges).NotTo(BeNil())
			Expect(resp.Error).To(Equal(graph.MsgUnknownTeam))
		})
	})

	Describe("Reload", func() {
		It("swaps in the new graph", func() {
			calls := 0
			config.Source = graph.SourceFunc(func(context.Context) (*graph.Graph, error) {
				calls++
				if calls == 1 {
					return victories(), nil
				}
				b := graph.NewBuilder()
				b.AddNode("4", "Tufts")
				b.AddNode("0", "Alabama")
				must(b.AddEdge("4", "0", 1, "Tufts def. Alabama"))
				return b.Build(), nil
			})
			service, _ = graph.NewService(ctx, config)
			Expect(service.NumTeams()).To(Equal(5))

			Expect(service.Reload(ctx)).To(Succeed())
			Expect(service.NumTeams()).To(Equal(2))
			res := service.FindPath(ctx, "Tufts", "Alabama")
			Expect(res.Path).To(Equal([]string{"Tufts", "Alabama"}))
		})

		It("keeps the previous graph on error", func() {
			calls := 0
			config.Source = graph.SourceFunc(func(context.Context) (*graph.Graph, error) {
				calls++
				if calls == 1 {
					return victories(), nil
				}
				return nil, errors.New("boom")
			})
			service, _ = graph.NewService(ctx, config)

			Expect(service.Reload(ctx)).To(MatchError(ContainSubstring("boom")))
			Expect(service.NumTeams()).To(Equal(5))
		})
	})
})

var _ = Describe("NewService", func() {
	It("requires a source and logger", func() {
		_, err := graph.NewService(context.Background(), graph.ServiceConfig{Logger: logger.Nop()})
		Expect(err).To(HaveOccurred())

		_, err = graph.NewService(context.Background(), graph.ServiceConfig{
			Source: gexf.NewSource("testdata/none.gexf"),
		})
		Expect(err).To(HaveOccurred())
	})

	It("fails when the graph file is missing", func() {
		missing := filepath.Join(GinkgoT().TempDir(), "nonexistent.gexf")
		_, err := graph.NewService(context.Background(), graph.ServiceConfig{
			Source: gexf.NewSource(missing),
			Logger: logger.Nop(),
		})
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
	})

	It("loads the GEXF fixture", func() {
		s, err := graph.NewService(context.Background(), graph.ServiceConfig{
			Source: gexf.NewSource(filepath.Join("gexf", "testdata", "victories.gexf")),
			Logger: logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
		res := s.FindPath(context.Background(), "Alabama", "Vanderbilt")
		Expect(res.Path).To(Equal([]string{"Alabama", "Georgia", "Auburn", "Vanderbilt"}))
		Expect(res.Edges[2].Label).To(Equal("Auburn def. Vanderbilt"))
		Expect(res.Edges[0].FromLogo).To(BeEmpty())
	})
})
