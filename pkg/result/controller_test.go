package result_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/chain"
	bplogger "github.com/papercomputeco/beatpath/pkg/logger"
	"github.com/papercomputeco/beatpath/pkg/result"
)

var _ = Describe("Controller", func() {
	var (
		from, to  *field
		status    *statusLine
		results   *panel
		desc      *text
		transport *fakeTransport
		ctrl      *result.Controller
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		from = &field{}
		to = &field{}
		status = &statusLine{}
		results = &panel{}
		desc = &text{}
		transport = &fakeTransport{}

		var err error
		ctrl, err = result.NewController(result.Elements{
			From:        from,
			To:          to,
			Status:      status,
			Results:     results,
			Description: desc,
		}, transport, bplogger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	It("requires both inputs", func() {
		_, err := result.NewController(result.Elements{From: from}, transport, bplogger.Nop())
		Expect(err).To(MatchError(result.ErrMissingElement))
	})

	It("starts idle", func() {
		Expect(ctrl.State()).To(Equal(result.StateIdle))
	})

	DescribeTable("rejects blank input without a request",
		func(a, b string) {
			from.value, to.value = a, b
			Expect(ctrl.Submit(ctx)).To(BeFalse())
			Expect(transport.calls()).To(Equal(0))
			Expect(status.last).To(Equal(result.Status{Message: "Pick two teams", Tone: result.ToneError}))
			Expect(ctrl.State()).To(Equal(result.StateIdle))
		},
		Entry("both empty", "", ""),
		Entry("from blank", "   ", "Beta"),
		Entry("to blank", "Alpha", "\t\n"),
		Entry("both whitespace", " ", "  "),
	)

	It("renders the example chain", func() {
		from.value, to.value = "Alpha", "Beta"
		transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{
			Path: []string{"Alpha", "Gamma", "Beta"},
			Edges: []chain.Edge{
				{From: "Alpha", To: "Gamma", Label: "Alpha beat Gamma"},
				{From: "Gamma", To: "Beta", Label: "Gamma beat Beta (2021)"},
			},
		}}

		Expect(ctrl.Submit(ctx)).To(BeTrue())
		Expect(transport.requests).To(Equal([]chain.Request{{From: "Alpha", To: "Beta"}}))
		Expect(ctrl.State()).To(Equal(result.StateShowingPath))
		Expect(results.visible).To(BeTrue())
		Expect(results.shown.Rows).To(HaveLen(2))
		Expect(results.shown.Rows[0].Final).To(BeFalse())
		Expect(results.shown.Rows[0].PastSeason).To(BeFalse())
		Expect(results.shown.Rows[1].Final).To(BeTrue())
		Expect(results.shown.Rows[1].PastSeason).To(BeTrue())
		Expect(status.last).To(Equal(result.Status{Message: "Found a chain with 2 step(s)", Tone: result.ToneSuccess}))
		Expect(desc.value).To(Equal("Shortest chain of victories from Alpha to Beta"))
	})

	It("trims inputs before sending", func() {
		from.value, to.value = "  Alpha ", " Beta  "
		transport.reply = &result.Reply{StatusCode: 200}

		ctrl.Submit(ctx)
		Expect(transport.requests[0]).To(Equal(chain.Request{From: "Alpha", To: "Beta"}))
	})

	It("renders exactly one explanation row for llm_text", func() {
		from.value, to.value = "Georgia", "Tufts"
		transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{
			LLMText: "A bulldog would never back down.",
			Edges: []chain.Edge{
				{From: "Georgia", To: "Tufts", FromLogo: "g.png", ToLogo: "t.png"},
				{From: "Tufts", To: "Other"},
			},
		}}

		ctrl.Submit(ctx)
		Expect(ctrl.State()).To(Equal(result.StateShowingFallback))
		Expect(results.shown.Rows).To(HaveLen(1))
		Expect(results.shown.Rows[0].FromLogo).To(Equal("g.png"))
		Expect(results.shown.Rows[0].ToLogo).To(Equal("t.png"))
		Expect(status.last.Tone).To(Equal(result.ToneFallback))
		Expect(desc.value).To(Equal("Why Georgia would beat Tufts"))
	})

	It("shows the server error and keeps results hidden", func() {
		from.value, to.value = "Alpha", "Beta"
		transport.reply = &result.Reply{StatusCode: 400, Body: chain.Response{Error: "no path"}}

		ctrl.Submit(ctx)
		Expect(ctrl.State()).To(Equal(result.StateShowingError))
		Expect(status.last).To(Equal(result.Status{Message: "no path", Tone: result.ToneError}))
		Expect(results.visible).To(BeFalse())
	})

	It("shows a generic message on transport failure", func() {
		from.value, to.value = "Alpha", "Beta"
		transport.err = errors.New("connection refused")

		ctrl.Submit(ctx)
		Expect(ctrl.State()).To(Equal(result.StateShowingError))
		Expect(status.last).To(Equal(result.Status{Message: "Something went wrong. Try again.", Tone: result.ToneError}))
		Expect(results.visible).To(BeFalse())
	})

	It("hides the panel for an empty path without an error", func() {
		from.value, to.value = "Alpha", "Beta"
		transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{}}

		ctrl.Submit(ctx)
		Expect(results.visible).To(BeFalse())
		Expect(status.last.Tone).To(Equal(result.ToneSuccess))
	})

	It("hides stale results when a new search begins", func() {
		from.value, to.value = "Alpha", "Beta"
		transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{
			Path: []string{"Alpha", "Beta"}, Edges: []chain.Edge{{From: "Alpha", To: "Beta"}},
		}}
		ctrl.Submit(ctx)
		Expect(results.visible).To(BeTrue())

		_, ok := ctrl.Begin(ctx)
		Expect(ok).To(BeTrue())
		Expect(results.visible).To(BeFalse())
		Expect(ctrl.State()).To(Equal(result.StateSearching))
		Expect(status.last).To(Equal(result.Status{Message: "Searching for a path…", Tone: result.ToneInfo}))
	})

	Context("with overlapping submissions", func() {
		It("applies only the latest response", func() {
			from.value, to.value = "Alpha", "Beta"
			first, ok := ctrl.Begin(ctx)
			Expect(ok).To(BeTrue())

			to.value = "Gamma"
			second, ok := ctrl.Begin(ctx)
			Expect(ok).To(BeTrue())
			Expect(second.Generation).To(BeNumerically(">", first.Generation))

			transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{
				Path: []string{"Alpha", "Gamma"}, Edges: []chain.Edge{{From: "Alpha", To: "Gamma"}},
			}}
			latest := ctrl.Fetch(second)

			stale := result.Outcome{
				Generation: first.Generation,
				Request:    first.Request,
				Reply:      &result.Reply{StatusCode: 400, Body: chain.Response{Error: "stale"}},
			}

			Expect(ctrl.Apply(latest)).To(BeTrue())
			Expect(ctrl.Apply(stale)).To(BeFalse())
			Expect(ctrl.State()).To(Equal(result.StateShowingPath))
			Expect(status.last.Message).To(Equal("Found a chain with 1 step(s)"))
		})

		It("cancels the superseded request", func() {
			from.value, to.value = "Alpha", "Beta"
			first, _ := ctrl.Begin(ctx)
			_, _ = ctrl.Begin(ctx)

			outcome := ctrl.Fetch(first)
			Expect(outcome.Err).To(MatchError(context.Canceled))
		})
	})

	Describe("Swap", func() {
		It("exchanges values without side effects", func() {
			from.value, to.value = "Alpha", " Beta "
			ctrl.Swap()

			Expect(from.value).To(Equal(" Beta "))
			Expect(to.value).To(Equal("Alpha"))
			Expect(transport.calls()).To(Equal(0))
			Expect(status.calls).To(Equal(0))
			Expect(ctrl.State()).To(Equal(result.StateIdle))
		})
	})

	It("degrades gracefully without optional elements", func() {
		bare, err := result.NewController(result.Elements{From: from, To: to}, transport, bplogger.Nop())
		Expect(err).NotTo(HaveOccurred())

		from.value, to.value = "Alpha", "Beta"
		transport.reply = &result.Reply{StatusCode: 200, Body: chain.Response{
			Path: []string{"Alpha", "Beta"}, Edges: []chain.Edge{{From: "Alpha", To: "Beta"}},
		}}

		Expect(func() { bare.Submit(ctx) }).NotTo(Panic())
		Expect(bare.State()).To(Equal(result.StateShowingPath))
		Expect(bare.Status().Tone).To(Equal(result.ToneSuccess))
	})
})
