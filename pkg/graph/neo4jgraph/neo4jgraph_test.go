package neo4jgraph_test

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/graph/neo4jgraph"
)

type fakeSession struct {
	result any
	err    error
	closed bool
}

func (s *fakeSession) ExecuteRead(_ context.Context, _ neo4j.ManagedTransactionWork, _ ...func(*neo4j.TransactionConfig)) (any, error) {
	return s.result, s.err
}

func (s *fakeSession) Close(context.Context) error {
	s.closed = true
	return nil
}

type fakeDriver struct {
	session *fakeSession
	config  neo4j.SessionConfig
	closed  bool
}

func (d *fakeDriver) NewSession(_ context.Context, config neo4j.SessionConfig) neo4jgraph.SessionRunner {
	d.config = config
	return d.session
}

func (d *fakeDriver) Close(context.Context) error {
	d.closed = true
	return nil
}

var _ = Describe("Build", func() {
	It("assembles teams and games", func() {
		g, err := neo4jgraph.Build(
			[]neo4jgraph.TeamRow{{ID: "0", Name: "Alabama"}, {ID: "1", Name: "Georgia"}, {ID: "2", Name: "Auburn"}},
			[]neo4jgraph.GameRow{
				{Source: "0", Target: "1", Weight: 1, Label: "Alabama def. Georgia"},
				{Source: "1", Target: "2", Weight: 1},
			},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.TeamNames()).To(Equal([]string{"Alabama", "Auburn", "Georgia"}))

		nodes, _, ok := g.ShortestPath("0", "2")
		Expect(ok).To(BeTrue())
		Expect(nodes).To(Equal([]string{"0", "1", "2"}))
	})

	It("rejects negative weights", func() {
		_, err := neo4jgraph.Build(nil, []neo4jgraph.GameRow{{Source: "a", Target: "b", Weight: -1}})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Source", func() {
	var (
		ctx     context.Context
		session *fakeSession
		drv     *fakeDriver
		source  *neo4jgraph.Source
	)

	BeforeEach(func() {
		ctx = context.Background()
		session = &fakeSession{}
		drv = &fakeDriver{session: session}
		source = neo4jgraph.NewSourceWithDriver(drv, "football")
	})

	It("opens a read session on the configured database", func() {
		g, _ := neo4jgraph.Build([]neo4jgraph.TeamRow{{ID: "0", Name: "Alabama"}}, nil)
		session.result = g

		loaded, err := source.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Len()).To(Equal(1))
		Expect(drv.config.DatabaseName).To(Equal("football"))
		Expect(drv.config.AccessMode).To(Equal(neo4j.AccessModeRead))
		Expect(session.closed).To(BeTrue())
	})

	It("wraps transaction errors", func() {
		session.err = errors.New("connection refused")
		_, err := source.Load(ctx)
		Expect(err).To(MatchError(ContainSubstring("connection refused")))
	})

	It("rejects unexpected results", func() {
		session.result = "not a graph"
		_, err := source.Load(ctx)
		Expect(err).To(MatchError(ContainSubstring("unexpected result")))
	})

	It("closes the driver", func() {
		Expect(source.Close(ctx)).To(Succeed())
		Expect(drv.closed).To(BeTrue())
	})
})

var _ = Describe("NewSource", func() {
	It("rejects unsupported URI schemes", func() {
		_, err := neo4jgraph.NewSource(neo4jgraph.Config{URI: "ftp://localhost:7687"})
		Expect(err).To(HaveOccurred())
	})
})
