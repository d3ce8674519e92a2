package teamscmder

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/chain"
)

var _ = Describe("teams command", func() {
	var server *httptest.Server

	BeforeEach(func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal(chain.TeamsEndpoint))
			_ = json.NewEncoder(w).Encode(chain.TeamsResponse{
				Count: 3,
				Teams: []string{"Alabama", "Ohio State", "Oklahoma State"},
			})
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	execute := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := NewTeamsCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"--api-target", server.URL}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	It("lists every team with a count", func() {
		out, err := execute()
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("3 of 3"))
		Expect(out).To(ContainSubstring("Ohio State"))
	})

	It("filters names case-insensitively", func() {
		out, err := execute("--quiet", "--filter", "STATE")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("Ohio State\nOklahoma State\n"))
	})

	It("reports when nothing matches", func() {
		out, err := execute("--filter", "tufts")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("No teams found."))
	})

	It("rejects a bad timeout", func() {
		_, err := execute("--timeout", "soon")
		Expect(err).To(MatchError(ContainSubstring("invalid timeout")))
	})
})

var _ = Describe("filterNames", func() {
	It("returns everything for a blank filter", func() {
		Expect(filterNames([]string{"A", "B"}, "  ")).To(Equal([]string{"A", "B"}))
	})
})
