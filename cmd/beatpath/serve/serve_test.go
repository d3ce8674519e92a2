package servecmder

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/config"
)

var _ = Describe("NewServeCmd", func() {
	It("registers every server flag", func() {
		cmd := NewServeCmd()
		for _, key := range serveFlags {
			def := config.Registry[key]
			Expect(cmd.Flags().Lookup(def.Name)).NotTo(BeNil(), def.Name)
		}
		Expect(cmd.Flags().Lookup("json-logs")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("log-file")).NotTo(BeNil())
	})

	It("rejects positional arguments", func() {
		cmd := NewServeCmd()
		Expect(cmd.Args(cmd, []string{"extra"})).To(HaveOccurred())
	})

	It("gives flags precedence over config defaults", func() {
		c := &ServeCommander{}
		cmd := c.command()
		cmd.Flags().String("config-dir", GinkgoT().TempDir(), "")
		Expect(cmd.Flags().Parse([]string{
			"--listen", ":6000",
			"--llm-provider", "none",
			"--events-workers", "7",
		})).To(Succeed())
		Expect(cmd.PreRunE(cmd, nil)).To(Succeed())

		v := c.v
		Expect(v.GetString("server.listen")).To(Equal(":6000"))
		Expect(v.GetString("llm.provider")).To(Equal("none"))
		Expect(v.GetUint("events.workers")).To(Equal(uint(7)))
		Expect(v.GetString("graph.source")).To(Equal("gexf"))
	})
})

var _ = Describe("ServeCommander.newLogger", func() {
	It("tees JSON logs to the log file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "serve.log")
		c := &ServeCommander{logFile: path}
		log, closeLog, err := c.newLogger()
		Expect(err).NotTo(HaveOccurred())
		log.Info("victory graph loaded", "teams", 3)
		closeLog()

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"msg":"victory graph loaded"`))
		Expect(string(data)).To(ContainSubstring(`"teams":3`))
		Expect(string(data)).To(ContainSubstring(`"service":"beatpath"`))
		Expect(string(data)).To(ContainSubstring(`"component":"serve"`))
	})

	It("fails for an unwritable log file", func() {
		c := &ServeCommander{logFile: filepath.Join(GinkgoT().TempDir(), "missing", "serve.log")}
		_, _, err := c.newLogger()
		Expect(err).To(MatchError(ContainSubstring("opening log file")))
	})
})
