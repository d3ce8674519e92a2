package teams_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/papercomputeco/beatpath/pkg/teams"
)

var _ = Describe("Directory", func() {
	var dir *teams.Directory

	BeforeEach(func() {
		dir = teams.NewDirectory([]teams.Team{
			{ID: "1", Name: "Georgia", Logo: "georgia.png"},
			{ID: "0", Name: "Alabama", Logo: "alabama.png"},
		})
	})

	It("looks up teams by id", func() {
		t, ok := dir.Get("1")
		Expect(ok).To(BeTrue())
		Expect(t.Name).To(Equal("Georgia"))
		Expect(dir.Logo("0")).To(Equal("alabama.png"))
	})

	It("returns an empty logo for unknown ids", func() {
		Expect(dir.Logo("99")).To(BeEmpty())
	})

	It("lists teams by name", func() {
		all := dir.All()
		Expect(all).To(HaveLen(2))
		Expect(all[0].Name).To(Equal("Alabama"))
		Expect(dir.Len()).To(Equal(2))
	})

	It("tolerates a nil directory", func() {
		var empty *teams.Directory
		Expect(empty.Len()).To(Equal(0))
		Expect(empty.Logo("0")).To(BeEmpty())
	})
})

var _ = Describe("ID", func() {
	It("decodes numeric and string ids", func() {
		var list []teams.Team
		err := yaml.Unmarshal([]byte("- id: 7\n  name: Auburn\n- id: \"x9\"\n  name: Tufts\n"), &list)
		Expect(err).NotTo(HaveOccurred())
		Expect(list[0].ID).To(Equal(teams.ID("7")))
		Expect(list[1].ID).To(Equal(teams.ID("x9")))
	})
})

var _ = Describe("Static", func() {
	It("loads its fixed teams", func() {
		dir, err := teams.Static{Teams: []teams.Team{{ID: "0", Name: "Alabama"}}}.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(dir.Len()).To(Equal(1))
	})
})
