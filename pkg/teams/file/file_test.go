package file_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/teams/file"
)

var _ = Describe("Loader", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "teams-file-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("loads a YAML teams file", func() {
		path := filepath.Join(tmpDir, "teams.yaml")
		data := `- id: 0
  name: Alabama
  mascot: Crimson Tide
  logo: https://a.espncdn.com/media/college/alabama-logo.png
  wins: 12
  losses: 1
- id: 1
  name: Georgia
  logo: https://a.espncdn.com/media/college/georgia-logo.png
`
		Expect(os.WriteFile(path, []byte(data), 0o600)).To(Succeed())

		dir, err := file.NewLoader(path).Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(dir.Len()).To(Equal(2))

		t, ok := dir.Get("0")
		Expect(ok).To(BeTrue())
		Expect(t.Mascot).To(Equal("Crimson Tide"))
		Expect(t.Wins).To(Equal(12))
	})

	It("loads a JSON teams file", func() {
		path := filepath.Join(tmpDir, "teams.json")
		data := `[{"id": 4, "name": "Tufts", "mascot": "Jumbos", "logo": "tufts.png"}]`
		Expect(os.WriteFile(path, []byte(data), 0o600)).To(Succeed())

		dir, err := file.NewLoader(path).Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(dir.Logo("4")).To(Equal("tufts.png"))
	})

	It("returns an error for a missing file", func() {
		_, err := file.NewLoader(filepath.Join(tmpDir, "missing.yaml")).Load(context.Background())
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	It("returns an error for malformed content", func() {
		path := filepath.Join(tmpDir, "bad.yaml")
		Expect(os.WriteFile(path, []byte("name: [unterminated"), 0o600)).To(Succeed())

		_, err := file.NewLoader(path).Load(context.Background())
		Expect(err).To(HaveOccurred())
	})
})
