package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/beatpath/pkg/logger"
	"github.com/papercomputeco/beatpath/pkg/watch"
)

var _ = Describe("Watcher", func() {
	var (
		dir     string
		file    string
		reloads atomic.Int32
		reload  watch.ReloadFunc
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		file = filepath.Join(dir, "graph.gexf")
		Expect(os.WriteFile(file, []byte("<gexf/>"), 0o600)).To(Succeed())

		reloads.Store(0)
		reload = func(context.Context) error {
			reloads.Add(1)
			return nil
		}
	})

	It("validates its configuration", func() {
		_, err := watch.New(watch.Config{Files: []string{file}, Logger: logger.Nop()})
		Expect(err).To(HaveOccurred())

		_, err = watch.New(watch.Config{Files: []string{""}, Reload: reload, Logger: logger.Nop()})
		Expect(err).To(MatchError(ContainSubstring("no files")))
	})

	It("reloads once per burst of writes to a watched file", func() {
		w, err := watch.New(watch.Config{
			Files:    []string{file},
			Reload:   reload,
			Debounce: 50 * time.Millisecond,
			Logger:   logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- w.Run(ctx) }()
		DeferCleanup(func() {
			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		for range 3 {
			Expect(os.WriteFile(file, []byte("<gexf></gexf>"), 0o600)).To(Succeed())
		}

		Eventually(reloads.Load).Should(BeEquivalentTo(1))
		Consistently(reloads.Load, 200*time.Millisecond).Should(BeEquivalentTo(1))
	})

	It("ignores other files in the directory", func() {
		w, err := watch.New(watch.Config{
			Files:    []string{file},
			Reload:   reload,
			Debounce: 10 * time.Millisecond,
			Logger:   logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = w.Run(ctx) }()

		Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600)).To(Succeed())
		Consistently(reloads.Load, 150*time.Millisecond).Should(BeEquivalentTo(0))
	})
})
