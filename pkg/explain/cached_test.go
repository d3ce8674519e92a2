package explain_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/time/rate"

	"github.com/papercomputeco/beatpath/pkg/explain"
	"github.com/papercomputeco/beatpath/pkg/explain/cache"
	bplogger "github.com/papercomputeco/beatpath/pkg/logger"
)

var _ = Describe("Cached", func() {
	var (
		calls atomic.Int32
		next  explain.Func
		store *cache.Memory
	)

	BeforeEach(func() {
		calls.Store(0)
		store = cache.NewMemory(0)
		next = func(_ context.Context, victor, loser string) (string, error) {
			calls.Add(1)
			return victor + " over " + loser, nil
		}
	})

	It("requires a next explainer and a store", func() {
		_, err := explain.NewCached(explain.CachedConfig{Store: store, Logger: bplogger.Nop()})
		Expect(err).To(HaveOccurred())
		_, err = explain.NewCached(explain.CachedConfig{Next: next, Logger: bplogger.Nop()})
		Expect(err).To(HaveOccurred())
	})

	It("serves repeated matchups from the cache", func() {
		c, err := explain.NewCached(explain.CachedConfig{Next: next, Store: store, Logger: bplogger.Nop()})
		Expect(err).NotTo(HaveOccurred())

		first, err := c.Explain(context.Background(), "Georgia", "Tufts")
		Expect(err).NotTo(HaveOccurred())
		second, err := c.Explain(context.Background(), "georgia", " TUFTS ")
		Expect(err).NotTo(HaveOccurred())

		Expect(first).To(Equal("Georgia over Tufts"))
		Expect(second).To(Equal(first))
		Expect(calls.Load()).To(Equal(int32(1)))
	})

	It("does not cache failures", func() {
		failing := explain.Func(func(context.Context, string, string) (string, error) {
			calls.Add(1)
			return "", errors.New("API Error")
		})
		c, _ := explain.NewCached(explain.CachedConfig{Next: failing, Store: store, Logger: bplogger.Nop()})

		_, err := c.Explain(context.Background(), "A", "B")
		Expect(err).To(MatchError("API Error"))
		_, err = c.Explain(context.Background(), "A", "B")
		Expect(err).To(HaveOccurred())
		Expect(calls.Load()).To(Equal(int32(2)))
	})

	It("rate limits upstream calls", func() {
		limiter := rate.NewLimiter(rate.Limit(0), 1)
		c, _ := explain.NewCached(explain.CachedConfig{Next: next, Store: store, Limiter: limiter, Logger: bplogger.Nop()})

		_, err := c.Explain(context.Background(), "A", "B")
		Expect(err).NotTo(HaveOccurred())
		_, err = c.Explain(context.Background(), "C", "D")
		Expect(err).To(MatchError(explain.ErrRateLimited))

		// cached entries are still served
		text, err := c.Explain(context.Background(), "A", "B")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("A over B"))
	})

	It("collapses concurrent requests for the same matchup", func() {
		release := make(chan struct{})
		slow := explain.Func(func(context.Context, string, string) (string, error) {
			calls.Add(1)
			<-release
			return "shared", nil
		})
		c, _ := explain.NewCached(explain.CachedConfig{Next: slow, Store: store, Logger: bplogger.Nop()})

		var wg sync.WaitGroup
		results := make([]string, 5)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = c.Explain(context.Background(), "A", "B")
			}(i)
		}

		Eventually(calls.Load).Should(Equal(int32(1)))
		close(release)
		wg.Wait()

		Expect(calls.Load()).To(BeNumerically(">=", 1))
		for _, r := range results {
			Expect(r).To(Equal("shared"))
		}
	})

	It("finishes a shared call when the first caller goes away", func() {
		release := make(chan struct{})
		upstreamErr := make(chan error, 1)
		slow := explain.Func(func(ctx context.Context, _, _ string) (string, error) {
			calls.Add(1)
			<-release
			upstreamErr <- ctx.Err()
			return "The Jumbo sits on the elephant.", nil
		})
		c, _ := explain.NewCached(explain.CachedConfig{Next: slow, Store: store, Logger: bplogger.Nop()})

		ctx, cancel := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := c.Explain(ctx, "Tufts", "Alabama")
			firstErr <- err
		}()

		Eventually(calls.Load).Should(Equal(int32(1)))
		cancel()
		Eventually(firstErr).Should(Receive(MatchError(context.Canceled)))

		close(release)
		Eventually(upstreamErr).Should(Receive(BeNil()))

		text, err := c.Explain(context.Background(), "Tufts", "Alabama")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("The Jumbo sits on the elephant."))
		Expect(calls.Load()).To(Equal(int32(1)))
	})

	It("bounds the shared call with its own timeout", func() {
		hung := explain.Func(func(ctx context.Context, _, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
		c, _ := explain.NewCached(explain.CachedConfig{
			Next:    hung,
			Store:   store,
			Timeout: 20 * time.Millisecond,
			Logger:  bplogger.Nop(),
		})

		_, err := c.Explain(context.Background(), "Tufts", "Alabama")
		Expect(err).To(MatchError(context.DeadlineExceeded))
	})
})
