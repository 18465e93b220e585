package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
)

type directInspector struct {
	sys   *mmu.System
	calls int
}

func (i *directInspector) Inspect(f func(sys *mmu.System)) {
	i.calls++
	f(i.sys)
}

var _ = Describe("Monitor", func() {
	var (
		m         *Monitor
		inspector *directInspector
		server    *httptest.Server
	)

	get := func(path string) *http.Response {
		rsp, err := http.Get(server.URL + path)
		Expect(err).NotTo(HaveOccurred())

		return rsp
	}

	decode := func(path string, v any) {
		rsp := get(path)
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
		Expect(json.NewDecoder(rsp.Body).Decode(v)).To(Succeed())
	}

	BeforeEach(func() {
		sys, err := mmu.MakeBuilder().
			WithPageSize(1).
			WithNumPages(4).
			WithNumFrames(2).
			Build("MMU")
		Expect(err).NotTo(HaveOccurred())

		sys.Translate(0, vm.AccessRead)
		sys.Translate(1, vm.AccessWrite)
		sys.Translate(2, vm.AccessRead)

		inspector = &directInspector{sys: sys}

		m = NewMonitor()
		m.RegisterSimulation(inspector)

		server = httptest.NewServer(m.router())
	})

	AfterEach(func() {
		server.Close()
	})

	It("should replace low port numbers by a random port", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should list the statistics", func() {
		rsp := map[string]any{}
		decode("/api/stats", &rsp)

		Expect(rsp).To(HaveKeyWithValue("reads", 2.0))
		Expect(rsp).To(HaveKeyWithValue("writes", 1.0))
		Expect(rsp).To(HaveKeyWithValue("page_faults", 3.0))
		Expect(rsp).To(HaveKeyWithValue("references", 3.0))
		Expect(rsp).To(HaveKeyWithValue("fault_rate", 1.0))
		Expect(inspector.calls).To(Equal(1))
	})

	It("should list the pages", func() {
		var pages []pageRsp
		decode("/api/pages", &pages)

		Expect(pages).To(HaveLen(4))
		Expect(pages[0].Present).To(BeFalse())
		Expect(pages[1]).To(Equal(pageRsp{
			Page: 1, Present: true, Frame: 1, Modified: true,
		}))
		Expect(pages[2]).To(Equal(pageRsp{Page: 2, Present: true, Frame: 0}))
	})

	It("should list the frames", func() {
		var frames []frameRsp
		decode("/api/frames", &frames)

		Expect(frames).To(Equal([]frameRsp{
			{Frame: 0, Page: 2},
			{Frame: 1, Page: 1},
		}))
	})

	It("should list the load order", func() {
		var order loadOrderRsp
		decode("/api/load_order", &order)

		Expect(order.Policy).To(Equal("FIFO"))
		Expect(order.LoadOrder).To(Equal([]int{1, 0}))
		Expect(order.FreeFrames).To(BeEmpty())
	})

	It("should serialize the system", func() {
		rsp := get("/api/system")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	})

	It("should reject malformed field requests", func() {
		rsp := get("/api/field/" + url.PathEscape("{not json"))
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should list progress bars", func() {
		bar := m.CreateProgressBar("trace", 10)
		bar.IncrementFinished(4)

		var bars []progressRsp
		decode("/api/progress", &bars)

		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("trace"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(4)))

		m.CompleteProgressBar(bar)

		decode("/api/progress", &bars)
		Expect(bars).To(BeEmpty())
	})

	It("should report resources", func() {
		var res resourceRsp
		decode("/api/resource", &res)

		Expect(res.MemorySize).To(BeNumerically(">", 0))
	})

	It("should serve the web page", func() {
		rsp := get("/")
		defer rsp.Body.Close()

		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	})

	Context("without a simulation", func() {
		BeforeEach(func() {
			m.RegisterSimulation(nil)
		})

		It("should answer service unavailable", func() {
			rsp := get("/api/stats")
			defer rsp.Body.Close()

			Expect(rsp.StatusCode).To(Equal(http.StatusServiceUnavailable))
		})
	})
})

var _ = Describe("ProgressBar", func() {
	It("should be done when every access is finished", func() {
		bar := &ProgressBar{}
		Expect(bar.Done()).To(BeFalse())

		bar.SetTotal(2)
		bar.IncrementFinished(1)
		Expect(bar.Done()).To(BeFalse())

		bar.IncrementFinished(1)
		Expect(bar.Done()).To(BeTrue())
	})
})
