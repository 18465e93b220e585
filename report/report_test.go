package report_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
	"github.com/sarchlab/pagingsim/report"
)

func runScenario(policy mmu.ReplacementPolicy, refs ...uint64) *mmu.System {
	sys, err := mmu.MakeBuilder().
		WithPolicy(policy).
		WithPageSize(1).
		WithNumPages(4).
		WithNumFrames(2).
		Build("MMU")
	Expect(err).NotTo(HaveOccurred())

	for _, r := range refs {
		sys.Translate(r, vm.AccessRead)
	}

	return sys
}

var _ = Describe("Report", func() {
	var out *bytes.Buffer

	BeforeEach(func() {
		out = new(bytes.Buffer)
	})

	It("should summarize the counters", func() {
		sys := runScenario(mmu.FIFO, 0, 1, 0, 7)
		sys.Translate(1, vm.AccessWrite)

		Expect(report.Summary(out, sys)).To(Succeed())

		Expect(out.String()).To(MatchRegexp(`Replacement policy:\s+FIFO`))
		Expect(out.String()).To(MatchRegexp(`Reads:\s+3\n`))
		Expect(out.String()).To(MatchRegexp(`Writes:\s+1\n`))
		Expect(out.String()).To(MatchRegexp(`Page faults:\s+2 \(50.00%\)`))
		Expect(out.String()).To(MatchRegexp(`Illegal references:\s+1\n`))
	})

	It("should print absent pages with dashes", func() {
		sys := runScenario(mmu.FIFO, 0, 1, 2)

		Expect(report.PageTable(out, sys)).To(Succeed())

		Expect(out.String()).To(MatchRegexp(`(?m)^\s*0\s+0\s+-\s+-\s*$`))
		Expect(out.String()).To(MatchRegexp(`(?m)^\s*2\s+1\s+0\s+0\s*$`))
		Expect(out.String()).NotTo(ContainSubstring("Timestamp"))
	})

	It("should print timestamps under LRU", func() {
		sys := runScenario(mmu.LRU, 0, 1, 0)

		Expect(report.PageTable(out, sys)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("Timestamp"))
		Expect(out.String()).To(MatchRegexp(`(?m)^\s*0\s+1\s+0\s+0\s+2\s*$`))
	})

	It("should print the FIFO position of frames", func() {
		sys := runScenario(mmu.FIFO, 0, 1, 2)

		Expect(report.FrameTable(out, sys)).To(Succeed())

		Expect(out.String()).To(MatchRegexp(`(?m)^\s*0\s+2\s+1\s+0\s+2\s*$`))
		Expect(out.String()).To(MatchRegexp(`(?m)^\s*1\s+1\s+1\s+0\s+1\s*$`))
		Expect(out.String()).NotTo(ContainSubstring("ERROR!"))
	})

	It("should walk the FIFO ledger from the oldest frame", func() {
		sys := runScenario(mmu.FIFO, 0, 1, 2)

		Expect(report.Replacement(out, sys)).To(Succeed())

		Expect(out.String()).To(ContainSubstring(
			"  M 1 -> P 1 (next victim)\n  M 0 -> P 2\n"))
		Expect(out.String()).To(ContainSubstring("PAGE FAULTS: --->> 3 <<---"))
	})

	It("should print the LRU clock and timestamp range", func() {
		sys := runScenario(mmu.LRU, 0, 1, 0, 2)

		Expect(report.Replacement(out, sys)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("LRU replacement policy\n"))
		Expect(out.String()).To(ContainSubstring("Current clock value: 4\n"))
		Expect(out.String()).To(ContainSubstring("Min timestamp in memory: 2\n"))
		Expect(out.String()).To(ContainSubstring("Max timestamp in memory: 3\n"))
	})

	It("should print everything", func() {
		sys := runScenario(mmu.FIFO)

		Expect(report.All(out, sys)).To(Succeed())

		Expect(out.String()).To(ContainSubstring("SUMMARY"))
		Expect(out.String()).To(ContainSubstring("PAGE TABLE"))
		Expect(out.String()).To(ContainSubstring("FRAMES TABLE"))
		Expect(out.String()).To(ContainSubstring("REPLACEMENT REPORT"))
	})
})
