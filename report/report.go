// Package report prints the tables and statistics of a paging system for
// people to read.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sarchlab/pagingsim/mem/vm"
	"github.com/sarchlab/pagingsim/mem/vm/mmu"
)

// Summary prints the configuration and the counters.
func Summary(w io.Writer, sys *mmu.System) error {
	stats := sys.Stats()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "---------- SUMMARY ----------")
	fmt.Fprintf(tw, "Replacement policy:\t%s\n", sys.Policy())
	fmt.Fprintf(tw, "Page size:\t%d\n", sys.PageSize())
	fmt.Fprintf(tw, "Pages:\t%d\n", sys.NumPages())
	fmt.Fprintf(tw, "Frames:\t%d\n", sys.NumFrames())
	fmt.Fprintf(tw, "Reads:\t%d\n", stats.Reads)
	fmt.Fprintf(tw, "Writes:\t%d\n", stats.Writes)
	fmt.Fprintf(tw, "References:\t%d\n", stats.References())
	fmt.Fprintf(tw, "Page faults:\t%d (%.2f%%)\n",
		stats.PageFaults, 100*stats.FaultRate())
	fmt.Fprintf(tw, "Write backs:\t%d\n", stats.WriteBacks)
	fmt.Fprintf(tw, "Illegal references:\t%d\n", stats.IllegalRefs)
	fmt.Fprintln(tw, "-----------------------------")

	return tw.Flush()
}

// PageTable prints every page table entry. Absent pages show dashes.
func PageTable(w io.Writer, sys *mmu.System) error {
	lru := sys.Policy() == mmu.LRU

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "---------- PAGE TABLE ----------")

	if lru {
		fmt.Fprintln(tw, "PAGE\tPresent\tFrame\tModified\tTimestamp\t")
	} else {
		fmt.Fprintln(tw, "PAGE\tPresent\tFrame\tModified\t")
	}

	for i, page := range sys.Pages() {
		fmt.Fprintf(tw, "%d\t%d\t", i, bit(page.Present))

		switch {
		case !page.Present && lru:
			fmt.Fprint(tw, "-\t-\t-\t\n")
		case !page.Present:
			fmt.Fprint(tw, "-\t-\t\n")
		case lru:
			fmt.Fprintf(tw, "%d\t%d\t%d\t\n",
				page.Frame, bit(page.Modified), page.Timestamp)
		default:
			fmt.Fprintf(tw, "%d\t%d\t\n", page.Frame, bit(page.Modified))
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "--------------------------------")

	return err
}

// FrameTable prints every frame. Under FIFO, the last column is the position
// of the frame in the eviction order, 1 being the next victim. A frame that
// names a page which is not present is marked as an error.
func FrameTable(w io.Writer, sys *mmu.System) error {
	fifo := sys.Policy() == mmu.FIFO

	position := make(map[int]int)
	for i, frame := range sys.LoadOrder() {
		position[frame] = i + 1
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(w, "---------- FRAMES TABLE ----------")

	if fifo {
		fmt.Fprintln(tw, "FRAME\tPage\tPresent\tModified\tFIFO_Order\t")
	} else {
		fmt.Fprintln(tw, "FRAME\tPage\tPresent\tModified\t")
	}

	for i, frame := range sys.Frames() {
		fmt.Fprintf(tw, "%d\t", i)

		if frame.Page == vm.NoPage {
			if fifo {
				fmt.Fprint(tw, "-\t-\t-\t-\t\n")
			} else {
				fmt.Fprint(tw, "-\t-\t-\t\n")
			}

			continue
		}

		page := sys.Page(frame.Page)
		fmt.Fprintf(tw, "%d\t%d\t", frame.Page, bit(page.Present))

		if !page.Present || page.Frame != i {
			fmt.Fprint(tw, "-\tERROR!\t\n")
			continue
		}

		fmt.Fprintf(tw, "%d\t", bit(page.Modified))

		if fifo {
			fmt.Fprintf(tw, "%d\t", position[i])
		}

		fmt.Fprint(tw, "\n")
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "----------------------------------")

	return err
}

// Replacement prints the state of the replacement policy followed by the
// number of page faults.
func Replacement(w io.Writer, sys *mmu.System) error {
	fmt.Fprintln(w, "--------- REPLACEMENT REPORT ---------")
	fmt.Fprintf(w, "%s replacement policy\n", sys.Policy())

	switch sys.Policy() {
	case mmu.LRU:
		writeLRUState(w, sys)
	default:
		writeFIFOState(w, sys)
	}

	fmt.Fprintln(w, "--------------------------------------")
	_, err := fmt.Fprintf(w, "PAGE FAULTS: --->> %d <<---\n",
		sys.Stats().PageFaults)

	return err
}

func writeFIFOState(w io.Writer, sys *mmu.System) {
	order := sys.LoadOrder()
	if len(order) == 0 {
		return
	}

	fmt.Fprintln(w, "Occupied frames (FIFO order - oldest first):")

	for i, frame := range order {
		suffix := ""
		if i == 0 {
			suffix = " (next victim)"
		}

		fmt.Fprintf(w, "  M %d -> P %d%s\n", frame, sys.Frame(frame).Page, suffix)
	}
}

func writeLRUState(w io.Writer, sys *mmu.System) {
	fmt.Fprintf(w, "Current clock value: %d\n", sys.Clock())

	resident := sys.ResidentPages()
	if len(resident) == 0 {
		return
	}

	oldest := sys.Page(resident[0]).Timestamp
	newest := oldest

	for _, p := range resident[1:] {
		ts := sys.Page(p).Timestamp
		if ts < oldest {
			oldest = ts
		}

		if ts > newest {
			newest = ts
		}
	}

	fmt.Fprintf(w, "Min timestamp in memory: %d\n", oldest)
	fmt.Fprintf(w, "Max timestamp in memory: %d\n", newest)
}

// All prints the summary, the page table, the frame table and the
// replacement report, in this order.
func All(w io.Writer, sys *mmu.System) error {
	for _, f := range []func(io.Writer, *mmu.System) error{
		Summary, PageTable, FrameTable, Replacement,
	} {
		if err := f(w, sys); err != nil {
			return err
		}
	}

	return nil
}

func bit(b bool) int {
	if b {
		return 1
	}

	return 0
}
