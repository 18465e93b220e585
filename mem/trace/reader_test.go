package trace

import (
	"io"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/pagingsim/mem/vm"
)

var _ = Describe("Reader", func() {
	It("should read decimal and hexadecimal addresses", func() {
		accesses, err := ReadAll(strings.NewReader("R 12\nw 0x1F\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(Equal([]Access{
			{Op: vm.AccessRead, VAddr: 12},
			{Op: vm.AccessWrite, VAddr: 31},
		}))
	})

	It("should skip blank lines and comments", func() {
		input := "# header\n\n  R 1   # first\n\t\nW 2\n"

		accesses, err := ReadAll(strings.NewReader(input))

		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(HaveLen(2))
	})

	It("should return EOF at the end", func() {
		reader := NewReader(strings.NewReader("R 1"))

		_, err := reader.Next()
		Expect(err).NotTo(HaveOccurred())

		_, err = reader.Next()
		Expect(err).To(Equal(io.EOF))
	})

	DescribeTable("should reject malformed lines",
		func(input string) {
			reader := NewReader(strings.NewReader("R 0\n" + input))

			_, err := reader.Next()
			Expect(err).NotTo(HaveOccurred())

			_, err = reader.Next()
			Expect(err).To(MatchError(ErrMalformedLine))
			Expect(err.Error()).To(ContainSubstring("line 2"))
			Expect(reader.Line()).To(Equal(2))
		},
		Entry("missing address", "R"),
		Entry("extra field", "R 1 2"),
		Entry("unknown op", "X 1"),
		Entry("bad address", "W zz"),
		Entry("negative address", "W -1"),
	)

	It("should keep the accesses read before an error", func() {
		accesses, err := ReadAll(strings.NewReader("R 1\nR 2\nbad\n"))

		Expect(err).To(HaveOccurred())
		Expect(accesses).To(HaveLen(2))
	})

	It("should print accesses", func() {
		Expect(Access{Op: vm.AccessWrite, VAddr: 7}.String()).To(Equal("W 7"))
	})
})
