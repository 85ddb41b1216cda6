package cos_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
)

var _ = Describe("Quantity", func() {
	It("parses a percentage", func() {
		q, err := cos.ParseQuantity("81%")
		Expect(err).NotTo(HaveOccurred())
		Expect(q.IsPercent).To(BeTrue())
		Expect(q.ToBytes(1000)).To(BeEquivalentTo(810))
	})

	It("rejects an out-of-range percentage", func() {
		_, err := cos.ParseQuantity("100%")
		Expect(err).To(Equal(cos.ErrQuantityPercent))
	})

	It("parses an absolute byte quantity", func() {
		q, err := cos.ParseQuantity("1GB")
		Expect(err).NotTo(HaveOccurred())
		Expect(q.IsPercent).To(BeFalse())
		Expect(q.ToBytes(0)).To(BeEquivalentTo(1_000_000_000))
	})

	It("parses binary-unit suffixes", func() {
		b, err := cos.ParseSize("512KiB")
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(BeEquivalentTo(512 * 1024))
	})

	It("rejects garbage input", func() {
		_, err := cos.ParseQuantity("not-a-quantity")
		Expect(err).To(Equal(cos.ErrQuantityUsage))
	})
})
