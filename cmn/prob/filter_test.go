package prob_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/nagacharan-tangirala/disolv/cmn/prob"
)

var _ = Describe("Filter", func() {
	It("reports inserted keys as present", func() {
		f := prob.NewDefaultFilter()
		Expect(f.Insert("payload-1")).To(BeTrue())
		Expect(f.Lookup("payload-1")).To(BeTrue())
		Expect(f.Count()).To(BeEquivalentTo(1))
	})

	It("does not report an un-inserted key as present", func() {
		f := prob.NewDefaultFilter()
		f.Insert("payload-1")
		Expect(f.Lookup("payload-2")).To(BeFalse())
	})

	It("forgets everything after Reset", func() {
		f := prob.NewDefaultFilter()
		f.Insert("payload-1")
		f.Reset()
		Expect(f.Lookup("payload-1")).To(BeFalse())
		Expect(f.Count()).To(BeZero())
	})
})
