package model

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Variable", func() {
	var v *Variable

	BeforeEach(func() {
		v = NewVariable("flow_mol")
	})

	It("should start unset and unfixed", func() {
		Expect(v.IsSet()).To(BeFalse())
		Expect(v.IsFixed()).To(BeFalse())
	})

	It("should panic when reading an unset value", func() {
		Expect(func() { v.Value() }).To(Panic())
	})

	It("should panic when fixing an unset variable", func() {
		Expect(func() { v.Fix() }).To(Panic())
	})

	It("should hold a value after assignment", func() {
		v.SetValue(100)

		Expect(v.IsSet()).To(BeTrue())
		Expect(v.Value()).To(Equal(100.0))
	})

	It("should fix and unfix", func() {
		v.FixAt(100)
		Expect(v.IsFixed()).To(BeTrue())

		v.Unfix()
		Expect(v.IsFixed()).To(BeFalse())
		Expect(v.Value()).To(Equal(100.0))
	})

	It("should clamp to bounds", func() {
		v.SetBounds(0, 10)

		Expect(v.Clamp(-1)).To(Equal(0.0))
		Expect(v.Clamp(5)).To(Equal(5.0))
		Expect(v.Clamp(11)).To(Equal(10.0))
	})

	It("should reject inverted bounds", func() {
		Expect(func() { v.SetBounds(1, 0) }).To(Panic())
	})
})
