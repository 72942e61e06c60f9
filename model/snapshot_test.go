package model

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Snapshot", func() {
	var (
		root    *Block
		section *Block
		flow    *Variable
		enth    *Variable
		area    *Variable
		eq      *Constraint
	)

	BeforeEach(func() {
		root = NewBlock("unit")
		section = root.NewChild("section")

		flow = section.NewVariable("flow_mol")
		enth = section.NewVariable("enth_mol")
		area = root.NewVariable("area")

		flow.FixAt(100)
		enth.SetValue(60000)
		area.FixAt(1000)

		eq = section.NewConstraint("balance", []*Variable{flow, enth},
			func() float64 { return flow.Value() - enth.Value() })
	})

	It("should capture only fixed variables under the scheduler spec", func() {
		snap := Capture(root, FixedVarsAndActiveConstraints())

		Expect(snap.VarEntries()).To(HaveLen(2))
		Expect(snap.ConstraintEntries()).To(HaveLen(1))
		Expect(snap.WasFixed("section.flow_mol")).To(BeTrue())
		Expect(snap.WasFixed("section.enth_mol")).To(BeFalse())
		Expect(snap.ID()).NotTo(BeEmpty())
	})

	It("should round-trip fixed/active state", func() {
		snap := Capture(root, FixedVarsAndActiveConstraints())

		flow.Unfix()
		flow.SetValue(42)
		enth.Fix()
		area.SetValue(7)
		eq.Deactivate()

		Expect(snap.Restore(root)).To(Succeed())

		Expect(flow.IsFixed()).To(BeTrue())
		Expect(flow.Value()).To(Equal(100.0))
		Expect(area.IsFixed()).To(BeTrue())
		Expect(area.Value()).To(Equal(1000.0))
		Expect(eq.IsActive()).To(BeTrue())

		// enth_mol was unfixed at capture, so it is outside the snapshot
		// and keeps whatever happened to it.
		Expect(enth.IsFixed()).To(BeTrue())
	})

	It("should restore idempotently", func() {
		snap := Capture(root, FixedVarsAndActiveConstraints())

		flow.Unfix()
		eq.Deactivate()

		Expect(snap.Restore(root)).To(Succeed())
		Expect(snap.Restore(root)).To(Succeed())

		Expect(flow.IsFixed()).To(BeTrue())
		Expect(eq.IsActive()).To(BeTrue())
	})

	It("should fail on a path that no longer resolves", func() {
		other := NewBlock("unit")
		snap := Capture(root, FixedVarsAndActiveConstraints())

		err := snap.Restore(other)

		Expect(err).To(HaveOccurred())
		var restoreErr *RestoreError
		Expect(err).To(BeAssignableToTypeOf(restoreErr))
	})
})

var _ = Describe("Guard", func() {
	var (
		root *Block
		flow *Variable
		enth *Variable
		eq   *Constraint
	)

	BeforeEach(func() {
		root = NewBlock("unit")
		flow = root.NewVariable("flow_mol")
		enth = root.NewVariable("enth_mol")

		flow.FixAt(100)
		enth.SetValue(60000)

		eq = root.NewConstraint("balance", []*Variable{flow, enth},
			func() float64 { return flow.Value() - enth.Value() })
	})

	It("should release only its own fixes", func() {
		guard := NewGuard(root)

		guard.Fix(flow)
		guard.Fix(enth)
		Expect(enth.IsFixed()).To(BeTrue())

		guard.ReleaseFixes()

		Expect(flow.IsFixed()).To(BeTrue())
		Expect(enth.IsFixed()).To(BeFalse())
	})

	It("should restore fixed/active state on exit", func() {
		func() {
			guard := NewGuard(root)
			defer guard.MustRestore()

			guard.Fix(enth)
			flow.Unfix()
			eq.Deactivate()
		}()

		Expect(flow.IsFixed()).To(BeTrue())
		Expect(enth.IsFixed()).To(BeFalse())
		Expect(eq.IsActive()).To(BeTrue())
	})

	It("should fix through ports", func() {
		port := NewPort("inlet")
		port.Add("flow_mol", flow)
		port.Add("enth_mol", enth)

		guard := NewGuard(root)
		guard.FixPort(port)

		Expect(enth.IsFixed()).To(BeTrue())

		guard.ReleaseFixes()
		Expect(enth.IsFixed()).To(BeFalse())
		Expect(flow.IsFixed()).To(BeTrue())
	})
})
