package config

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schema", func() {
	var schema *Schema

	BeforeEach(func() {
		schema = NewSchema()
		schema.Declare(Option{
			Name:        "has_desuperheat",
			Default:     true,
			Domain:      Bool(),
			Description: "Add a desuperheat section to the heat exchanger",
		})
		schema.Declare(Option{
			Name:    "flow_basis",
			Default: "molar",
			Domain:  In("molar", "mass"),
		})
		schema.DeclareSub("condense", NewSchema().Declare(Option{
			Name:    "property_package",
			Default: nil,
		}))
	})

	It("should populate defaults", func() {
		cfg := schema.NewConfig()

		Expect(cfg.Bool("has_desuperheat")).To(BeTrue())
		Expect(cfg.Value("flow_basis")).To(Equal("molar"))
		Expect(cfg.Sub("condense").Value("property_package")).To(BeNil())
	})

	It("should reject defaults outside their domain", func() {
		Expect(func() {
			NewSchema().Declare(Option{
				Name:    "broken",
				Default: "yes",
				Domain:  Bool(),
			})
		}).To(Panic())
	})

	It("should reject duplicate declarations", func() {
		Expect(func() {
			schema.Declare(Option{Name: "has_desuperheat", Default: true,
				Domain: Bool()})
		}).To(Panic())
	})
})

var _ = Describe("Config", func() {
	var cfg *Config

	BeforeEach(func() {
		schema := NewSchema()
		schema.Declare(Option{
			Name:    "has_drain_mixer",
			Default: true,
			Domain:  Bool(),
		})

		cfg = schema.NewConfig()
	})

	It("should reject unknown options", func() {
		err := cfg.Set("has_holdup", true)

		Expect(err).To(HaveOccurred())
		var cfgErr *ConfigurationError
		Expect(err).To(BeAssignableToTypeOf(cfgErr))
	})

	It("should reject out-of-domain values", func() {
		err := cfg.Set("has_drain_mixer", "maybe")

		Expect(err).To(HaveOccurred())
	})

	It("should accept in-domain values before validation", func() {
		Expect(cfg.Set("has_drain_mixer", false)).To(Succeed())
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Bool("has_drain_mixer")).To(BeFalse())
	})

	It("should become read-only after validation", func() {
		Expect(cfg.Validate()).To(Succeed())

		err := cfg.Set("has_drain_mixer", false)

		Expect(err).To(HaveOccurred())
		Expect(cfg.Bool("has_drain_mixer")).To(BeTrue())
	})
})
