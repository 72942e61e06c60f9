package fwh

import (
	"github.com/procsim/unitsim/config"
	"github.com/procsim/unitsim/properties"
)

// Option names accepted by the feedwater heater schema.
const (
	OptionHasDrainMixer   = "has_drain_mixer"
	OptionHasDesuperheat  = "has_desuperheat"
	OptionHasDrainCooling = "has_drain_cooling"
	OptionPropertyPackage = "property_package"
)

// Sub-config names, one per section.
const (
	SubConfigCondense    = "condense"
	SubConfigDesuperheat = "desuperheat"
	SubConfigCooling     = "cooling"
)

func propertyPackageDomain() config.Domain {
	return config.Satisfies("a property package", func(v any) bool {
		_, ok := v.(properties.Package)
		return ok
	})
}

func sectionSchema() *config.Schema {
	s := config.NewSchema()
	s.Declare(config.Option{
		Name:    OptionPropertyPackage,
		Default: properties.UseDefault,
		Domain:  propertyPackageDomain(),
		Description: "Property package of the section streams. Defaults to " +
			"the package of the enclosing feedwater heater.",
	})

	return s
}

// Schema returns the option table of a feedwater heater. The condensing
// section is always present; the drain mixer, desuperheating section, and
// drain-cooling section are individually selectable.
func Schema() *config.Schema {
	s := config.NewSchema()

	s.Declare(config.Option{
		Name:    OptionHasDrainMixer,
		Default: true,
		Domain:  config.Bool(),
		Description: "Add a mixer combining the drain from another heater " +
			"with the extraction steam ahead of the condensing section.",
	})
	s.Declare(config.Option{
		Name:    OptionHasDesuperheat,
		Default: true,
		Domain:  config.Bool(),
		Description: "Add a desuperheating section ahead of the condensing " +
			"section on the steam path.",
	})
	s.Declare(config.Option{
		Name:    OptionHasDrainCooling,
		Default: true,
		Domain:  config.Bool(),
		Description: "Add a drain-cooling section after the condensing " +
			"section on the steam path.",
	})
	s.Declare(config.Option{
		Name:        OptionPropertyPackage,
		Default:     properties.UseDefault,
		Domain:      propertyPackageDomain(),
		Description: "Property package used by sections that do not override it.",
	})

	s.DeclareSub(SubConfigCondense, sectionSchema())
	s.DeclareSub(SubConfigDesuperheat, sectionSchema())
	s.DeclareSub(SubConfigCooling, sectionSchema())

	return s
}
