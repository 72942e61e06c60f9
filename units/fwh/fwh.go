// Package fwh provides a steady-state condensing feedwater heater composed
// of up to three heat-exchange sections and an optional drain mixer. The
// condensing section is always present and carries an extraction-rate
// constraint tying the steam draw to the heat balance. Optional sections are
// chained with arcs; when a section is disabled, the arc that would source it
// rebinds to the next unit downstream, so the composite ports always resolve
// to real sub-unit ports.
package fwh

import (
	"github.com/procsim/unitsim/config"
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/units/heatexchanger"
	"github.com/procsim/unitsim/units/mixer"
)

// Residual scales for the stream-matching equalities added when the
// section-to-section arcs are expanded.
var streamScales = map[string]float64{
	"flow_mol": 1e2,
	"enth_mol": 1e4,
	"pressure": 1e5,
}

// Inlet names of the drain mixer.
const (
	mixerSteamInlet = "steam"
	mixerDrainInlet = "drain"
)

// A FWH is a condensing feedwater heater.
type FWH struct {
	block *model.Block
	cfg   *config.Config
	pkg   properties.Package

	condense    *CondensingSection
	drainMix    *mixer.Mixer
	desuperheat *heatexchanger.HeatExchanger
	cooling     *heatexchanger.HeatExchanger

	mixOutArc           *model.Arc
	desuperheatDrainArc *model.Arc
	condenseOut1Arc     *model.Arc
	condenseOut2Arc     *model.Arc
	coolingOut2Arc      *model.Arc

	steamInlet       *model.Port
	drainInlet       *model.Port
	feedwaterInlet   *model.Port
	feedwaterOutlet  *model.Port
	condensateOutlet *model.Port
}

// A Builder builds feedwater heaters.
type Builder struct {
	name string
	cfg  *config.Config
}

// MakeBuilder creates a builder with default settings.
func MakeBuilder() Builder {
	return Builder{name: "feedwater_heater"}
}

// WithName sets the name of the composite block.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithConfig sets the configuration. The config must come from Schema; it is
// validated and frozen by Build if the caller has not validated it already.
func (b Builder) WithConfig(cfg *config.Config) Builder {
	b.cfg = cfg
	return b
}

// Build validates the configuration and assembles the composite. All
// configuration problems surface here as *config.ConfigurationError before
// any sub-unit is created.
func (b Builder) Build() (*FWH, error) {
	cfg := b.cfg
	if cfg == nil {
		cfg = Schema().NewConfig()
	}

	if !cfg.IsValidated() {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	pkg, _ := cfg.Value(OptionPropertyPackage).(properties.Package)
	if pkg == nil || pkg == properties.UseDefault {
		return nil, &config.ConfigurationError{
			Option: OptionPropertyPackage,
			Reason: "a feedwater heater needs a property package",
		}
	}

	u := new(FWH)
	u.block = model.NewBlock(b.name)
	u.cfg = cfg
	u.pkg = pkg

	u.buildSections()
	u.connectSections()
	u.resolvePorts()

	return u, nil
}

func (u *FWH) sectionPackage(sub string) properties.Package {
	own, _ := u.cfg.Sub(sub).Value(OptionPropertyPackage).(properties.Package)
	return properties.Resolve(own, u.pkg)
}

func (u *FWH) buildSections() {
	u.condense = newCondensingSection(
		"condense", u.sectionPackage(SubConfigCondense))
	u.block.AddChild(u.condense.Block())

	if u.cfg.Bool(OptionHasDrainMixer) {
		u.drainMix = mixer.MakeBuilder().
			WithName("drain_mix").
			WithPropertyPackage(u.pkg).
			WithInlets(mixerSteamInlet, mixerDrainInlet).
			Build()

		// The drain of the upstream heater is throttled down to the
		// extraction pressure before it enters, so the steam inlet sets
		// the mixed pressure.
		u.drainMix.AddEqualPressureConstraint(mixerSteamInlet)
		u.block.AddChild(u.drainMix.Block())
	}

	if u.cfg.Bool(OptionHasDesuperheat) {
		u.desuperheat = heatexchanger.MakeBuilder().
			WithName("desuperheat").
			WithPropertyPackage(u.sectionPackage(SubConfigDesuperheat)).
			Build()
		u.block.AddChild(u.desuperheat.Block())
	}

	if u.cfg.Bool(OptionHasDrainCooling) {
		u.cooling = heatexchanger.MakeBuilder().
			WithName("cooling").
			WithPropertyPackage(u.sectionPackage(SubConfigCooling)).
			Build()
		u.block.AddChild(u.cooling.Block())
	}
}

// connectSections wires the steam path desuperheat -> mixer -> condense ->
// cooling and the feedwater path cooling -> condense -> desuperheat. Arcs of
// disabled sections rebind to the next unit downstream.
func (u *FWH) connectSections() {
	condenseSteamIn := u.condense.HotInlet()

	if u.drainMix != nil {
		u.mixOutArc = model.NewArc("mix_out_arc",
			u.drainMix.Outlet(), condenseSteamIn)
		condenseSteamIn = u.drainMix.Inlet(mixerSteamInlet)
	}

	if u.desuperheat != nil {
		u.desuperheatDrainArc = model.NewArc("desuperheat_drain_arc",
			u.desuperheat.HotOutlet(), condenseSteamIn)
		u.condenseOut2Arc = model.NewArc("condense_out2_arc",
			u.condense.ColdOutlet(), u.desuperheat.ColdInlet())
	}

	if u.cooling != nil {
		u.condenseOut1Arc = model.NewArc("condense_out1_arc",
			u.condense.HotOutlet(), u.cooling.HotInlet())
		u.coolingOut2Arc = model.NewArc("cooling_out2_arc",
			u.cooling.ColdOutlet(), u.condense.ColdInlet())
	}

	for _, a := range []*model.Arc{
		u.mixOutArc, u.desuperheatDrainArc,
		u.condenseOut1Arc, u.condenseOut2Arc, u.coolingOut2Arc,
	} {
		if a != nil {
			model.ExpandArc(u.block, a, streamScales)
		}
	}
}

func (u *FWH) resolvePorts() {
	switch {
	case u.desuperheat != nil:
		u.steamInlet = u.desuperheat.HotInlet()
	case u.drainMix != nil:
		u.steamInlet = u.drainMix.Inlet(mixerSteamInlet)
	default:
		u.steamInlet = u.condense.HotInlet()
	}

	if u.drainMix != nil {
		u.drainInlet = u.drainMix.Inlet(mixerDrainInlet)
	}

	if u.cooling != nil {
		u.feedwaterInlet = u.cooling.ColdInlet()
		u.condensateOutlet = u.cooling.HotOutlet()
	} else {
		u.feedwaterInlet = u.condense.ColdInlet()
		u.condensateOutlet = u.condense.HotOutlet()
	}

	if u.desuperheat != nil {
		u.feedwaterOutlet = u.desuperheat.ColdOutlet()
	} else {
		u.feedwaterOutlet = u.condense.ColdOutlet()
	}
}

// Block returns the composite equation block.
func (u *FWH) Block() *model.Block {
	return u.block
}

// Config returns the frozen configuration the heater was built from.
func (u *FWH) Config() *config.Config {
	return u.cfg
}

// PropertyPackage returns the default property package of the heater.
func (u *FWH) PropertyPackage() properties.Package {
	return u.pkg
}

// Condense returns the condensing section.
func (u *FWH) Condense() *CondensingSection {
	return u.condense
}

// DrainMix returns the drain mixer, or nil when disabled.
func (u *FWH) DrainMix() *mixer.Mixer {
	return u.drainMix
}

// Desuperheat returns the desuperheating section, or nil when disabled.
func (u *FWH) Desuperheat() *heatexchanger.HeatExchanger {
	return u.desuperheat
}

// Cooling returns the drain-cooling section, or nil when disabled.
func (u *FWH) Cooling() *heatexchanger.HeatExchanger {
	return u.cooling
}

// SteamInlet returns the port where extraction steam enters the heater.
func (u *FWH) SteamInlet() *model.Port {
	return u.steamInlet
}

// DrainInlet returns the port where the drain of the upstream heater enters,
// or nil when the heater has no drain mixer.
func (u *FWH) DrainInlet() *model.Port {
	return u.drainInlet
}

// FeedwaterInlet returns the port where the feedwater enters.
func (u *FWH) FeedwaterInlet() *model.Port {
	return u.feedwaterInlet
}

// FeedwaterOutlet returns the port where the heated feedwater leaves.
func (u *FWH) FeedwaterOutlet() *model.Port {
	return u.feedwaterOutlet
}

// CondensateOutlet returns the port where the condensed steam leaves.
func (u *FWH) CondensateOutlet() *model.Port {
	return u.condensateOutlet
}

// DegreesOfFreedom returns the degrees of freedom of the composite.
func (u *FWH) DegreesOfFreedom() int {
	return u.block.DegreesOfFreedom()
}
