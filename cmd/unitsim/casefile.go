package main

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/procsim/unitsim/config"
	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/properties"
	"github.com/procsim/unitsim/units/fwh"
)

// A caseFile describes one feedwater heater and its boundary specification.
type caseFile struct {
	Name     string         `hcl:"name"`
	Heater   heaterBlock    `hcl:"feedwater_heater,block"`
	Streams  []streamBlock  `hcl:"stream,block"`
	Sections []sectionBlock `hcl:"section,block"`
	Solver   *solverBlock   `hcl:"solver,block"`
}

// heaterBlock selects the optional sections. Absent attributes keep the
// schema defaults, which enable everything.
type heaterBlock struct {
	HasDrainMixer   *bool `hcl:"has_drain_mixer,optional"`
	HasDesuperheat  *bool `hcl:"has_desuperheat,optional"`
	HasDrainCooling *bool `hcl:"has_drain_cooling,optional"`
}

// A streamBlock fixes the conditions on one composite port. Attributes left
// out stay free. The guessed flow is set as a starting value without fixing
// it, which is how the extraction steam flow is specified.
type streamBlock struct {
	Port         string   `hcl:"port,label"`
	FlowMol      *float64 `hcl:"flow_mol,optional"`
	GuessFlowMol *float64 `hcl:"guess_flow_mol,optional"`
	EnthMol      *float64 `hcl:"enth_mol,optional"`
	Pressure     *float64 `hcl:"pressure,optional"`
}

// A sectionBlock fixes the geometry of one heat-exchange section.
type sectionBlock struct {
	Name                    string  `hcl:"name,label"`
	Area                    float64 `hcl:"area"`
	HeatTransferCoefficient float64 `hcl:"heat_transfer_coefficient"`
}

type solverBlock struct {
	MaxIter   *int     `hcl:"max_iter,optional"`
	Tolerance *float64 `hcl:"tolerance,optional"`
	OutLevel  *int     `hcl:"out_level,optional"`
}

func loadCaseFile(path string) (*caseFile, error) {
	c := new(caseFile)
	if err := hclsimple.DecodeFile(path, nil, c); err != nil {
		return nil, fmt.Errorf("loading case file %s: %w", path, err)
	}

	return c, nil
}

func (c *caseFile) buildHeater() (*fwh.FWH, error) {
	cfg := fwh.Schema().NewConfig()
	cfg.MustSet(fwh.OptionPropertyPackage, properties.SimpleSteam())

	setIfGiven := func(option string, v *bool) error {
		if v == nil {
			return nil
		}

		return cfg.Set(option, *v)
	}

	if err := setIfGiven(fwh.OptionHasDrainMixer,
		c.Heater.HasDrainMixer); err != nil {
		return nil, err
	}

	if err := setIfGiven(fwh.OptionHasDesuperheat,
		c.Heater.HasDesuperheat); err != nil {
		return nil, err
	}

	if err := setIfGiven(fwh.OptionHasDrainCooling,
		c.Heater.HasDrainCooling); err != nil {
		return nil, err
	}

	u, err := fwh.MakeBuilder().WithName(c.Name).WithConfig(cfg).Build()
	if err != nil {
		return nil, err
	}

	if err := c.applyStreams(u); err != nil {
		return nil, err
	}

	if err := c.applySections(u); err != nil {
		return nil, err
	}

	return u, nil
}

func (c *caseFile) applyStreams(u *fwh.FWH) error {
	ports := map[string]*model.Port{
		"steam_inlet":     u.SteamInlet(),
		"feedwater_inlet": u.FeedwaterInlet(),
	}
	if u.DrainInlet() != nil {
		ports["drain_inlet"] = u.DrainInlet()
	}

	fixIfGiven := func(p *model.Port, member string, v *float64) {
		if v != nil {
			p.Variable(member).FixAt(*v)
		}
	}

	for _, s := range c.Streams {
		port, ok := ports[s.Port]
		if !ok {
			return &config.ConfigurationError{
				Option: "stream." + s.Port,
				Reason: "no such port in this configuration",
			}
		}

		fixIfGiven(port, "flow_mol", s.FlowMol)
		fixIfGiven(port, "enth_mol", s.EnthMol)
		fixIfGiven(port, "pressure", s.Pressure)

		if s.GuessFlowMol != nil {
			port.Variable("flow_mol").SetValue(*s.GuessFlowMol)
		}
	}

	return nil
}

// geometry is the part of a section the case file can specify.
type geometry interface {
	Area() *model.Variable
	HeatTransferCoefficient() *model.Variable
}

func (c *caseFile) applySections(u *fwh.FWH) error {
	sections := map[string]geometry{"condense": u.Condense()}
	if u.Desuperheat() != nil {
		sections["desuperheat"] = u.Desuperheat()
	}
	if u.Cooling() != nil {
		sections["cooling"] = u.Cooling()
	}

	for _, s := range c.Sections {
		section, ok := sections[s.Name]
		if !ok {
			return &config.ConfigurationError{
				Option: "section." + s.Name,
				Reason: "no such section in this configuration",
			}
		}

		section.Area().FixAt(s.Area)
		section.HeatTransferCoefficient().FixAt(s.HeatTransferCoefficient)
	}

	return nil
}
