package fwh

import (
	"log"

	"github.com/procsim/unitsim/model"
	"github.com/procsim/unitsim/solver"
)

// Initialize runs the sequential-modular initialization of the composite:
// the sections are solved one at a time in flow order with their inlets
// temporarily fixed, stream values are propagated along the arcs, and a
// final coupled solve polishes the whole composite with the extraction-rate
// constraint active. The fixed/active configuration recorded on entry is
// restored before returning, whether the solves succeed or not; only a
// failing restore panics, since the composite state is unrecoverable then.
func (u *FWH) Initialize(
	adapter solver.Adapter,
	opts solver.Options,
) (res solver.Result, err error) {
	guard := model.NewGuard(u.block)
	defer func() {
		if rerr := guard.Restore(); rerr != nil {
			log.Panicf("%s: restoring snapshot %s failed: %v",
				u.block.Name(), guard.Snapshot().ID(), rerr)
		}
	}()

	// The extraction rate is determined by the coupled solve; while the
	// sections are solved one by one it would leave them over-specified.
	extraction := u.condense.ExtractionRate()
	extraction.Deactivate()
	defer extraction.Activate()

	if res, err = u.initDesuperheat(guard, adapter, opts); err != nil {
		return res, err
	}

	if res, err = u.initDrainMix(guard, adapter, opts); err != nil {
		return res, err
	}

	if res, err = u.initCondense(guard, adapter, opts); err != nil {
		return res, err
	}

	if res, err = u.initCooling(guard, adapter, opts); err != nil {
		return res, err
	}

	extraction.Activate()

	if err = model.MustBeSquare(u.block); err != nil {
		return solver.Result{Status: solver.StatusError}, err
	}

	res, err = adapter.Solve(u.block, opts)
	if err != nil {
		return res, err
	}

	solver.LogOutcome(u.block.Name(), res, opts)

	return res, nil
}

func (u *FWH) initDesuperheat(
	guard *model.Guard,
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	if u.desuperheat == nil {
		return solver.Result{Status: solver.StatusOptimal}, nil
	}

	// Seed the feedwater side from the composite feedwater inlet; the
	// downstream sections have not been solved yet.
	model.CopyPortValues(u.desuperheat.ColdInlet(), u.feedwaterInlet)

	guard.FixPort(u.desuperheat.HotInlet())
	guard.FixPort(u.desuperheat.ColdInlet())

	res, err := u.desuperheat.Initialize(adapter, opts)
	if err != nil {
		return res, err
	}

	guard.ReleaseFixes()

	// The steam draw stays free for the extraction-rate constraint.
	u.desuperheat.HotInlet().Variable("flow_mol").Unfix()

	u.desuperheatDrainArc.Propagate()

	return res, nil
}

func (u *FWH) initDrainMix(
	guard *model.Guard,
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	if u.drainMix == nil {
		return solver.Result{Status: solver.StatusOptimal}, nil
	}

	guard.FixPort(u.drainMix.Inlet(mixerSteamInlet))
	guard.FixPort(u.drainMix.Inlet(mixerDrainInlet))

	res, err := u.drainMix.Initialize(adapter, opts)
	if err != nil {
		return res, err
	}

	guard.ReleaseFixes()

	if u.desuperheat == nil {
		u.drainMix.Inlet(mixerSteamInlet).Variable("flow_mol").Unfix()
	}

	u.mixOutArc.Propagate()

	return res, nil
}

func (u *FWH) initCondense(
	guard *model.Guard,
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	if u.cooling != nil {
		// The drain cooler has not been solved yet, so seed the condensing
		// feedwater side straight from the composite feedwater inlet.
		model.CopyPortValues(u.condense.ColdInlet(), u.cooling.ColdInlet())
	}

	guard.FixPort(u.condense.HotInlet())
	guard.FixPort(u.condense.ColdInlet())

	res, err := u.condense.Initialize(adapter, opts)
	if err != nil {
		return res, err
	}

	guard.ReleaseFixes()

	if u.desuperheat == nil && u.drainMix == nil {
		u.condense.HotInlet().Variable("flow_mol").Unfix()
	}

	return res, nil
}

func (u *FWH) initCooling(
	guard *model.Guard,
	adapter solver.Adapter,
	opts solver.Options,
) (solver.Result, error) {
	if u.cooling == nil {
		return solver.Result{Status: solver.StatusOptimal}, nil
	}

	u.condenseOut1Arc.Propagate()

	guard.FixPort(u.cooling.HotInlet())
	guard.FixPort(u.cooling.ColdInlet())

	res, err := u.cooling.Initialize(adapter, opts)
	if err != nil {
		return res, err
	}

	guard.ReleaseFixes()

	return res, nil
}
