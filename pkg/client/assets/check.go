package assets

import (
	"fmt"

	"tactics/pkg/shared/battle"
	"tactics/pkg/shared/config"
)

// Report is the outcome of Check. Errors make the asset tree unusable,
// warnings point at content that is likely incomplete.
type Report struct {
	Errors   []error
	Warnings []string
}

// OK reports whether the check found no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Errorf(format, args...))
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Check cross-validates the loaded data files against each other.
func Check(a *Assets) *Report {
	r := &Report{}
	ps := a.Prototypes

	if err := a.DemoScenario.Validate(ps); err != nil {
		r.errorf("%s: %w", config.DemoScenarioFile, err)
	}
	if err := a.CampaignPlan.Validate(ps); err != nil {
		r.errorf("%s: %w", config.CampaignPlanFile, err)
	}

	for _, typ := range sortedTypes(a.AgentCampaignInfo) {
		if _, ok := ps[typ]; !ok {
			r.errorf("%s: %w: %q", config.AgentCampaignInfoFile, battle.ErrUnknownObjType, typ)
			continue
		}
		for _, up := range a.AgentCampaignInfo[typ].Upgrades {
			if _, ok := ps[up]; !ok {
				r.errorf("%s: %q upgrade: %w: %q", config.AgentCampaignInfoFile, typ, battle.ErrUnknownObjType, up)
			}
		}
	}

	for _, typ := range sortedTypes(a.SpritesInfo) {
		if _, ok := ps[typ]; !ok {
			r.errorf("%s: %w: %q", config.SpritesFile, battle.ErrUnknownObjType, typ)
		}
	}
	for _, typ := range sortedTypes(ps) {
		if _, ok := a.SpritesInfo[typ]; !ok {
			r.warnf("prototype %q has no sprite", typ)
		}
	}

	agents := append([]battle.ObjType(nil), a.CampaignPlan.InitialAgents...)
	for _, node := range a.CampaignPlan.Nodes {
		agents = append(agents, node.Award.Recruits...)
	}
	seen := make(map[battle.ObjType]bool)
	for _, typ := range agents {
		if seen[typ] {
			continue
		}
		seen[typ] = true
		if _, ok := a.AgentCampaignInfo[typ]; !ok {
			r.warnf("campaign agent %q has no campaign info", typ)
		}
	}
	return r
}
