package battle

import "fmt"

// Award is what the player gets after winning a campaign node.
type Award struct {
	Recruits []ObjType `yaml:"recruits"`
}

// CampaignNode is one battle of the campaign.
type CampaignNode struct {
	Scenario Scenario `yaml:"scenario"`
	Award    Award    `yaml:"award"`
}

// Plan is the ordered list of campaign battles.
type Plan struct {
	InitialAgents []ObjType      `yaml:"initial_agents"`
	Nodes         []CampaignNode `yaml:"nodes"`
}

// AgentInfo holds the campaign-only properties of an agent type.
type AgentInfo struct {
	Cost     int       `yaml:"cost"`
	Upgrades []ObjType `yaml:"upgrades"`
}

// Validate checks every agent and scenario of the plan against the prototypes.
func (p *Plan) Validate(ps Prototypes) error {
	if len(p.Nodes) == 0 {
		return fmt.Errorf("campaign has no nodes")
	}
	for _, typ := range p.InitialAgents {
		if _, ok := ps[typ]; !ok {
			return fmt.Errorf("initial_agents: %w: %q", ErrUnknownObjType, typ)
		}
	}
	for i := range p.Nodes {
		node := &p.Nodes[i]
		if err := node.Scenario.Validate(ps); err != nil {
			return fmt.Errorf("nodes[%d]: scenario: %w", i, err)
		}
		for _, typ := range node.Award.Recruits {
			if _, ok := ps[typ]; !ok {
				return fmt.Errorf("nodes[%d]: award: %w: %q", i, ErrUnknownObjType, typ)
			}
		}
	}
	return nil
}
