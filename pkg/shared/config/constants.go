package config

const (
	// Preview window
	ScreenWidth  = 800
	ScreenHeight = 600

	// Asset tree layout, relative to the assets dir
	ImageDir              = "img"
	FontFile              = "OpenSans-Regular.ttf"
	SpritesFile           = "sprites.yaml"
	ObjectsFile           = "objects.yaml"
	DemoScenarioFile      = "scenario_01.yaml"
	CampaignPlanFile      = "campaign_01.yaml"
	AgentCampaignInfoFile = "agent_campaign_info.yaml"

	// Text
	DefaultFontSize = 24.0

	// Dev reload
	ReloadPath = "/reload"
)
