package config

// Role tags forming the fixed country categorisation vocabulary.
// A country absent from CountryTags is tagged TagUntagged, never dropped.
const (
	TagGeopoliticalCore  = "geopolitical_core"
	TagActiveConflict    = "active_conflict"
	TagEnergyMarkets     = "energy_markets"
	TagTechSupplyChain   = "tech_supply_chain"
	TagStrategicMinerals = "strategic_minerals"
	TagFinancialSystemic = "financial_systemic"
	TagMaritimeChoke     = "maritime_choke_points"
	TagUntagged          = "untagged"
)

// RoleTags lists the vocabulary in its canonical order, used for
// deterministic category sweeps and export column ordering.
var RoleTags = []string{
	TagGeopoliticalCore,
	TagActiveConflict,
	TagEnergyMarkets,
	TagTechSupplyChain,
	TagStrategicMinerals,
	TagFinancialSystemic,
	TagMaritimeChoke,
}

// CountryTags maps each known country to its systemic role tags.
var CountryTags = map[string][]string{
	"USA":                  {TagGeopoliticalCore, TagTechSupplyChain, TagFinancialSystemic},
	"Russia":               {TagGeopoliticalCore, TagEnergyMarkets, TagActiveConflict},
	"China":                {TagGeopoliticalCore, TagTechSupplyChain, TagStrategicMinerals},
	"Ukraine":              {TagGeopoliticalCore, TagActiveConflict},
	"Taiwan":               {TagGeopoliticalCore, TagTechSupplyChain},
	"Israel":               {TagGeopoliticalCore, TagActiveConflict},
	"Iran":                 {TagGeopoliticalCore, TagEnergyMarkets},
	"Venezuela":            {TagGeopoliticalCore, TagEnergyMarkets},
	"Palestine":            {TagActiveConflict},
	"Syria":                {TagActiveConflict},
	"Yemen":                {TagActiveConflict},
	"Afghanistan":          {TagActiveConflict},
	"Myanmar":              {TagActiveConflict},
	"Ethiopia":             {TagActiveConflict},
	"Saudi Arabia":         {TagEnergyMarkets, TagMaritimeChoke},
	"United Arab Emirates": {TagEnergyMarkets, TagMaritimeChoke},
	"Iraq":                 {TagEnergyMarkets, TagMaritimeChoke},
	"Qatar":                {TagEnergyMarkets, TagMaritimeChoke},
	"Nigeria":              {TagEnergyMarkets, TagMaritimeChoke},
	"South Korea":          {TagTechSupplyChain},
	"Japan":                {TagTechSupplyChain},
	"Netherlands":          {TagTechSupplyChain},
	"Germany":              {TagTechSupplyChain},
	"Vietnam":              {TagTechSupplyChain},
	"Mexico":               {TagTechSupplyChain},
	"Chile":                {TagStrategicMinerals},
	"Argentina":            {TagStrategicMinerals},
	"Bolivia":              {TagStrategicMinerals},
	"DR Congo":             {TagStrategicMinerals},
	"Australia":            {TagStrategicMinerals},
	"South Africa":         {TagStrategicMinerals},
	"United Kingdom":       {TagFinancialSystemic},
	"Turkey":               {TagFinancialSystemic},
	"Brazil":               {TagFinancialSystemic},
	"India":                {TagFinancialSystemic},
}

// Risk indicator column names present in the geopolitical source tables.
var RiskIndicators = []string{
	"geopolitical_risk",
	"conflicts",
	"bilateral_tensions",
	"trade_policy_uncertainty",
	"economic_policy_uncertainty",
}
