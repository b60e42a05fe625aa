package model

import (
	"fmt"

	"github.com/secmon-lab/gridiron/pkg/domain/types"
)

// LogoURLTemplate is the CDN location of team logos, keyed by team code
const LogoURLTemplate = "https://a.espncdn.com/i/teamlogos/nfl/500/%s.png"

// DefaultTeam is preselected on the team analysis page
const DefaultTeam types.TeamCode = "KC"

// TeamColors is the branding of a team
type TeamColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// fallbackColors is used for codes missing from the branding table
var fallbackColors = TeamColors{Primary: "#666", Secondary: "#999"}

// Teams lists the 32 franchise codes in alphabetical order
var Teams = []types.TeamCode{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LA", "LAC", "LV", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

var teamColors = map[types.TeamCode]TeamColors{
	"ARI": {Primary: "#97233F", Secondary: "#FFB612"},
	"ATL": {Primary: "#A71930", Secondary: "#000000"},
	"BAL": {Primary: "#241773", Secondary: "#000000"},
	"BUF": {Primary: "#00338D", Secondary: "#C60C30"},
	"CAR": {Primary: "#0085CA", Secondary: "#101820"},
	"CHI": {Primary: "#0B162A", Secondary: "#C83803"},
	"CIN": {Primary: "#FB4F14", Secondary: "#000000"},
	"CLE": {Primary: "#311D00", Secondary: "#FF3C00"},
	"DAL": {Primary: "#041E42", Secondary: "#869397"},
	"DEN": {Primary: "#FB4F14", Secondary: "#002244"},
	"DET": {Primary: "#0076B6", Secondary: "#B0B7BC"},
	"GB":  {Primary: "#203731", Secondary: "#FFB612"},
	"HOU": {Primary: "#03202F", Secondary: "#A71930"},
	"IND": {Primary: "#002C5F", Secondary: "#A2AAAD"},
	"JAX": {Primary: "#006778", Secondary: "#D7A22A"},
	"KC":  {Primary: "#E31837", Secondary: "#FFB81C"},
	"LA":  {Primary: "#003594", Secondary: "#FFA300"},
	"LAC": {Primary: "#0080C6", Secondary: "#FFC20E"},
	"LV":  {Primary: "#000000", Secondary: "#A5ACAF"},
	"MIA": {Primary: "#008E97", Secondary: "#FC4C02"},
	"MIN": {Primary: "#4F2683", Secondary: "#FFC62F"},
	"NE":  {Primary: "#002244", Secondary: "#C60C30"},
	"NO":  {Primary: "#D3BC8D", Secondary: "#101820"},
	"NYG": {Primary: "#0B2265", Secondary: "#A71930"},
	"NYJ": {Primary: "#125740", Secondary: "#000000"},
	"PHI": {Primary: "#004C54", Secondary: "#A5ACAF"},
	"PIT": {Primary: "#FFB612", Secondary: "#101820"},
	"SEA": {Primary: "#002244", Secondary: "#69BE28"},
	"SF":  {Primary: "#AA0000", Secondary: "#B3995D"},
	"TB":  {Primary: "#D50A0A", Secondary: "#FF7900"},
	"TEN": {Primary: "#0C2340", Secondary: "#4B92DB"},
	"WAS": {Primary: "#5A1414", Secondary: "#FFB612"},
}

// IsKnownTeam checks if code is one of the 32 franchise codes
func IsKnownTeam(code types.TeamCode) bool {
	_, ok := teamColors[code]
	return ok
}

// ColorsOf returns the branding of a team, or neutral grays when unknown
func ColorsOf(code types.TeamCode) TeamColors {
	if c, ok := teamColors[code]; ok {
		return c
	}
	return fallbackColors
}

// LogoURL returns the logo image URL of a team
func LogoURL(code types.TeamCode) string {
	return fmt.Sprintf(LogoURLTemplate, code)
}
