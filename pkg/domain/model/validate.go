package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tidwall/gjson"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindString
)

type fieldSpec struct {
	name string
	kind fieldKind
}

var (
	leagueFields = []fieldSpec{
		{"totalPlays", kindNumber},
		{"totalTouchdowns", kindNumber},
		{"passingPlays", kindNumber},
		{"rushingPlays", kindNumber},
	}

	teamFields = []fieldSpec{
		{"team", kindString},
		{"epaPerPlay", kindNumber},
		{"totalEPA", kindNumber},
		{"plays", kindNumber},
		{"passEpaPerPlay", kindNumber},
		{"passTotalEPA", kindNumber},
		{"passPlays", kindNumber},
		{"rushEpaPerPlay", kindNumber},
		{"rushTotalEPA", kindNumber},
		{"rushPlays", kindNumber},
	}

	baseFields = []fieldSpec{
		{"player", kindString},
		{"epaPerPlay", kindNumber},
		{"totalEPA", kindNumber},
	}

	playerFields = map[string][]fieldSpec{
		"qb": append(append([]fieldSpec{}, baseFields...),
			fieldSpec{"plays", kindNumber},
			fieldSpec{"passingYards", kindNumber},
			fieldSpec{"touchdowns", kindNumber},
			fieldSpec{"interceptions", kindNumber},
			fieldSpec{"completions", kindNumber},
			fieldSpec{"attempts", kindNumber},
		),
		"rb": append(append([]fieldSpec{}, baseFields...),
			fieldSpec{"plays", kindNumber},
			fieldSpec{"rushingYards", kindNumber},
			fieldSpec{"touchdowns", kindNumber},
		),
		"wr": receiverFields(),
		"te": receiverFields(),
	}

	playerGroups = []string{"qb", "rb", "wr", "te"}
)

func receiverFields() []fieldSpec {
	return append(append([]fieldSpec{}, baseFields...),
		fieldSpec{"targets", kindNumber},
		fieldSpec{"receivingYards", kindNumber},
		fieldSpec{"touchdowns", kindNumber},
		fieldSpec{"receptions", kindNumber},
	)
}

// ValidatePayload checks that a raw season document has every field the
// views read, so malformed snapshots fail with ErrInvalidDataset instead of
// rendering zero values.
func ValidatePayload(data []byte) error {
	if !gjson.ValidBytes(data) {
		return goerr.Wrap(ErrInvalidDataset, "payload is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return goerr.Wrap(ErrInvalidDataset, "payload is not a JSON object")
	}

	if err := checkField(root, "", fieldSpec{"season", kindNumber}); err != nil {
		return err
	}

	league := root.Get("leagueStats")
	if !league.IsObject() {
		return invalidAt("leagueStats", "object expected")
	}
	for _, f := range leagueFields {
		if err := checkField(league, "leagueStats.", f); err != nil {
			return err
		}
	}

	teams := root.Get("teamStats")
	if !teams.IsArray() {
		return invalidAt("teamStats", "array expected")
	}
	for i, team := range teams.Array() {
		prefix := fmt.Sprintf("teamStats.%d.", i)
		for _, f := range teamFields {
			if err := checkField(team, prefix, f); err != nil {
				return err
			}
		}
	}

	players := root.Get("playerStats")
	if !players.IsObject() {
		return invalidAt("playerStats", "object expected")
	}
	for _, group := range playerGroups {
		rows := players.Get(group)
		if !rows.IsArray() {
			return invalidAt("playerStats."+group, "array expected")
		}
		for i, row := range rows.Array() {
			prefix := fmt.Sprintf("playerStats.%s.%d.", group, i)
			for _, f := range playerFields[group] {
				if err := checkField(row, prefix, f); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func checkField(obj gjson.Result, prefix string, f fieldSpec) error {
	v := obj.Get(f.name)
	if !v.Exists() {
		return invalidAt(prefix+f.name, "missing field")
	}
	switch f.kind {
	case kindNumber:
		if v.Type != gjson.Number {
			return invalidAt(prefix+f.name, "number expected")
		}
	case kindString:
		if v.Type != gjson.String {
			return invalidAt(prefix+f.name, "string expected")
		}
	}
	return nil
}

func invalidAt(path, reason string) error {
	return goerr.Wrap(ErrInvalidDataset, reason, goerr.V("path", path))
}

// Validate checks semantic invariants of a decoded dataset
func (d *SeasonDataset) Validate() error {
	if d.Season <= 0 {
		return goerr.Wrap(ErrInvalidDataset, "season must be positive",
			goerr.V("season", d.Season))
	}

	seen := make(map[string]bool, len(d.TeamStats))
	for i, t := range d.TeamStats {
		if !IsKnownTeam(t.Team) {
			return goerr.Wrap(ErrInvalidDataset, "unknown team code",
				goerr.V("index", i),
				goerr.V("team", t.Team))
		}
		if seen[t.Team.String()] {
			return goerr.Wrap(ErrInvalidDataset, "duplicate team code",
				goerr.V("team", t.Team))
		}
		seen[t.Team.String()] = true
	}

	return nil
}
