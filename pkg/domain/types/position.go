package types

// Position is the player leaderboard filter
type Position string

const (
	PositionAll  Position = "all"
	PositionQB   Position = "qb"
	PositionRB   Position = "rb"
	PositionWR   Position = "wr"
	PositionTE   Position = "te"
	PositionFlex Position = "flex"
)

// Positions lists the filters in display order
var Positions = []Position{
	PositionAll,
	PositionQB,
	PositionRB,
	PositionWR,
	PositionTE,
	PositionFlex,
}

var positionLabels = map[Position]string{
	PositionAll:  "All Positions",
	PositionQB:   "Quarterbacks",
	PositionRB:   "Running Backs",
	PositionWR:   "Wide Receivers",
	PositionTE:   "Tight Ends",
	PositionFlex: "Flex (RB/WR/TE)",
}

// String returns the string representation
func (p Position) String() string {
	return string(p)
}

// IsValid checks if the position is a known filter
func (p Position) IsValid() bool {
	_, ok := positionLabels[p]
	return ok
}

// Label returns the display label
func (p Position) Label() string {
	return positionLabels[p]
}

// IsMerged returns true for filters that combine several position groups
func (p Position) IsMerged() bool {
	return p == PositionAll || p == PositionFlex
}

// Tag returns the upper-case position tag shown next to a player ("QB").
// Merged filters have no tag.
func (p Position) Tag() string {
	switch p {
	case PositionQB:
		return "QB"
	case PositionRB:
		return "RB"
	case PositionWR:
		return "WR"
	case PositionTE:
		return "TE"
	default:
		return ""
	}
}

// ParsePosition returns the filter for s, falling back to PositionAll
func ParsePosition(s string) Position {
	p := Position(s)
	if !p.IsValid() {
		return PositionAll
	}
	return p
}

// SortKey is the team ranking metric
type SortKey string

const (
	SortByEPAPerPlay SortKey = "epaPerPlay"
	SortByTotalEPA   SortKey = "totalEPA"
)

// String returns the string representation
func (k SortKey) String() string {
	return string(k)
}

// IsValid checks if the sort key is known
func (k SortKey) IsValid() bool {
	return k == SortByEPAPerPlay || k == SortByTotalEPA
}

// ParseSortKey returns the key for s, falling back to SortByEPAPerPlay
func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	if !k.IsValid() {
		return SortByEPAPerPlay
	}
	return k
}

// Tier is the color band of an EPA/play value
type Tier string

const (
	TierStrong   Tier = "strong"
	TierModerate Tier = "moderate"
	TierWeak     Tier = "weak"
)

// String returns the string representation
func (t Tier) String() string {
	return string(t)
}

// LoadState is the state of a dataset loader
type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
)

// String returns the string representation
func (s LoadState) String() string {
	return string(s)
}
