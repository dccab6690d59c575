package search

// State holds search state
type State struct {
	Query        string
	Matches      []int // node indices in tree order space
	CurrentMatch int   // position in Matches
}

// MatchResult represents a search match
type MatchResult struct {
	Index    int
	Label    string
	Distance int // 0 for substring matches
}
