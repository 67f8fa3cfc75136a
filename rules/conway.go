package rules

const (
	// BirthNeighbors is the exact count that brings a dead cell to life
	BirthNeighbors = 3
	// SurviveMin and SurviveMax bound the counts that keep a live cell alive
	SurviveMin = 2
	SurviveMax = 3
)

/*
ApplyConwayRules returns the next state of a cell under the fixed B3/S23 rule.

  - alive with 2 or 3 neighbors stays alive, otherwise dies
  - dead with exactly 3 neighbors is born, otherwise stays dead
*/
func ApplyConwayRules(alive bool, neighbors int) bool {
	if alive {
		return neighbors >= SurviveMin && neighbors <= SurviveMax
	}
	return neighbors == BirthNeighbors
}
