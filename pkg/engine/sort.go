package engine

// byScoreDiff orders candidates best first. Use with sort.Stable so equal
// scores keep the rules engine's enumeration order.
type byScoreDiff []ScoredMove

func (a byScoreDiff) Len() int           { return len(a) }
func (a byScoreDiff) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byScoreDiff) Less(i, j int) bool { return a[i].Score > a[j].Score }
