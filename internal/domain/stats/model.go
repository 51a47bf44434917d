package stats

// Summary carries the registry dashboard counts.
type Summary struct {
	Families             int64 `json:"families"`
	Members              int64 `json:"members"`
	Pastors              int64 `json:"pastors"`
	CurrentRelationships int64 `json:"current_relationships"`
}
