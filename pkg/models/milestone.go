package models

// Milestone is a point threshold that unlocks a visual reward
type Milestone struct {
	Tier      string    `json:"tier" yaml:"tier"`
	Threshold int       `json:"threshold" yaml:"threshold"`
	Color     string    `json:"color" yaml:"color"`
	Name      Localized `json:"name" yaml:"name"`
}

// NextMilestone is the next tier to reach and the points still missing
type NextMilestone struct {
	Milestone Milestone `json:"milestone"`
	Remaining int       `json:"remaining"`
}
