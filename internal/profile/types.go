package profile

// Attributes carries the structured traits the fallback generator
// selects. The hosted model returns free-form markdown only, so Data is
// nil on that path.
type Attributes struct {
	Color     string   `json:"color"`
	Forms     []string `json:"forms"`
	Challenge string   `json:"challenge"`
}

// Result is one generated destiny profile.
type Result struct {
	Profile string      `json:"profile"`
	Data    *Attributes `json:"data"`
}

// Stored wraps a Result kept in the session store together with the
// submission sequence that produced it.
type Stored struct {
	Seq    int64  `json:"seq"`
	Result Result `json:"result"`
}
