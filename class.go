package hasard

// Class is a cohort/roster scope. A teacher may have access to several
// classes, a student to exactly one.
type Class struct {
	ID      int    `json:"id"`
	Year    string `json:"year"`
	Section string `json:"section"`
}
