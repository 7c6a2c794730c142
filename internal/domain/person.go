package domain

// Person is a cast member as held by the in-memory dataset.
type Person struct {
	ID     string
	Name   string
	Birth  int
	Movies []string
}

// PersonRecord is one parsed row of the people table.
type PersonRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Birth int    `json:"birth,omitempty"`
}
