package domain

// Movie is a title with its cast as held by the in-memory dataset.
type Movie struct {
	ID    string
	Title string
	Year  int
	Stars []string
}

// MovieRecord is one parsed row of the movies table.
type MovieRecord struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

// StarRecord links a person to a movie they appeared in.
type StarRecord struct {
	PersonID string `json:"personId"`
	MovieID  string `json:"movieId"`
}
