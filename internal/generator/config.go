package generator

// Config drives the synthetic data generator.
type Config struct {
	NumPeople int
	NumMovies int
	// MinCast and MaxCast bound how many people star in each movie.
	MinCast int
	MaxCast int
	// RecurringChance is the probability that a cast slot goes to someone
	// who has already appeared in a movie.
	RecurringChance float64
	// UnknownBirthChance leaves the birth year blank.
	UnknownBirthChance float64
	Seed               int64
}

// DefaultConfig returns settings roughly the shape of the large sample dataset.
func DefaultConfig() Config {
	return Config{
		NumPeople:          20000,
		NumMovies:          5000,
		MinCast:            2,
		MaxCast:            6,
		RecurringChance:    0.6,
		UnknownBirthChance: 0.1,
		Seed:               42,
	}
}
