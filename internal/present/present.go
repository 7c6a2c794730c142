// Package present renders search results for terminals.
package present

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/search"
)

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorMovie  = lipgloss.Color("#F4D03F")
	colorMuted  = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

// Styles holds the styles applied to each part of the output.
type Styles struct {
	Headline lipgloss.Style
	Index    lipgloss.Style
	Person   lipgloss.Style
	Movie    lipgloss.Style
	Failure  lipgloss.Style
}

// ColorStyles are used when writing to a colour terminal.
func ColorStyles() Styles {
	return Styles{
		Headline: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Index:    lipgloss.NewStyle().Foreground(colorMuted),
		Person:   lipgloss.NewStyle().Bold(true),
		Movie:    lipgloss.NewStyle().Italic(true).Foreground(colorMovie),
		Failure:  lipgloss.NewStyle().Foreground(colorError),
	}
}

// PlainStyles leave text untouched.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Headline: plain, Index: plain, Person: plain, Movie: plain, Failure: plain}
}

// Catalog resolves ids to display names.
type Catalog interface {
	Person(id string) (domain.Person, bool)
	Movie(id string) (domain.Movie, bool)
}

// Presenter writes degree counts and step-by-step co-star narratives.
type Presenter struct {
	catalog Catalog
	styles  Styles
}

// New returns a Presenter using styles.
func New(catalog Catalog, styles Styles) *Presenter {
	return &Presenter{catalog: catalog, styles: styles}
}

// Line is one rendered step of a path.
type Line struct {
	Index  int
	From   string
	To     string
	Movie  string
	Year   int
	Source search.Step
}

// Lines resolves each step of result to names, numbered from 1.
func (p *Presenter) Lines(result search.Result) []Line {
	lines := make([]Line, 0, len(result.Steps))
	prev := result.Source
	for i, step := range result.Steps {
		movie, ok := p.catalog.Movie(step.MovieID)
		if !ok {
			movie.Title = step.MovieID
		}
		lines = append(lines, Line{
			Index:  i + 1,
			From:   p.personName(prev),
			To:     p.personName(step.PersonID),
			Movie:  movie.Title,
			Year:   movie.Year,
			Source: step,
		})
		prev = step.PersonID
	}
	return lines
}

// Render writes the result to w.
func (p *Presenter) Render(w io.Writer, result search.Result) error {
	if !result.Connected {
		_, err := fmt.Fprintln(w, p.styles.Failure.Render("Not connected."))
		return err
	}

	if _, err := fmt.Fprintln(w, p.styles.Headline.Render(fmt.Sprintf("%d degrees of separation.", result.Degrees()))); err != nil {
		return err
	}
	for _, line := range p.Lines(result) {
		_, err := fmt.Fprintf(w, "%s %s and %s starred in %s\n",
			p.styles.Index.Render(fmt.Sprintf("%d:", line.Index)),
			p.styles.Person.Render(line.From),
			p.styles.Person.Render(line.To),
			p.styles.Movie.Render(line.Movie),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// RenderError writes a one-line failure message.
func (p *Presenter) RenderError(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, p.styles.Failure.Render(msg))
	return err
}

func (p *Presenter) personName(id string) string {
	if person, ok := p.catalog.Person(id); ok {
		return person.Name
	}
	return id
}
