package resolve

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/vanshika/degrees/internal/domain"
)

// PromptChooser lists the candidates and reads an id from a line of input.
type PromptChooser struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptChooser returns a PromptChooser. The reader is shared with any
// other prompt reading from the same input, so pass the same *bufio.Reader.
func NewPromptChooser(in *bufio.Reader, out io.Writer) *PromptChooser {
	return &PromptChooser{in: in, out: out}
}

// Choose implements Chooser.
func (p *PromptChooser) Choose(ctx context.Context, name string, candidates []domain.Person) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "Which '%s'?\n", name)
	for _, c := range candidates {
		fmt.Fprintf(p.out, "ID: %s, Name: %s, Birth: %s\n", c.ID, c.Name, formatBirth(c.Birth))
	}
	fmt.Fprint(p.out, "Intended Person ID: ")

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read selection: %w", err)
	}
	id := strings.TrimSpace(line)
	if id == "" {
		return "", ErrNoSelection
	}
	return id, nil
}

// SelectChooser presents the candidates in an interactive terminal list.
type SelectChooser struct {
	accessible bool
}

// NewSelectChooser returns a SelectChooser. Accessible mode replaces the
// list widget with numbered prompts for screen readers.
func NewSelectChooser(accessible bool) *SelectChooser {
	return &SelectChooser{accessible: accessible}
}

// Choose implements Chooser.
func (s *SelectChooser) Choose(ctx context.Context, name string, candidates []domain.Person) (string, error) {
	options := make([]huh.Option[string], 0, len(candidates))
	for _, c := range candidates {
		options = append(options, huh.NewOption(candidateLabel(c), c.ID))
	}

	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Which '%s'?", name)).
				Options(options...).
				Value(&choice),
		),
	).WithAccessible(s.accessible)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrNoSelection
		}
		return "", fmt.Errorf("select person: %w", err)
	}
	if choice == "" {
		return "", ErrNoSelection
	}
	return choice, nil
}

func candidateLabel(p domain.Person) string {
	if birth := formatBirth(p.Birth); birth != "" {
		return fmt.Sprintf("%s (born %s) [ID %s]", p.Name, birth, p.ID)
	}
	return fmt.Sprintf("%s [ID %s]", p.Name, p.ID)
}

var (
	_ Chooser = (*PromptChooser)(nil)
	_ Chooser = (*SelectChooser)(nil)
)
