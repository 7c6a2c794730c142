package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/present"
	"github.com/vanshika/degrees/internal/resolve"
	"github.com/vanshika/degrees/internal/service"
)

type pathOptions struct {
	from   string
	to     string
	fromID string
	toID   string
}

func newPathCmd(a *app) *cobra.Command {
	var opts pathOptions
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the shortest chain between two people without prompting",
		Example: `  degrees path --from "Kevin Bacon" --to "Tom Hanks" --dir small
  degrees path --from-id 102 --to-id 158`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPath(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.from, "from", "", "source person name")
	f.StringVar(&opts.to, "to", "", "target person name")
	f.StringVar(&opts.fromID, "from-id", "", "source person id")
	f.StringVar(&opts.toID, "to-id", "", "target person id")
	cmd.MarkFlagsMutuallyExclusive("from", "from-id")
	cmd.MarkFlagsMutuallyExclusive("to", "to-id")
	cmd.MarkFlagsOneRequired("from", "from-id")
	cmd.MarkFlagsOneRequired("to", "to-id")
	return cmd
}

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup NAME",
		Short: "List everyone with the given name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLookup(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *app) runPath(ctx context.Context, opts pathOptions) error {
	ds, logger, err := a.load(ctx, nil)
	if err != nil {
		return err
	}
	defer ds.Close(context.Background())

	svc := service.NewDegreesService(ds.Dataset, nil, logger)
	presenter := present.New(ds.Dataset, a.styles())

	source, err := a.endpoint(ctx, svc, opts.fromID, opts.from)
	if err != nil {
		return a.reportLookupError(presenter, err)
	}
	target, err := a.endpoint(ctx, svc, opts.toID, opts.to)
	if err != nil {
		return a.reportLookupError(presenter, err)
	}

	result, err := svc.ShortestPath(ctx, source, target)
	if err != nil {
		return a.reportLookupError(presenter, err)
	}
	return presenter.Render(a.out, result)
}

func (a *app) endpoint(ctx context.Context, svc *service.DegreesService, id, name string) (string, error) {
	if id != "" {
		return id, nil
	}
	return svc.ResolveName(ctx, name)
}

func (a *app) reportLookupError(presenter *present.Presenter, err error) error {
	var ambiguous *service.AmbiguousNameError
	if errors.As(err, &ambiguous) {
		fmt.Fprintf(a.errOut, "Which '%s'? Pass --from-id/--to-id with one of:\n", ambiguous.Name)
		writeCandidates(a.errOut, ambiguous.Candidates)
		return errReported
	}
	if resolve.IsNotFound(err) {
		_ = presenter.RenderError(a.out, msgNotFound)
		return errReported
	}
	return err
}

func (a *app) runLookup(ctx context.Context, name string) error {
	ds, _, err := a.load(ctx, nil)
	if err != nil {
		return err
	}
	defer ds.Close(context.Background())

	matches := ds.ResolveName(name)
	if len(matches) == 0 {
		_ = present.New(ds.Dataset, a.styles()).RenderError(a.out, msgNotFound)
		return errReported
	}
	writeCandidates(a.out, matches)
	return nil
}

func writeCandidates(w io.Writer, people []domain.Person) {
	for _, p := range people {
		birth := ""
		if p.Birth > 0 {
			birth = fmt.Sprint(p.Birth)
		}
		fmt.Fprintf(w, "ID: %s, Name: %s, Birth: %s\n", p.ID, p.Name, birth)
	}
}
