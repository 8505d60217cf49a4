package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/iw2rmb/inkwell"
	"github.com/iw2rmb/inkwell/export"
	"github.com/iw2rmb/inkwell/store"
)

type NewCommand struct {
	Kind  string `short:"k" long:"kind" choice:"contract" choice:"proposal" choice:"term" default:"contract" description:"Template kind"`
	Title string `short:"t" long:"title" required:"true" description:"Template title"`
	From  string `short:"f" long:"from" description:"Seed the body from an HTML file" value-name:"<file>"`
}

func (command *NewCommand) Execute(args []string) error {
	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	kind, err := parseKind(command.Kind)
	if err != nil {
		return err
	}
	var body string
	if command.From != "" {
		data, err := os.ReadFile(command.From)
		if err != nil {
			return fmt.Errorf("read %s: %w", command.From, err)
		}
		body = string(data)
	}
	t, err := e.store.Create(ctx, store.Template{Kind: kind, Title: command.Title, Body: body})
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, t.ID)
	return nil
}

type ListCommand struct {
	Kind string `short:"k" long:"kind" choice:"contract" choice:"proposal" choice:"term" description:"Only list this kind"`
}

func (command *ListCommand) Execute(args []string) error {
	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	ts, err := e.store.List(ctx, store.Kind(command.Kind))
	if err != nil {
		return err
	}
	return writeList(ts)
}

func writeList(ts []store.Template) error {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTITLE\tUPDATED")
	for _, t := range ts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Kind, t.Title, t.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

type ExportCommand struct {
	ID     string `long:"id" required:"true" description:"Template id"`
	Out    string `short:"o" long:"out" description:"Output file (defaults to a name derived from the title)" value-name:"<file>"`
	Format string `long:"format" choice:"pdf" choice:"html" default:"pdf" description:"Output format"`
}

func (command *ExportCommand) Execute(args []string) error {
	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := e.store.Get(ctx, command.ID)
	if err != nil {
		return fmt.Errorf("load template %s: %w", command.ID, err)
	}
	res, err := export.Export(ctx, export.Document{
		ID:        t.ID,
		Title:     t.Title,
		Kind:      string(t.Kind),
		Body:      t.Body,
		UpdatedAt: t.UpdatedAt,
	}, export.Format(command.Format))
	if err != nil {
		return err
	}
	out := command.Out
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	e.log.Info().Str("id", t.ID).Str("file", out).Int("bytes", len(res.Data)).Msg("exported")
	abs, _ := filepath.Abs(out)
	fmt.Fprintln(stdout, abs)
	return nil
}

type DeleteCommand struct {
	ID string `long:"id" required:"true" description:"Template id"`
}

func (command *DeleteCommand) Execute(args []string) error {
	ctx := context.Background()
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.store.Delete(ctx, command.ID); err != nil {
		return fmt.Errorf("delete template %s: %w", command.ID, err)
	}
	if d := e.drafts(ctx); d != nil {
		defer d.Close()
		if err := d.Discard(ctx, command.ID); err != nil {
			e.log.Warn().Err(err).Msg("discard draft failed")
		}
	}
	return nil
}

type VersionCommand struct{}

func (command *VersionCommand) Execute(args []string) error {
	fmt.Fprintln(stdout, inkwell.Generator())
	return nil
}
