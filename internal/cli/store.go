package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/hgx/internal/codec"
	"github.com/roach88/hgx/internal/ident"
	"github.com/roach88/hgx/internal/store"
)

// Storage backends accepted by --backend.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// ValidBackends lists the accepted --backend values.
var ValidBackends = []string{BackendSQLite, BackendBadger}

// EnvDB names the environment variable that sets the default --db.
const EnvDB = "HGX_DB"

// StoreOptions holds flags shared by the persistence commands.
type StoreOptions struct {
	*RootOptions
	DB      string // SQLite file or Badger directory
	Backend string // "sqlite" | "badger"
	Name    string // stored graph name
	Node    string // edges command: node to look up
	Output  string // load command: output file path
}

// SaveResult is printed after a graph is saved.
type SaveResult struct {
	Name    string `json:"name"`
	ID      string `json:"id,omitempty"`
	Backend string `json:"backend"`
	Nodes   int    `json:"nodes"`
	Edges   int    `json:"edges"`
}

func addStoreFlags(cmd *cobra.Command, opts *StoreOptions, withName bool) {
	cmd.Flags().StringVar(&opts.DB, "db", os.Getenv(EnvDB), "SQLite file or Badger directory (default $"+EnvDB+", then hgx.db or hgx.badger)")
	cmd.Flags().StringVar(&opts.Backend, "backend", BackendSQLite, "storage backend (sqlite|badger)")
	if withName {
		cmd.Flags().StringVar(&opts.Name, "name", "", "stored graph name")
		_ = cmd.MarkFlagRequired("name")
	}
}

// backend is an open store of either kind.
type backend struct {
	kind   string
	sqlite *store.Store
	snaps  *store.Snapshots
}

func (o *StoreOptions) open(formatter *OutputFormatter) (*backend, error) {
	if !slices.Contains(ValidBackends, o.Backend) {
		return nil, formatter.Fail(ErrCodeInvalidFlag, ExitCommandError,
			fmt.Sprintf("invalid backend %q: must be one of %v", o.Backend, ValidBackends), nil)
	}
	path := o.DB
	if path == "" {
		path = "hgx.db"
		if o.Backend == BackendBadger {
			path = "hgx.badger"
		}
	}
	formatter.VerboseLog("Opening %s store at %s", o.Backend, path)

	b := &backend{kind: o.Backend}
	var err error
	if o.Backend == BackendBadger {
		b.snaps, err = store.OpenSnapshots(path, false)
	} else {
		b.sqlite, err = store.Open(path)
	}
	if err != nil {
		return nil, formatter.Fail(ErrCodeStoreFailed, ExitCommandError, "opening store", err)
	}
	return b, nil
}

func (b *backend) Close() error {
	if b.snaps != nil {
		return b.snaps.Close()
	}
	return b.sqlite.Close()
}

func saveDoc[N ident.ID](ctx context.Context, b *backend, name string, doc *codec.Document[N]) (string, error) {
	if b.snaps != nil {
		return "", store.PutSnapshot(ctx, b.snaps, name, doc)
	}
	return store.Save(ctx, b.sqlite, name, doc)
}

func loadDoc[N ident.ID](ctx context.Context, b *backend, name string) (*codec.Document[N], error) {
	if b.snaps != nil {
		return store.GetSnapshot[N](ctx, b.snaps, name)
	}
	return store.Load[N](ctx, b.sqlite, name)
}

// failStore reports a store error. Missing graphs are command errors.
func failStore(formatter *OutputFormatter, message string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return formatter.Fail(ErrCodeNotFound, ExitCommandError, message, err)
	}
	return formatter.Fail(ErrCodeStoreFailed, ExitCommandError, message, err)
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save <file> --name <name>",
		Short: "Save a hypergraph to a database",
		Long: `Save a hypergraph file under a name, replacing any graph stored
under the same name.

The sqlite backend keeps nodes and edges in tables so that membership
can be queried (see "hgx edges"). The badger backend keeps whole
snapshots.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runSave[int](opts, args[0], cmd) },
				func() error { return runSave[string](opts, args[0], cmd) },
			)
		},
	}
	addStoreFlags(cmd, opts, true)
	return cmd
}

func runSave[N ident.ID](opts *StoreOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	h, err := loadGraph[N](opts.RootOptions, path)
	if err != nil {
		return failLoad(formatter, err)
	}

	b, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer b.Close()

	id, err := saveDoc(cmd.Context(), b, opts.Name, codec.FromHypergraph(h))
	if err != nil {
		return failStore(formatter, "saving graph", err)
	}
	opts.logger().Debug("saved graph", "name", opts.Name, "backend", b.kind, "id", id)

	result := SaveResult{Name: opts.Name, ID: id, Backend: b.kind, Nodes: h.NumNodes(), Edges: h.NumEdges()}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Saved %s (%d nodes, %d edges)\n", result.Name, result.Nodes, result.Edges)
	return nil
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load --name <name>",
		Short: "Load a hypergraph from a database",
		Long: `Load a stored hypergraph and write it to --output, or to stdout as
JSON. The --ids flag must match the id kind the graph was saved with.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runLoad[int](opts, cmd) },
				func() error { return runLoad[string](opts, cmd) },
			)
		},
	}
	addStoreFlags(cmd, opts, true)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	return cmd
}

func runLoad[N ident.ID](opts *StoreOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	b, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer b.Close()

	doc, err := loadDoc[N](cmd.Context(), b, opts.Name)
	if err != nil {
		return failStore(formatter, fmt.Sprintf("loading %s", opts.Name), err)
	}
	h, err := doc.Build(graphOptions(opts.RootOptions)...)
	if err != nil {
		return formatter.Fail(ErrCodeGeneric, ExitFailure, fmt.Sprintf("building %s", opts.Name), err)
	}
	return emitGraph(opts.RootOptions, formatter, opts.Output, h)
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored hypergraphs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}
	addStoreFlags(cmd, opts, false)
	return cmd
}

func runList(opts *StoreOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	b, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer b.Close()

	if b.snaps != nil {
		names, err := b.snaps.List(cmd.Context())
		if err != nil {
			return failStore(formatter, "listing snapshots", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(names)
		}
		for _, name := range names {
			fmt.Fprintln(formatter.Writer, name)
		}
		return nil
	}

	graphs, err := b.sqlite.List(cmd.Context())
	if err != nil {
		return failStore(formatter, "listing graphs", err)
	}
	if formatter.Format == "json" {
		return formatter.Success(graphs)
	}
	for _, g := range graphs {
		fmt.Fprintf(formatter.Writer, "%s\t%s ids\t%d nodes\t%d edges\n", g.Name, g.IDKind, g.Nodes, g.Edges)
	}
	return nil
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "delete --name <name>",
		Short:         "Delete a stored hypergraph",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd)
		},
	}
	addStoreFlags(cmd, opts, true)
	return cmd
}

func runDelete(opts *StoreOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	b, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer b.Close()

	if b.snaps != nil {
		err = b.snaps.Delete(cmd.Context(), opts.Name)
	} else {
		err = b.sqlite.Delete(cmd.Context(), opts.Name)
	}
	if err != nil {
		return failStore(formatter, fmt.Sprintf("deleting %s", opts.Name), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]string{"deleted": opts.Name})
	}
	fmt.Fprintf(formatter.Writer, "✓ Deleted %s\n", opts.Name)
	return nil
}

// NewEdgesCommand creates the edges command.
func NewEdgesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edges --name <name> --node <node>",
		Short: "List stored edges containing a node",
		Long: `Query a graph in the sqlite backend for every edge that contains
--node, without loading the whole graph.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return byIDs(rootOpts,
				func() error { return runEdges[int](opts, cmd) },
				func() error { return runEdges[string](opts, cmd) },
			)
		},
	}
	addStoreFlags(cmd, opts, true)
	cmd.Flags().StringVar(&opts.Node, "node", "", "node to look up")
	_ = cmd.MarkFlagRequired("node")
	return cmd
}

func runEdges[N ident.ID](opts *StoreOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	if opts.Backend != BackendSQLite {
		return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError, "edges requires the sqlite backend", nil)
	}
	n, err := parseID[N](opts.Node)
	if err != nil {
		return formatter.Fail(ErrCodeInvalidFlag, ExitCommandError, "invalid --node", err)
	}

	b, err := opts.open(formatter)
	if err != nil {
		return err
	}
	defer b.Close()

	edges, err := store.EdgesContaining(cmd.Context(), b.sqlite, opts.Name, n)
	if err != nil {
		return failStore(formatter, fmt.Sprintf("querying %s", opts.Name), err)
	}

	if formatter.Format == "json" {
		return formatter.Success(edges)
	}
	for _, e := range edges {
		fmt.Fprintln(formatter.Writer, ident.KeyOf(e))
	}
	return nil
}
