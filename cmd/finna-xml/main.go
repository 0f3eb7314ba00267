// Command finna-xml queries, reformats, and stores XML documents using the
// finna-xml document model.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	finnaxml "github.com/NatLibFi/finna-xml"
	"github.com/NatLibFi/finna-xml/pkg/docstore"
)

func main() {
	klog.InitFlags(nil)
	root := newRootCommand()
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type documentFlags struct {
	namespace string
	prefix    string
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.namespace, "namespace", "", "default namespace URI for unqualified names")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "prefix to emit for the default namespace")
}

func (f *documentFlags) load(path string) (*finnaxml.Document, error) {
	var opts []finnaxml.Option
	if f.namespace != "" {
		opts = append(opts, finnaxml.WithDefaultNamespace(f.namespace))
	}
	if f.prefix != "" {
		opts = append(opts, finnaxml.WithDefaultPrefix(f.prefix))
	}
	doc := finnaxml.New(opts...)
	if err := doc.ParseFile(path); err != nil {
		return nil, err
	}
	klog.V(1).Infof("parsed %s, %d namespace bindings", path, len(doc.Namespaces()))
	return doc, nil
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "finna-xml",
		Short:         "Query, reformat, and store XML documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newGetCommand(), newRenderCommand(), newStoreCommand())
	return cmd
}

func newGetCommand() *cobra.Command {
	var docFlags documentFlags
	var pathExpr string
	var first, trim, keepEmpty bool

	cmd := &cobra.Command{
		Use:   "get FILE",
		Short: "Evaluate a path expression and print the matching values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docFlags.load(args[0])
			if err != nil {
				return err
			}
			path, err := finnaxml.ParsePath(pathExpr)
			if err != nil {
				return err
			}
			var valueOpts []finnaxml.ValueOption
			if trim {
				valueOpts = append(valueOpts, finnaxml.WithTrimValues())
			}
			if keepEmpty {
				valueOpts = append(valueOpts, finnaxml.WithEmptyValues())
			}
			if first {
				value, err := doc.FirstValue(nil, path, valueOpts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}
			values, err := doc.AllValues(nil, path, valueOpts...)
			if err != nil {
				return err
			}
			klog.V(1).Infof("path %q matched %d values", pathExpr, len(values))
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	docFlags.register(cmd)
	cmd.Flags().StringVar(&pathExpr, "path", "", "slash-delimited path expression")
	cmd.Flags().BoolVar(&first, "first", false, "print only the first match")
	cmd.Flags().BoolVar(&trim, "trim", false, "trim whitespace around values")
	cmd.Flags().BoolVar(&keepEmpty, "keep-empty", false, "keep empty values in the output")
	return cmd
}

func newRenderCommand() *cobra.Command {
	var docFlags documentFlags
	var indent int
	var trim, omitPrefix bool

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Parse a document and write it back out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docFlags.load(args[0])
			if err != nil {
				return err
			}
			var opts []finnaxml.RenderOption
			if indent > 0 {
				opts = append(opts, finnaxml.WithIndent(indent))
			}
			if trim {
				opts = append(opts, finnaxml.WithTrimText())
			}
			if omitPrefix {
				opts = append(opts, finnaxml.WithOmitSinglePrefix())
			}
			out, err := doc.RenderString(opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	docFlags.register(cmd)
	cmd.Flags().IntVar(&indent, "indent", 0, "spaces per nesting level, 0 for compact output")
	cmd.Flags().BoolVar(&trim, "trim", false, "trim whitespace around text content")
	cmd.Flags().BoolVar(&omitPrefix, "omit-prefix", false, "render unprefixed with a single default xmlns")
	return cmd
}

func newStoreCommand() *cobra.Command {
	var dbPath string
	var docFlags documentFlags

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Persist and fetch parsed documents",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "documents.db", "path of the document store file")

	put := &cobra.Command{
		Use:   "put KEY FILE",
		Short: "Parse FILE and store it under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := docFlags.load(args[1])
			if err != nil {
				return err
			}
			pd, err := doc.Export()
			if err != nil {
				return err
			}
			store, err := docstore.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			return store.Put(args[0], pd)
		},
	}
	docFlags.register(put)

	get := &cobra.Command{
		Use:   "get KEY",
		Short: "Fetch the document under KEY and print it as XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := docstore.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			pd, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if pd == nil {
				return fmt.Errorf("no document stored under %q", args[0])
			}
			doc := finnaxml.New()
			if err := doc.Import(pd); err != nil {
				return err
			}
			out, err := doc.RenderString()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored document keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := docstore.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}

	cmd.AddCommand(put, get, list)
	return cmd
}
