package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"
)

type outputOptions struct {
	JSON  bool
	Query string
}

// newFlagSet builds a subcommand flag set that reports to stderr and
// registers the shared -json and -query flags.
func newFlagSet(ctx *commandContext, name string, out *outputOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(ctx.Stderr)
	if out != nil {
		fs.BoolVar(&out.JSON, "json", false, "print the raw result as JSON")
		fs.StringVar(&out.Query, "query", "", "JMESPath expression applied to the JSON result (implies -json)")
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// emit prints v as JSON when requested, otherwise through table.
func emit(ctx *commandContext, out outputOptions, v any, table func(w io.Writer) error) error {
	if out.JSON || strings.TrimSpace(out.Query) != "" {
		return printJSON(ctx.Stdout, v, out.Query)
	}
	if table == nil {
		return printJSON(ctx.Stdout, v, "")
	}
	tw := tabwriter.NewWriter(ctx.Stdout, 0, 0, 2, ' ', 0)
	if err := table(tw); err != nil {
		return err
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any, query string) error {
	if query = strings.TrimSpace(query); query != "" {
		filtered, err := applyQuery(v, query)
		if err != nil {
			return err
		}
		v = filtered
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// applyQuery evaluates a JMESPath expression against the JSON form of v.
func applyQuery(v any, query string) (any, error) {
	compiled, err := jmespath.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid -query: %v", errUsage, err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return compiled.Search(generic)
}

func row(w io.Writer, cols ...any) error {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "\t"))
	return err
}
