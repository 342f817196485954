package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/jsonset/internal/document"
	"github.com/jacoelho/jsonset/internal/exit"
	"github.com/jacoelho/jsonset/internal/flatten"
	"github.com/jacoelho/jsonset/internal/present"
	"github.com/jacoelho/jsonset/internal/setops"
)

// StdoutName is the output file name that selects standard output.
const StdoutName = "-"

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrNoInputFiles  = errors.New("no input files specified")
	ErrNoOutputMap   = errors.New("no output map specified")
	ErrEmptyFileName = errors.New("input file name cannot be empty")
)

// Config represents the complete configuration for the jsonset tool.
type Config struct {
	// Inputs, in command line order
	InputFiles []string
	Select     string

	// Comparison
	OrderLists bool
	OutputMap  []setops.Operation

	// Output
	Output  string // empty or "-" for stdout
	Pretty  bool
	Format  string
	Summary bool

	Debug bool
}

// FlattenOptions returns the flattener settings derived from the config.
func (c *Config) FlattenOptions() flatten.Options {
	return flatten.Options{PreserveListOrder: c.OrderLists}
}

// LoaderOptions returns the document loader settings derived from the config.
func (c *Config) LoaderOptions() document.Options {
	return document.Options{
		Flatten: c.FlattenOptions(),
		Select:  c.Select,
	}
}

// RenderMode returns the presenter mode selected by --pretty and --format.
func (c *Config) RenderMode() (present.Mode, error) {
	return present.ModeFor(c.Pretty, c.Format)
}

// UsesStdout reports whether results go to standard output.
func (c *Config) UsesStdout() bool {
	return c.Output == "" || c.Output == StdoutName
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.InputFiles) == 0 {
		return ErrNoInputFiles
	}

	for i, file := range c.InputFiles {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("%w (position %d)", ErrEmptyFileName, i+1)
		}
	}

	if len(c.OutputMap) == 0 {
		return ErrNoOutputMap
	}

	if _, err := c.RenderMode(); err != nil {
		return err
	}

	if c.Select != "" {
		if err := document.ValidateSelect(c.Select); err != nil {
			return err
		}
	}

	return nil
}

// filesFlag implements flag.Value for comma separated, repeatable file lists.
type filesFlag []string

// String returns the files joined by commas for flag.Value interface.
func (f *filesFlag) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(*f, ",")
}

// Set appends every comma separated file name for flag.Value interface.
func (f *filesFlag) Set(value string) error {
	for name := range strings.SplitSeq(value, ",") {
		*f = append(*f, strings.TrimSpace(name))
	}
	return nil
}

// operationsFlag implements flag.Value for the repeatable --output-map flag.
type operationsFlag []setops.Operation

// String returns the operation names joined by commas for flag.Value interface.
func (o *operationsFlag) String() string {
	if o == nil {
		return ""
	}
	names := make([]string, len(*o))
	for i, op := range *o {
		names[i] = op.String()
	}
	return strings.Join(names, ",")
}

// Set parses operation names or codes for flag.Value interface. Unknown
// operations fail here, before any document is read.
func (o *operationsFlag) Set(value string) error {
	ops, err := setops.ParseOutputMap(value)
	if err != nil {
		return err
	}
	*o = append(*o, ops...)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usage(ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		cfg   Config
		files filesFlag
		ops   operationsFlag
	)

	fs.Var(&files, "input-files", "Comma separated list of input files (order is preserved)")
	fs.Var(&files, "i", "Shorthand for --input-files")
	fs.Var(&ops, "output-map", "Comma separated list of operations to apply")
	fs.Var(&ops, "m", "Shorthand for --output-map")
	fs.StringVar(&cfg.Output, "output", "", "Output file (default stdout)")
	fs.StringVar(&cfg.Output, "o", "", "Shorthand for --output")
	fs.BoolVar(&cfg.OrderLists, "order-lists", false, "Compare array elements by position")
	fs.BoolVar(&cfg.OrderLists, "l", false, "Shorthand for --order-lists")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Indented output")
	fs.BoolVar(&cfg.Pretty, "p", false, "Shorthand for --pretty")
	fs.BoolVar(&cfg.Summary, "summary", false, "Print tuple counts instead of tuples")
	fs.BoolVar(&cfg.Summary, "s", false, "Shorthand for --summary")
	fs.StringVar(&cfg.Format, "format", "json", "Record format: json or yaml")
	fs.StringVar(&cfg.Select, "select", "", "JSONPath expression selecting the object to compare")
	fs.BoolVar(&cfg.Debug, "debug", false, "Log loading and operation details to stderr")

	positional, err := parseInterspersed(fs, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage() + "\n")
		}
		return nil, exit.Usage(fmt.Errorf("failed to parse arguments: %w", err), Usage())
	}

	// Positional arguments are additional input files
	files = append(files, positional...)

	cfg.InputFiles = []string(files)
	cfg.OutputMap = []setops.Operation(ops)

	if err := cfg.Validate(); err != nil {
		return nil, exit.Usage(err, Usage())
	}

	return &cfg, nil
}

// parseInterspersed parses flags that appear before, between and after
// positional arguments. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}

		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}

		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

var operationHelp = map[setops.Operation]string{
	setops.Additions:           "additions across the files",
	setops.Subtractions:        "subtractions across the files",
	setops.Union:               "union across the files",
	setops.Intersection:        "intersection across the files",
	setops.Each:                "each file",
	setops.SymmetricDifference: "symmetric difference of the first two files",
}

func operationsUsage() string {
	var b strings.Builder
	for _, op := range setops.Operations {
		fmt.Fprintf(&b, "                              %s, %-21s %s\n", op.Code(), op.String(), operationHelp[op])
	}
	return b.String()
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsonset - set operations over flattened JSON documents

Usage: jsonset [options] [file ...]

Options may appear before or after the files; arguments after -- are files.

Options:
  -i, --input-files FILES   Comma separated list of input files (order is preserved)
  -o, --output FILE         Output file (default stdout)
  -l, --order-lists         Preserve order in lists (index is part of the path)
  -p, --pretty              Indented, key-sorted records
  -s, --summary             Print tuple counts instead of tuples
  -m, --output-map OPS      Comma separated list of operations, applied in order:
` + operationsUsage() + `      --format FORMAT       Record format: json (default) or yaml
      --select PATH         JSONPath expression selecting the object to compare in each file
      --debug               Log loading and operation details to stderr
  -h, --help                Show this help message

Files ending in .yaml or .yml are read as YAML, everything else as JSON.

Examples:
  jsonset -i old.json,new.json -m a,s       # What was added and removed
  jsonset -i a.json,b.json -m u -p          # Pretty union of both files
  jsonset -l -m d a.json b.json             # Order-sensitive symmetric difference
  jsonset a.json b.json -m u                # Options after the files
  jsonset -m i --select '$.spec' a.yaml b.yaml`
}
