package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"runtime"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/coltype/pkg/block"
	"github.com/ajitpratap0/coltype/pkg/config"
	"github.com/ajitpratap0/coltype/pkg/errors"
	"github.com/ajitpratap0/coltype/pkg/logger"
	"github.com/ajitpratap0/coltype/pkg/metrics"
	"github.com/ajitpratap0/coltype/pkg/registry"
	"github.com/ajitpratap0/coltype/pkg/types"
)

var version = "0.1.0"

// nullLiteral stands for a null position in compare arguments
const nullLiteral = "null"

// app holds the state shared by subcommands once flags are parsed
type app struct {
	out        io.Writer
	configPath string
	logLevel   string

	cfg      *config.Config
	registry *registry.Registry
	log      *zap.Logger

	// metricsRegisterer receives registry metrics when enabled; tests inject their own
	metricsRegisterer prometheus.Registerer
}

func newRootCommand(out io.Writer) *cobra.Command {
	return newApp(out, prometheus.DefaultRegisterer).command()
}

func newApp(out io.Writer, reg prometheus.Registerer) *app {
	return &app{out: out, metricsRegisterer: reg}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "coltype",
		Short: "coltype - columnar value type system",
		Long: `coltype resolves type signatures against the standard type registry and
runs value operations (equality, ordering, hashing, display) over hex-encoded values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.SetOut(a.out)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the configuration")

	root.AddCommand(
		a.versionCommand(),
		a.typesCommand(),
		a.resolveCommand(),
		a.compareCommand(),
	)
	return root
}

// setup loads configuration, installs the logger and builds the registry
func (a *app) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := logger.Init(cfg.Logging); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}
	a.cfg = cfg
	a.log = logger.Named("cli")

	opts := []registry.Option{registry.WithLogger(logger.Named("type_registry"))}
	if cfg.Metrics.Enabled {
		opts = append(opts, registry.WithMetrics(metrics.NewRegistryMetrics(a.metricsRegisterer, cfg.Metrics.Namespace)))
	}
	a.registry = registry.NewWithStandardTypes(opts...)

	if err := a.registry.Preload(ctx, cfg.Registry.Preload...); err != nil {
		return err
	}
	if cfg.Registry.Seal {
		a.registry.Seal()
	}
	a.log.Debug("registry ready",
		zap.Strings("types", a.registry.Types()),
		zap.Strings("parametric_types", a.registry.ParametricTypes()),
		zap.Int("preloaded", len(cfg.Registry.Preload)))
	return nil
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "coltype v%s\n", version)
			fmt.Fprintf(a.out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(a.out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (a *app) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List registered types",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, "Types:")
			for _, name := range a.registry.Types() {
				t, err := a.registry.Resolve(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "  - %-10s %s%s\n", name, t.Shape(), capabilities(t))
			}
			fmt.Fprintln(a.out, "\nParametric types:")
			for _, name := range a.registry.ParametricTypes() {
				fmt.Fprintf(a.out, "  - %s(T)\n", name)
			}
			return nil
		},
	}
}

func capabilities(t types.Type) string {
	var b strings.Builder
	if t.Comparable() {
		b.WriteString(" comparable")
	}
	if t.Orderable() {
		b.WriteString(" orderable")
	}
	return b.String()
}

// typeInfo is the JSON rendering of a resolved type
type typeInfo struct {
	Signature  string `json:"signature"`
	Shape      string `json:"shape"`
	Comparable bool   `json:"comparable"`
	Orderable  bool   `json:"orderable"`
	FixedSize  int    `json:"fixed_size,omitempty"`
	Element    string `json:"element,omitempty"`
}

func describe(t types.Type) typeInfo {
	info := typeInfo{
		Signature:  t.Signature().String(),
		Shape:      t.Shape().String(),
		Comparable: t.Comparable(),
		Orderable:  t.Orderable(),
	}
	if fw, ok := t.(types.FixedWidthType); ok {
		info.FixedSize = fw.FixedSize()
	}
	if d, ok := t.(*types.DigestType); ok {
		info.Element = d.ElementType().DisplayName()
	}
	return info
}

func (a *app) resolveCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resolve <signature>...",
		Short: "Resolve type signatures",
		Long: `Resolve one or more type signatures and describe the resulting types.

Example:
  coltype resolve varbinary "qdigest(double)" --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]typeInfo, 0, len(args))
			for _, s := range args {
				t, err := a.registry.ResolveContext(cmd.Context(), s)
				if err != nil {
					return err
				}
				infos = append(infos, describe(t))
			}

			switch output {
			case "json":
				data, err := json.MarshalIndent(infos, "", "  ")
				if err != nil {
					return errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode output")
				}
				fmt.Fprintln(a.out, string(data))
			case "text":
				for _, info := range infos {
					fmt.Fprintf(a.out, "%s\tshape=%s comparable=%t orderable=%t\n",
						info.Signature, info.Shape, info.Comparable, info.Orderable)
				}
			default:
				return errors.Newf(errors.ErrorTypeValidation, "unknown output format %q", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	return cmd
}

func (a *app) compareCommand() *cobra.Command {
	var signature string
	var useArrow bool

	cmd := &cobra.Command{
		Use:   "compare --type <signature> <hex> <hex>",
		Short: "Compare two hex-encoded values of a type",
		Long: `Build a two-position block from hex-encoded values and run the type's
value operations on it. Pass "null" for a null position.

Example:
  coltype compare --type varbinary 0102 010203`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.registry.ResolveContext(cmd.Context(), signature)
			if err != nil {
				return err
			}

			values := make([][]byte, len(args))
			for i, arg := range args {
				if values[i], err = decodeValue(t, arg); err != nil {
					return err
				}
			}

			blk, err := a.buildBlock(values, useArrow)
			if err != nil {
				return err
			}
			if ab, ok := blk.(*block.ArrowBlock); ok {
				defer ab.Release()
			}

			return a.printComparison(t, blk)
		},
	}
	cmd.Flags().StringVarP(&signature, "type", "t", "", "Type signature of both values (required)")
	cmd.Flags().BoolVar(&useArrow, "arrow", false, "Store the values in an Arrow binary array")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// decodeValue parses a hex argument, nil for the null literal
func decodeValue(t types.Type, arg string) ([]byte, error) {
	if strings.EqualFold(arg, nullLiteral) {
		return nil, nil
	}
	v, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeValidation, "value is not valid hex").
			WithDetail("value", arg)
	}
	if fw, ok := t.(types.FixedWidthType); ok && len(v) != fw.FixedSize() {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"%s values are %d bytes, got %d", t.DisplayName(), fw.FixedSize(), len(v)).
			WithDetail("value", arg)
	}
	if t == types.Boolean && v[0] > 1 {
		return nil, errors.Newf(errors.ErrorTypeValidation,
			"boolean values are 00 or 01, got %02x", v[0]).
			WithDetail("value", arg)
	}
	return v, nil
}

func (a *app) buildBlock(values [][]byte, useArrow bool) (block.Block, error) {
	var b block.Builder
	if useArrow {
		b = block.NewArrowBlockBuilder(nil, a.cfg.Block.MaxEntrySize)
	} else {
		b = block.NewVariableWidthBlockBuilder(a.cfg.Block.BuilderConfig())
	}

	for _, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		b.WriteBytes(v, 0, len(v)).CloseEntry()
	}
	return b.Build()
}

// printComparison writes the report only when every value operation succeeds.
// Data errors raised by the type on malformed values become the returned error.
func (a *app) printComparison(t types.Type, blk block.Block) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*errors.Error)
			if !ok {
				panic(r)
			}
			err = errors.Wrap(e, errors.ErrorTypeValidation, "cannot compare values").
				WithDetail("type", t.DisplayName())
		}
	}()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "type:    %s\n", t.DisplayName())
	fmt.Fprintf(&buf, "left:    %s\n", display(t, blk, 0))
	fmt.Fprintf(&buf, "right:   %s\n", display(t, blk, 1))

	if t.Comparable() {
		fmt.Fprintf(&buf, "equal:   %t\n", t.EqualTo(blk, 0, blk, 1))
		fmt.Fprintf(&buf, "hash:    %016x %016x\n", t.Hash(blk, 0), t.Hash(blk, 1))
	} else {
		fmt.Fprintln(&buf, "equal:   n/a (not comparable)")
	}
	if t.Orderable() {
		fmt.Fprintf(&buf, "compare: %d\n", t.CompareTo(blk, 0, blk, 1))
	} else {
		fmt.Fprintln(&buf, "compare: n/a (not orderable)")
	}

	_, err = buf.WriteTo(a.out)
	return err
}

func display(t types.Type, blk block.Block, position int) string {
	v := t.ObjectValue(blk, position)
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
