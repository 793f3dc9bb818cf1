package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/treeval/internal/config"
	"github.com/mcncl/treeval/internal/converter"
	"github.com/mcncl/treeval/internal/errors"
	"github.com/mcncl/treeval/internal/formatter"
	"github.com/mcncl/treeval/internal/mapper"
	"github.com/mcncl/treeval/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON or XML file. If not specified, reads from stdin." short:"i" type:"path"`
	URL         string `help:"URL of an input JSON or XML document (http or https)." short:"u"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Kind        string `help:"Input kind: auto, json or xml." short:"k"`
	Format      string `help:"Output format: text, json or yaml." short:"f"`
	Indent      string `help:"Indentation used for output."`
	Compact     bool   `help:"Print the output on a single line."`
	MaxDepth    int    `help:"Maximum tree depth, 0 disables the limit." default:"-1"`
	Config      string `help:"Path to config file." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("treeval"),
		kong.Description("A tool to convert JSON and XML documents into rule engine values"),
		kong.UsageOnError(),
	)

	// No arguments means interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("treeval version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: newLogger(cfg.Dev.Debug),
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: treeval --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file, when one is found, with the CLI flags
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	overrides := config.Overrides{
		Kind:   CLI.Kind,
		Format: CLI.Format,
		Indent: CLI.Indent,
		Debug:  CLI.Debug,
	}
	if CLI.MaxDepth >= 0 {
		depth := CLI.MaxDepth
		overrides.MaxDepth = &depth
	}

	cfg, err := config.LoadConfigWithCLI(configPath, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	if CLI.Compact {
		cfg.Output.Indent = ""
	}
	return cfg, nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	cfg := ctx.Config
	log := ctx.logger()

	// 1. Parse input
	doc, err := parseInput(cfg)
	if err != nil {
		return err
	}
	log.Debug("parsed input", slog.String("format", string(doc.Format)))

	// 2. Convert through the mapper registry
	registry := mapper.NewComposite(log,
		mapper.Default{},
		mapper.NewTree(converter.WithMaxDepth(cfg.Conversion.MaxDepth)),
	)
	v, err := registry.ToValue(doc.Tree())
	if err != nil {
		return errors.NewConversionError("failed to convert document", err)
	}
	log.Debug("converted document", slog.String("kind", string(v.Kind())))

	// 3. Format
	out, err := formatter.NewFormatter(cfg.Output.Indent).Format(v, formatter.Style(cfg.Output.Format))
	if err != nil {
		return errors.NewFormatError(fmt.Sprintf("failed to format value as %s", cfg.Output.Format), err)
	}

	// 4. Output the result
	return writeOutput(out)
}

// parseInput reads a document from file, URL or stdin
func parseInput(cfg *config.Config) (parser.Document, error) {
	format, err := parser.ParseFormat(cfg.Input.Kind)
	if err != nil {
		return parser.Document{}, err
	}

	if CLI.Input != "" && CLI.URL != "" {
		return parser.Document{}, errors.NewInputError("cannot specify both --input and --url", nil)
	}

	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, format)
	}

	if CLI.URL != "" {
		u, err := url.Parse(CLI.URL)
		if err != nil {
			return parser.Document{}, errors.NewInputError(fmt.Sprintf("invalid URL '%s'", CLI.URL), errors.ErrInvalidURL)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return parser.Document{}, errors.NewInputError(fmt.Sprintf("invalid URL scheme '%s', expected http or https", u.Scheme), errors.ErrInvalidURL)
		}
		return parser.Load(context.Background(), CLI.URL, format)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return parser.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(format)
		}
		return parser.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return parser.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return parser.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(data, format)
}

// writeOutput writes the formatted value to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Value written to %s\n", CLI.Output)
		return nil
	}

	if _, err := fmt.Println(strings.TrimSpace(out)); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste a document and signal completion
// with Ctrl+D (EOF)
func readInteractiveInput(format parser.Format) (parser.Document, error) {
	fmt.Fprintln(os.Stderr, "treeval Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON or XML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return parser.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	data := builder.String()
	if strings.TrimSpace(data) == "" {
		return parser.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing document...")
	return parser.ParseString(data, format)
}
