package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/mj1618/focus-border/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// mu keeps records from concurrent goroutines from interleaving on stdout.
var mu sync.Mutex

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use text, yaml or json)", s)
	}
}

// Liner is implemented by records with a one-line text rendering.
type Liner interface {
	Line() string
}

// OverlayResult reports the outcome of one overlay operation.
type OverlayResult struct {
	Action  string       `yaml:"overlay"           json:"overlay"`
	Seq     uint64       `yaml:"seq,omitempty"     json:"seq,omitempty"`
	App     string       `yaml:"app,omitempty"     json:"app,omitempty"`
	Color   *model.Color `yaml:"color,omitempty"   json:"color,omitempty"`
	Width   float64      `yaml:"width,omitempty"   json:"width,omitempty"`
	Opacity float64      `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	OK      bool         `yaml:"ok"                json:"ok"`
	Error   string       `yaml:"error,omitempty"   json:"error,omitempty"`
}

func (r OverlayResult) Line() string {
	target := ""
	if r.Color != nil {
		target = fmt.Sprintf(" color=%s width=%g opacity=%g", r.Color, r.Width, r.Opacity)
	}
	if !r.OK {
		return fmt.Sprintf("overlay %s failed:%s %s", r.Action, target, r.Error)
	}
	return fmt.Sprintf("overlay %s ok:%s", r.Action, target)
}

// EventLine renders a focus event as a single line.
func EventLine(ev model.FocusEvent) string {
	return fmt.Sprintf("[%d] App: %s | Window: %s | ID: %s | URL: %s",
		ev.Seq, ev.AppName, ev.WindowTitle, ev.BundleID, ev.URL)
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	mu.Lock()
	defer mu.Unlock()

	switch OutputFormat {
	case FormatText:
		return printText(v)
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// printText writes one line for events and Liners, and falls back to YAML for
// structured records.
func printText(v interface{}) error {
	switch r := v.(type) {
	case model.FocusEvent:
		_, err := fmt.Fprintln(os.Stdout, EventLine(r))
		return err
	case Liner:
		_, err := fmt.Fprintln(os.Stdout, r.Line())
		return err
	default:
		return PrintYAML(v)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v to stdout as a YAML document. Each call starts a new
// document so a stream of records stays parseable.
func PrintYAML(v interface{}) error {
	if _, err := fmt.Fprintln(os.Stdout, "---"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
