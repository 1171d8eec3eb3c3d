package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var scriptFile = flag.String("f", "", "YAML statement script; renders the built-in demo when empty")
var verbose = flag.Bool("v", false, "debug logging")

const demoScript = `
statements:
  - name: schema
    kind: create
    tables: [users]
    columns:
      - {name: id, type: PRIMARY}
      - {name: name}
      - {name: age, type: INTEGER}
  - name: add-user
    kind: insert
    tables: [users]
    values:
      - {name: name, value: ann}
      - {name: age, value: 31}
  - name: birthday
    kind: update
    tables: [users]
    values:
      - {name: age, value: 32}
    where:
      - {field: name, op: "=", value: ann}
  - name: adults
    kind: select
    tables: [users]
    fields: [id, name]
    where:
      - {field: age, op: ">=", value: 18}
      - {connective: OR, field: name, op: "=", value: root}
      - {field: id, op: ">", ref: age}
`

func main() {
	os.Exit(realMain())
}

// realMain runs the command and returns its exit code, so deferred calls
// complete before the process exits.
func realMain() int {
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	var src io.Reader = strings.NewReader(demoScript)
	if *scriptFile != "" {
		f, err := os.Open(*scriptFile)
		if err != nil {
			logger.Error().Err(err).Str("file", *scriptFile).Msg("open script")
			return 1
		}
		defer f.Close()
		src = f
	}

	if err := run(src, os.Stdout, logger); err != nil {
		logger.Error().Err(err).Msg("render failed")
		return 1
	}
	return 0
}

// run renders the script read from src and writes one statement per line to w.
func run(src io.Reader, w io.Writer, logger zerolog.Logger) error {
	script, err := LoadScript(src)
	if err != nil {
		return err
	}
	rendered, err := script.Render()
	if err != nil {
		return err
	}
	for _, r := range rendered {
		logger.Debug().Str("name", r.Name).Stringer("kind", r.Kind).Msg("rendered")
		if _, err := fmt.Fprintln(w, r.SQL+";"); err != nil {
			return err
		}
	}
	logger.Info().Int("statements", len(rendered)).Msg("done")
	return nil
}
