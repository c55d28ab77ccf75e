package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

// helpTemplates parses the embedded help pages on first use.
var helpTemplates = sync.OnceValue(func() *template.Template {
	funcs := template.FuncMap{"flags": visibleFlags}
	return template.Must(template.New("").Funcs(funcs).ParseFS(helpFS, "templates/*.txt"))
})

// flagInfo is one row of the flag table in a help page.
type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

func visibleFlags(fs *flag.FlagSet) []flagInfo {
	var rows []flagInfo
	if fs == nil {
		return rows
	}
	fs.VisitAll(func(f *flag.Flag) {
		rows = append(rows, flagInfo{Name: f.Name, DefValue: f.DefValue, Usage: f.Usage})
	})
	return rows
}

// HelpData is implemented by every command that has a help page.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError carries the command whose help page should be shown.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	var buf bytes.Buffer
	if err := helpTemplates().ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("render help %s: %v", e.of.Template(), err)
		return err.Error()
	}
	return buf.String()
}

func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}

func (r *root) Template() string {
	return "root.txt"
}

func (c *replayCmd) Template() string {
	return "replay.txt"
}

func (c *boundsCmd) Template() string {
	return "bounds.txt"
}

func (c *measureCmd) Template() string {
	return "measure.txt"
}

func (c *interactiveCmd) Template() string {
	return "interactive.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}
