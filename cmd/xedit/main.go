// Package main is a minimal line-oriented driver for the xedit core. It
// has no TUI: it reads command lines from stdin, one per prompt, and
// prints the resulting message, enough to exercise the whole core
// without a rendering layer.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/navicore/xedit/internal/xedit/command"
	"github.com/navicore/xedit/internal/xedit/editor"
	"github.com/navicore/xedit/internal/xedit/macro"
	"github.com/navicore/xedit/internal/xedit/profile"
	"github.com/navicore/xedit/internal/xedit/ring"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	r := ring.New()
	var ed *editor.Editor
	if opts.file != "" {
		var err error
		ed, err = r.AddFile(opts.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	} else {
		ed = r.AddEmpty()
	}

	stack := newStdoutStack()
	ed.SetDataStack(stack)

	if opts.profilePath != "" {
		settings, err := profile.Load(opts.profilePath)
		if err != nil {
			log.Printf("profile: %v", err)
		} else if err := profile.Apply(ed, settings); err != nil {
			log.Printf("profile: %v", err)
		}
	}

	searchPath := append(append([]string(nil), opts.macroPath...), ed.MacroPath()...)
	bridge := macro.NewBridge(ed, searchPath)
	defer bridge.Close()
	ed.SetMacroRunner(bridge)
	ed.RunProfile()

	return repl(ed, r)
}

type options struct {
	file        string
	profilePath string
	macroPath   []string
}

func parseFlags() options {
	var opts options
	var macroPath string

	flag.StringVar(&opts.profilePath, "profile", "", "Path to a PROFILE.toml startup settings file")
	flag.StringVar(&macroPath, "macros", "", "Colon-separated macro search path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "xedit - line-oriented editor core demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: xedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if macroPath != "" {
		opts.macroPath = strings.Split(macroPath, ":")
	}
	if flag.NArg() > 0 {
		opts.file = flag.Arg(0)
	}
	return opts
}

// repl reads one command line per prompt and prints the resulting
// message, until QUIT/QQUIT or EOF.
func repl(ed *editor.Editor, r *ring.Ring) int {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("xedit> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ed.PushHistory(line)

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Println(err.Error())
			continue
		}

		result, err := ed.Execute(cmd)
		if err != nil {
			fmt.Println(err.Error())
			continue
		}
		if result.HasMsg {
			fmt.Println(result.Message)
		}
		if result.Action == command.ActionQuit {
			r.RemoveCurrent()
			if r.IsEmpty() {
				break
			}
			ed, _ = r.Current()
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("read error: %v", err)
		return 1
	}
	return 0
}

// stdoutStack is a minimal editor.DataStack that keeps pushed/enqueued
// lines in memory and prints how many were added; nothing reads them
// back. It is enough to let STACK/QUEUE be exercised without a real host.
type stdoutStack struct {
	lifo []string
}

func newStdoutStack() *stdoutStack { return &stdoutStack{} }

func (s *stdoutStack) Push(lines []string) {
	for i := len(lines) - 1; i >= 0; i-- {
		s.lifo = append(s.lifo, lines[i])
	}
	fmt.Printf("(stack) pushed %d line(s)\n", len(lines))
}

func (s *stdoutStack) Enqueue(lines []string) {
	s.lifo = append(s.lifo, lines...)
	fmt.Printf("(stack) enqueued %d line(s)\n", len(lines))
}
