package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/mathfield/internal/app"
	"github.com/dshills/mathfield/internal/field"
	"github.com/dshills/mathfield/internal/tree"
)

const commandHelp = `  <text>            type text (\name enters a command)
  :left :right      move the cursor
  :home :end        move to the start or end of the field
  :shift-left       extend the selection left
  :shift-right      extend the selection right
  :all              select everything
  :clear            clear the selection
  :bs :del          delete left or right
  :set <latex>      replace the content
  :write <latex>    insert LaTeX at the cursor
  :latex :text      print the content
  :json [path]      print the snapshot, or one value of it
  :help             show this list
  :quit             stop
`

var errQuit = errors.New("quit")

// repl reads one command per line and applies it to the field.
type repl struct {
	in     *bufio.Scanner
	out    io.Writer
	prompt bool
}

// run processes commands until EOF or :quit. With a prompt, failures are
// reported and the content is echoed after each command; without one the
// first failure stops the run.
func (r *repl) run(application *app.Application) error {
	lineNo := 0
	for {
		if r.prompt {
			fmt.Fprint(r.out, "> ")
		}
		if !r.in.Scan() {
			return r.in.Err()
		}
		lineNo++
		line := r.in.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var output string
		err := application.Do(func(f *field.Field) error {
			var err error
			output, err = execute(f, line)
			if err == nil && r.prompt && output == "" {
				output = f.Latex()
			}
			return err
		})
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil && r.prompt:
			fmt.Fprintf(r.out, "error: %v\n", err)
			continue
		case err != nil:
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if output != "" {
			fmt.Fprintln(r.out, output)
		}
	}
}

// execute applies one command line and returns what it prints.
func execute(f *field.Field, line string) (string, error) {
	if !strings.HasPrefix(line, ":") {
		return "", f.TypeText(line)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "left":
		f.Move(tree.Left)
	case "right":
		f.Move(tree.Right)
	case "home":
		f.MoveToEnd(tree.Left)
	case "end":
		f.MoveToEnd(tree.Right)
	case "shift-left":
		f.Select(tree.Left)
	case "shift-right":
		f.Select(tree.Right)
	case "all":
		f.SelectAll()
	case "clear":
		f.ClearSelection()
	case "bs":
		f.Delete(tree.Left)
	case "del":
		f.Delete(tree.Right)
	case "set":
		return "", f.SetLatex(arg)
	case "write":
		return "", f.WriteLatex(arg)
	case "latex":
		return f.Latex(), nil
	case "text":
		return f.Text(), nil
	case "json":
		return snapshot(f, arg)
	case "help":
		return strings.TrimRight(commandHelp, "\n"), nil
	case "quit", "q":
		return "", errQuit
	default:
		return "", fmt.Errorf("unknown command %q", line)
	}
	return "", nil
}

// snapshot returns the field's JSON snapshot, or the value at a gjson path
// within it.
func snapshot(f *field.Field, path string) (string, error) {
	s, err := f.Snapshot()
	if err != nil {
		return "", err
	}
	if path == "" {
		return s, nil
	}
	res := gjson.Get(s, path)
	if !res.Exists() {
		return "", fmt.Errorf("no value at %q", path)
	}
	if res.Type == gjson.String {
		return res.String(), nil
	}
	return res.Raw, nil
}
