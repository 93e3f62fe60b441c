package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

const cliHelp = `Ask me about hotels or weather! Commands: /tools /history /clear /quit

Examples:
  Find hotels in Miami for 2 guests from tomorrow to next week
  Book hotel_002 for John Doe for this weekend for 2 people, email john@email.com
  What's the weather in Denver?
  Show me the 5-day forecast for Chicago
  Any weather alerts for New York?
  Look up my booking with ID ABC12345`

// RunCLI reads one user message per line from in until EOF, /quit or ctx ends.
// Lines are read on a separate goroutine so a cancelled ctx ends the loop without
// waiting for the next line.
func RunCLI(ctx context.Context, a *Assistant, session string, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, cliHelp)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()
	lines, readErr := readLines(readCtx, in)
	for {
		fmt.Fprint(out, "\n> ")
		var raw string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			raw = l
		}
		line := strings.TrimSpace(raw)
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/tools":
			defs, err := a.Tools(ctx, session)
			if err != nil {
				fmt.Fprintf(out, "❌ Server Disconnected: %v\n", err)
				continue
			}
			for _, d := range defs {
				fmt.Fprintf(out, "- %s: %s\n", d.Name, d.Description)
			}
			continue
		case "/history":
			msgs, err := a.History(ctx, session)
			if err != nil {
				fmt.Fprintf(out, "❌ %v\n", err)
				continue
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Content)
			}
			continue
		case "/clear":
			if err := a.Clear(ctx, session); err != nil {
				fmt.Fprintf(out, "❌ %v\n", err)
			}
			continue
		}

		r := a.Turn(ctx, session, line)
		if r.Tool != "" && r.Outcome != OutcomeUnrecognized {
			fmt.Fprintf(out, "🔧 Tool: %s\n", r.Tool)
		}
		fmt.Fprintln(out, r.Text)
	}
}

// readLines scans in until EOF or ctx ends. The error channel yields the scan error
// once lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}
