package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// executor is the command surface the REPL drives. App satisfies it;
// tests provide a stub.
type executor interface {
	Execute(ctx context.Context, name string, args []string) error
	failure(err error)
}

// runREPL reads commands line by line and runs them until EOF, "exit" or
// "quit". A failed command is reported and the loop continues.
func runREPL(ctx context.Context, e executor, reader *bufio.Reader, out io.Writer) {
	fmt.Fprintln(out, "shadowvault wallet (type 'help' for commands)")

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(out, "vault> ")

		line, err := reader.ReadString('\n')
		parts := strings.Fields(line)
		if len(parts) > 0 {
			switch parts[0] {
			case "exit", "quit":
				fmt.Fprintln(out, "Bye!")
				return
			default:
				if cerr := e.Execute(ctx, parts[0], parts[1:]); cerr != nil {
					e.failure(cerr)
				}
			}
		}
		if err != nil {
			fmt.Fprintln(out)
			return
		}
	}
}
