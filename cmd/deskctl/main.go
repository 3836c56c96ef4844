// Command deskctl inspects and drives a running desktop server.
//
// Usage:
//
//	deskctl [-server URL] <command> [args]
//
// Commands:
//
//	ls [path]            list a directory (default /)
//	cat <path>           print a file
//	write <path> [text]  write text, or stdin when text is omitted
//	mkdir <path>         create a directory
//	rm <path>            remove a file or empty directory entry
//	windows              list open windows
//	open <app> [path]    open an app, handing it path when given
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/GriffinCanCode/WebDesk/backend/internal/client"
)

func main() {
	defaultServer := os.Getenv("DESKCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8000"
	}
	serverURL := flag.String("server", defaultServer, "Server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*serverURL)
	if err := run(c, flag.Arg(0), flag.Args()[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "deskctl: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: deskctl [-server URL] ls|cat|write|mkdir|rm|windows|open [args]")
	flag.PrintDefaults()
}

var errUsage = errors.New("wrong number of arguments")

func run(c *client.Client, cmd string, args []string, stdin io.Reader, out io.Writer) error {
	switch cmd {
	case "ls":
		path := "/"
		if len(args) > 0 {
			path = args[0]
		}
		entries, err := c.List(path)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, e := range entries {
			name := e.Name
			if e.IsDirectory {
				name += "/"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", name, e.Size, e.MimeType, e.ModifiedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()

	case "cat":
		if len(args) != 1 {
			return errUsage
		}
		content, err := c.ReadFile(args[0])
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, content)
		return err

	case "write":
		if len(args) < 1 {
			return errUsage
		}
		content := strings.Join(args[1:], " ")
		if len(args) == 1 {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return err
			}
			content = string(data)
		}
		return c.WriteFile(args[0], content)

	case "mkdir":
		if len(args) != 1 {
			return errUsage
		}
		return c.Mkdir(args[0])

	case "rm":
		if len(args) != 1 {
			return errUsage
		}
		return c.Unlink(args[0])

	case "windows":
		windows, current, err := c.Windows()
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, w := range windows {
			marker := " "
			if w.ID == current {
				marker = "*"
			}
			state := ""
			if w.Minimized {
				state = "minimized"
			}
			fmt.Fprintf(tw, "%s %s\t%s\t%dx%d+%d+%d\t%s\n", marker, w.ID, w.Title, w.Width, w.Height, w.X, w.Y, state)
		}
		return tw.Flush()

	case "open":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		if len(args) == 2 {
			result, err := c.OpenFile(args[1], args[0])
			if err != nil {
				return err
			}
			if !result.Opened {
				return fmt.Errorf("unknown app %s", args[0])
			}
			fmt.Fprintln(out, result.WindowID)
			return nil
		}
		windowID, ok, err := c.OpenApp(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unknown app %s", args[0])
		}
		fmt.Fprintln(out, windowID)
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
