package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/myply/myply-go/host/adaptor"
	"github.com/myply/myply-go/host/app"
	_ "github.com/myply/myply-go/plugins/bugs"
)

var (
	versionName = ""
	commitSHA   = ""
	buildTime   = ""
)

const usage = `usage: myply [-c config.ini] <command> [arguments]

commands:
  adaptors                                 list registered adaptors
  find -adaptor NAME -artist A -title T    resolve a song to a track id
  fetch URI                                fetch a shared playlist into the library
  list                                     list stored playlists
  link ID [-adaptor NAME]                  build a link for a stored playlist
  convert ID -to NAME                      resolve a stored playlist on another service
  delete ID                                remove a stored playlist
  version                                  print build information
`

func main() {
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	configPath := flag.String("c", "config.ini", "config file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	buildInfo := app.BuildInfo{
		RuntimeVer: runtime.Version(),
		BinVersion: versionName,
		CommitSHA:  commitSHA,
		BuildTime:  buildTime,
		BuildArch:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if args[0] == "version" {
		_ = printJSON(os.Stdout, buildInfo)
		return
	}

	application, err := app.New(ctx, *configPath, buildInfo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "myply:", err)
		os.Exit(1)
	}

	err = run(ctx, application, args, os.Stdout)
	_ = application.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "myply:", err)
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("invalid usage")

func run(ctx context.Context, application *app.App, args []string, out io.Writer) error {
	command, rest := args[0], args[1:]

	switch command {
	case "adaptors":
		return printJSON(out, application.Adaptors.ListMeta())

	case "find":
		fs := flag.NewFlagSet("find", flag.ContinueOnError)
		name := fs.String("adaptor", "bugs", "adaptor to search")
		artist := fs.String("artist", "", "artist name")
		title := fs.String("title", "", "track title")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		id, err := application.FindSong(ctx, *name, adaptor.Song{Artist: *artist, Name: *title})
		if err != nil {
			return err
		}
		return printJSON(out, map[string]string{"adaptor": *name, "id": id})

	case "fetch":
		if len(rest) != 1 {
			return fmt.Errorf("%w: fetch URI", errUsage)
		}
		entry, err := application.Fetch(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, entry)

	case "list":
		listing, err := application.List(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, listing)

	case "link":
		id, rest, err := leadingArg(rest, "link ID [-adaptor NAME]")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("link", flag.ContinueOnError)
		name := fs.String("adaptor", "", "adaptor to link for (default: playlist source)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		link, err := application.Link(ctx, id, *name)
		if err != nil {
			return err
		}
		return printJSON(out, map[string]string{"id": id, "url": link})

	case "convert":
		id, rest, err := leadingArg(rest, "convert ID -to NAME")
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("convert", flag.ContinueOnError)
		target := fs.String("to", "", "target adaptor")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *target == "" {
			return fmt.Errorf("%w: convert ID -to NAME", errUsage)
		}
		result, err := application.Convert(ctx, id, *target)
		if err != nil {
			return err
		}
		return printJSON(out, result)

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("%w: delete ID", errUsage)
		}
		return application.Library.Delete(ctx, rest[0])

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func leadingArg(args []string, form string) (string, []string, error) {
	if len(args) == 0 || len(args[0]) == 0 || args[0][0] == '-' {
		return "", nil, fmt.Errorf("%w: %s", errUsage, form)
	}
	return args[0], args[1:], nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
