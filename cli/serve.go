package cli

import (
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/cdoc/web"
)

type ServeCmd struct {
	Files []string `arg:"" name:"file" help:"C source files to preview." type:"existingfile"`
	Port  int      `help:"Port to listen on." default:"8080"`
	Host  string   `help:"Address to bind to." default:"127.0.0.1"`
	Watch bool     `help:"Reload the preview when files change." default:"true" negatable:""`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish, err := globals.start(ctx, "serve")
	if err != nil {
		return err
	}
	defer finish()

	ldr, err := globals.newLoader()
	if err != nil {
		return err
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	server := web.NewWithVersion(cmd.Port, cmd.Files, version, commitSHA)
	server.Host = cmd.Host
	server.WatchEnabled = cmd.Watch
	server.Loader = ldr
	server.Formatter = globals.newFormatter()

	printInfof(ctx.Stdout, "Starting server on http://%s:%d", server.Host, cmd.Port)
	for _, file := range cmd.Files {
		printInfof(ctx.Stdout, "Serving %s", pathStyle.Render(file))
	}
	if cmd.Watch {
		printInfof(ctx.Stdout, "Watching for changes")
	}

	runCtx, stop := signal.NotifyContext(runCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Start(runCtx)
}
