// Command storefront is a terminal client for the shoe store backend. It keeps
// the signed-in session, cart and backend cookies between invocations and can
// also run the local front door with "serve".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/SlowBrain97/E-Commerce/config"
	"github.com/SlowBrain97/E-Commerce/internal/bootstrap"
	httpx "github.com/SlowBrain97/E-Commerce/internal/http"
	"github.com/SlowBrain97/E-Commerce/internal/observability/notify"
	"github.com/SlowBrain97/E-Commerce/internal/ports"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
	// serve commands log to stdout and return toasts with HTTP responses.
	serve bool
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
	Sink   notify.Sink
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// errUsage marks errors already reported to the user with flag usage.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, runOptions{Stdin: os.Stdin})
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate command status to the shell
}

type runOptions struct {
	// State overrides the configured storage driver (tests).
	State ports.StateStore
	Stdin io.Reader
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts runOptions) int {
	if len(args) < 1 {
		_ = printUsage(stderr)
		return 2
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(stderr)
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(stderr, "load config: %v\n", err)
		return 1
	}

	logOut := stderr
	if cmd.serve {
		logOut = stdout
	}
	logger := bootstrap.InitLogger(logOut, cfg.LogLevel)

	sink := notify.Sink(notify.NewWriterSink(stderr))
	navigator := loginHint(stderr)
	if cmd.serve {
		sink = bootstrap.NewServeSink(logger)
		navigator = httpx.Navigator
	}

	app, err := bootstrap.NewApp(ctx, bootstrap.AppOptions{
		Config:    cfg,
		Logger:    logger,
		Sink:      sink,
		Navigator: navigator,
		State:     opts.State,
	})
	if err != nil {
		logger.ErrorContext(ctx, "build app", "error", err)
		return 1
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close app failed", "error", closeErr)
		}
	}()

	if restoreErr := app.Restore(ctx); restoreErr != nil {
		logger.WarnContext(ctx, "restore state failed", "error", restoreErr)
	}

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
		Sink:   sink,
		Stdin:  opts.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
	runErr := cmd.run(cmdCtx, args[1:])

	if persistErr := app.PersistCredentials(ctx); persistErr != nil {
		logger.WarnContext(ctx, "persist credentials failed", "error", persistErr)
	}

	switch {
	case runErr == nil:
		return 0
	case errors.Is(runErr, errUsage), errors.Is(runErr, flag.ErrHelp):
		return 2
	default:
		logger.DebugContext(ctx, "command failed", "command", cmdName, "error", runErr)
		return 1
	}
}

// loginHint tells the user to sign in again when the session could not be refreshed.
func loginHint(w io.Writer) ports.Navigator {
	return ports.NavigatorFunc(func(_ context.Context, path string) {
		_ = writef(w, "session expired (%s): run `storefront login` to sign in again\n", path)
	})
}

func commands() map[string]command {
	list := []command{
		{name: "login", description: "Sign in with email or username", run: runLogin},
		{name: "register", description: "Create an account and sign in", run: runRegister},
		{name: "logout", description: "Sign out and forget the local session and cart", run: runLogout},
		{name: "whoami", description: "Show the signed-in user (refreshed from the backend)", run: runWhoami},
		{name: "change-password", description: "Change the signed-in user's password", run: runChangePassword},
		{name: "cart", description: "Fetch and show the cart", run: runCartShow},
		{name: "cart-add", description: "Add a product to the cart", run: runCartAdd},
		{name: "cart-update", description: "Set the quantity of a cart line", run: runCartUpdate},
		{name: "cart-remove", description: "Remove a cart line", run: runCartRemove},
		{name: "cart-clear", description: "Empty the cart", run: runCartClear},
		{name: "cart-sync", description: "Replace the server cart with the given lines", run: runCartSync},
		{name: "cart-validate", description: "Check the cart against stock and prices", run: runCartValidate},
		{name: "products", description: "List, search or browse products by category", run: runProducts},
		{name: "product", description: "Show a product with related products and reviews", run: runProduct},
		{name: "categories", description: "List categories", run: runCategories},
		{name: "reviews", description: "List reviews for a product or your own reviews", run: runReviews},
		{name: "profile", description: "Show or update your profile", run: runProfile},
		{name: "dashboard", description: "Show admin dashboard statistics", run: runDashboard},
		{name: "serve", description: "Run the local front door over HTTP", run: runServe, serve: true},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: storefront <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-18s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
