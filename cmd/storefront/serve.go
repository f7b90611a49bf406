package main

import "github.com/SlowBrain97/E-Commerce/internal/bootstrap"

func runServe(ctx *commandContext, args []string) error {
	addr := ctx.Config.HTTP.Addr
	fs := newFlagSet(ctx, "serve", nil)
	fs.StringVar(&addr, "addr", addr, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	ctx.App.Config.HTTP.Addr = addr

	if ctx.App.Client.TokenPresent() {
		ctx.App.Session.CheckAuth(ctx.Ctx)
	}
	return bootstrap.Serve(ctx.Ctx, bootstrap.ServeOptions{
		App:  ctx.App,
		Sink: ctx.Sink,
	})
}
