package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	domainauth "github.com/SlowBrain97/E-Commerce/internal/domain/auth"
	"github.com/SlowBrain97/E-Commerce/internal/guard"
)

type passwordFlags struct {
	value string
	stdin bool
}

func (p *passwordFlags) register(fs *flag.FlagSet, usage string) {
	fs.StringVar(&p.value, "password", "", usage)
	fs.BoolVar(&p.stdin, "password-stdin", false, "read the password from the first line of stdin")
}

func (p *passwordFlags) resolve(in io.Reader) (string, error) {
	if !p.stdin {
		return p.value, nil
	}
	if in == nil {
		return "", errors.New("stdin is not available")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func runLogin(ctx *commandContext, args []string) error {
	var (
		out  outputOptions
		user string
		pw   passwordFlags
	)
	fs := newFlagSet(ctx, "login", &out)
	fs.StringVar(&user, "user", "", "email or username")
	pw.register(fs, "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	password, err := pw.resolve(ctx.Stdin)
	if err != nil {
		return err
	}

	info, err := ctx.App.Session.Login(ctx.Ctx, domainauth.LoginRequest{
		EmailOrUsername: strings.TrimSpace(user),
		Password:        password,
	})
	if err != nil {
		return reportError(ctx, err)
	}
	return printUser(ctx, out, info, guard.PostLoginPath(info))
}

func runRegister(ctx *commandContext, args []string) error {
	var (
		out outputOptions
		req domainauth.RegisterRequest
		pw  passwordFlags
	)
	fs := newFlagSet(ctx, "register", &out)
	fs.StringVar(&req.Username, "username", "", "username")
	fs.StringVar(&req.Email, "email", "", "email address")
	fs.StringVar(&req.FirstName, "first-name", "", "first name")
	fs.StringVar(&req.LastName, "last-name", "", "last name")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	pw.register(fs, "password (at least 6 characters)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	password, err := pw.resolve(ctx.Stdin)
	if err != nil {
		return err
	}
	req.Password = password

	info, err := ctx.App.Session.Register(ctx.Ctx, req)
	if err != nil {
		return reportError(ctx, err)
	}
	return printUser(ctx, out, info, guard.PostLoginPath(info))
}

func runLogout(ctx *commandContext, args []string) error {
	fs := newFlagSet(ctx, "logout", nil)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	return ctx.App.Session.Logout(ctx.Ctx)
}

func runWhoami(ctx *commandContext, args []string) error {
	var (
		out     outputOptions
		offline bool
	)
	fs := newFlagSet(ctx, "whoami", &out)
	fs.BoolVar(&offline, "offline", false, "show the locally cached session without calling the backend")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !offline {
		ctx.App.Session.CheckAuth(ctx.Ctx)
	}
	info, err := ctx.App.Session.RequireUser()
	if err != nil {
		return reportError(ctx, err)
	}
	return printUser(ctx, out, info, "")
}

func runChangePassword(ctx *commandContext, args []string) error {
	var current, next string
	fs := newFlagSet(ctx, "change-password", nil)
	fs.StringVar(&current, "current", "", "current password")
	fs.StringVar(&next, "new", "", "new password (at least 6 characters)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if _, err := signedIn(ctx); err != nil {
		return err
	}
	err := ctx.App.Session.ChangePassword(ctx.Ctx, domainauth.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return reportError(ctx, err)
	}
	return nil
}

// signedIn returns the cached identity, asking the backend once when only
// the credentials survived.
func signedIn(ctx *commandContext) (*domainauth.UserInfo, error) {
	if ctx.App.Session.User() == nil && ctx.App.Client.TokenPresent() {
		ctx.App.Session.CheckAuth(ctx.Ctx)
	}
	user, err := ctx.App.Session.RequireUser()
	return user, reportError(ctx, err)
}

func printUser(ctx *commandContext, out outputOptions, info *domainauth.UserInfo, landing string) error {
	return emit(ctx, out, info, func(w io.Writer) error {
		if err := row(w, "ID", "USERNAME", "EMAIL", "NAME", "ROLE"); err != nil {
			return err
		}
		if err := row(w, info.ID, info.Username, info.Email, displayName(info), info.Role); err != nil {
			return err
		}
		if landing != "" {
			return row(w, "", "", "", "", "next: "+landing)
		}
		return nil
	})
}

func displayName(info *domainauth.UserInfo) string {
	if info.FullName != "" {
		return info.FullName
	}
	if name := strings.TrimSpace(info.FirstName + " " + info.LastName); name != "" {
		return name
	}
	return "-"
}
