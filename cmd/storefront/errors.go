package main

import (
	"github.com/SlowBrain97/E-Commerce/internal/apiclient"
	apperrors "github.com/SlowBrain97/E-Commerce/internal/errors"
)

// reportError prints failures the stores do not announce themselves, such as
// local validation. Backend failures already reached the user as toasts.
func reportError(ctx *commandContext, err error) error {
	if err == nil || apiclient.IsRequestError(err) {
		return err
	}
	label := "error"
	if code := apperrors.GetCode(err); code != "" && code != apperrors.ErrCodeValidation {
		label = string(code)
	}
	_ = writef(ctx.Stderr, "[%s] %s\n", label, err.Error())
	switch {
	case apperrors.IsUnauthorized(err):
		_ = writeln(ctx.Stderr, "run `storefront login` first")
	case apperrors.IsNotFound(err):
		_ = writeln(ctx.Stderr, "run `storefront cart` to list line IDs")
	}
	return err
}

// reportQuiet prints a backend failure for reads that do not toast.
func reportQuiet(ctx *commandContext, err error, fallback string) error {
	if err == nil {
		return nil
	}
	_ = writef(ctx.Stderr, "[error] %s\n", apiclient.MessageOr(err, fallback))
	return err
}
