// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command librarian is the front-desk terminal client. It registers and looks
// up library users against the same database as the API server.
//
// Usage:
//
//	librarian list
//	librarian add -name "Ada Lovelace"
//	librarian search -name "Ada Lovelace"
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
	"syscall"
	"text/tabwriter"

	"github.com/taibuivan/library/internal/platform/apperr"
	"github.com/taibuivan/library/internal/platform/config"
	"github.com/taibuivan/library/internal/platform/constants"
	"github.com/taibuivan/library/internal/platform/database"
	pgstore "github.com/taibuivan/library/internal/platform/postgres"
	"github.com/taibuivan/library/internal/users"
)

// userService is the part of [users.Service] the client drives.
type userService interface {
	CreateUser(ctx context.Context, request users.CreateUserRequest) (*users.UserResponse, error)
	GetUsersByName(ctx context.Context, name string) ([]*users.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]*users.UserResponse, error)
}

// errUsage marks invocation mistakes that should print the usage text.
var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, "librarian:", describe(err))
		os.Exit(1)
	}
}

// execute connects to the database and runs one command.
func execute(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		printUsage(os.Stdout)
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", constants.AppName+"-librarian"))

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	db := pgstore.OpenDB(pool)
	defer db.Close()

	service := users.NewService(users.NewPostgresRepository(database.NewStandalone(db)), logger)
	return run(ctx, args, os.Stdout, service)
}

// run dispatches a command to the service and prints the result.
func run(ctx context.Context, args []string, out io.Writer, service userService) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "list":
		found, err := service.GetAllUsers(ctx)
		if err != nil {
			return err
		}
		return printUsers(out, found)

	case "add":
		name, err := parseName("add", args[1:])
		if err != nil {
			return err
		}
		created, err := service.CreateUser(ctx, users.CreateUserRequest{Name: name})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "registered user %d: %s\n", created.UserID, created.Name)
		return err

	case "search":
		name, err := parseName("search", args[1:])
		if err != nil {
			return err
		}
		found, err := service.GetUsersByName(ctx, name)
		if err != nil {
			return err
		}
		return printUsers(out, found)

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func parseName(command string, args []string) (string, error) {
	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	name := flags.String("name", "", "user name")

	if err := flags.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	return *name, nil
}

func printUsers(out io.Writer, found []*users.UserResponse) error {
	if len(found) == 0 {
		_, err := fmt.Fprintln(out, "no users found")
		return err
	}

	table := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(table, "ID\tNAME")
	for _, user := range found {
		fmt.Fprintf(table, "%d\t%s\n", user.UserID, user.Name)
	}
	return table.Flush()
}

// describe renders validation errors field by field.
func describe(err error) string {
	appError := apperr.As(err)
	if appError == nil || len(appError.Details) == 0 {
		return err.Error()
	}

	message := appError.Message
	for _, detail := range appError.Details {
		message += fmt.Sprintf("\n  %s: %s", detail.Field, detail.Message)
	}
	return message
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, `Library front-desk client

Usage:
  librarian <command> [options]

Commands:
  list                  List every registered user
  add -name <name>      Register a new user
  search -name <name>   Find users by exact name
  help                  Show this help

Environment:
  DATABASE_URL          PostgreSQL connection URL (required)`)
}
