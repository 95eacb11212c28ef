// Copyright (c) 2026 Evolve Nova. All rights reserved.
// Author: nagymedo25

// Command createadmin creates an administrator account from the terminal.
//
// It reads DATABASE_URL and the other settings from the environment like the
// API server, prompts for the name, email and password, and exits non-zero on
// failure. An existing account with the same email is left untouched.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/config"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/constants"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/ctxutil"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/migration"
	pgstore "github.com/nagymedo25/Evolve-Nova-Back/internal/platform/postgres"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/platform/sec"
	"github.com/nagymedo25/Evolve-Nova-Back/internal/users/auth"
)

// readPassword reads without echo; replaced in tests.
var readPassword = term.ReadPassword

func main() {
	if err := run(context.Background(), bufio.NewReader(os.Stdin), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input *bufio.Reader, output io.Writer) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx = ctxutil.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	name, err := prompt(input, output, "Name")
	if err != nil {
		return err
	}
	email, err := prompt(input, output, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword(output)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	codec, err := sec.NewTokenCodec([]byte(cfg.SessionSecret), constants.AuthIssuer, time.Now)
	if err != nil {
		return err
	}
	hasher, err := sec.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}

	service := auth.NewService(
		auth.NewAccountRepository(pool),
		auth.NewSessionRegistry(auth.NewPostgresSessionStore(pool), time.Now),
		codec,
		hasher,
		auth.Config{TokenTTL: cfg.TokenTTL, PasswordPolicy: sec.DefaultPasswordPolicy},
	)

	account, created, err := service.EnsureAdmin(ctx, auth.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}

	if !created {
		fmt.Fprintf(output, "An account with email %s already exists (id %d, role %s).\n", account.Email, account.ID, account.Role)
		return nil
	}

	fmt.Fprintf(output, "Administrator %s created with id %d.\n", account.Email, account.ID)
	return nil
}

// prompt reads one trimmed line. A partial line before EOF is accepted.
func prompt(input *bufio.Reader, output io.Writer, label string) (string, error) {
	fmt.Fprintf(output, "%s: ", label)

	line, err := input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}

	return strings.TrimSpace(line), nil
}

// promptPassword asks twice without echo and requires both entries to match.
func promptPassword(output io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Fprint(output, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(output)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(output, "Repeat password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(output)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}

	return string(first), nil
}
