// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

// Command gallery is the local photo gallery: the carousel, the lightbox,
// the comment board, and the upload flow, driven from the terminal.
//
// Every subcommand opens the same [viewer.Session], so the state it shows is
// exactly the state the next invocation will see.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/levuhoang/photoring/internal/platform/config"
	"github.com/levuhoang/photoring/internal/platform/constants"
	"github.com/levuhoang/photoring/internal/viewer"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCommand assembles the CLI tree.
func newRootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Browse and extend the local photo carousel",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCommand(&verbose),
		newUploadCommand(&verbose),
		newCommentsCommand(&verbose),
		newCommentCommand(&verbose),
		newShowCommand(&verbose),
	)

	return root
}

// openSession loads configuration and wires a gallery session for one command.
//
// Logs go to stderr so command output on stdout stays parseable.
func openSession(cmd *cobra.Command, verbose bool) (*viewer.Session, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return viewer.Open(cmd.Context(), cfg, logger)
}
