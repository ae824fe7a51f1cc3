// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/levuhoang/photoring/internal/upload"
)

// newUploadCommand runs the full reconciliation flow for one file.
func newUploadCommand(verbose *bool) *cobra.Command {
	var (
		title       string
		commentText string
		yes         bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Add a photo to the gallery, via the photo drop when reachable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *verbose)
			if err != nil {
				return err
			}
			defer session.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			recovery := func() bool {
				if yes {
					return true
				}
				cmd.Print("Local storage is full. Remove older uploaded photos and retry? [y/N] ")
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			}

			result, err := session.Reconciler.Submit(cmd.Context(), &upload.Draft{
				Filename:    filepath.Base(args[0]),
				Data:        data,
				Title:       title,
				CommentText: commentText,
			}, recovery)
			if err != nil {
				return err
			}

			if result.StoredRemotely {
				cmd.Printf("Stored on the photo drop: %s\n", result.Image.Source)
			} else {
				cmd.Println("Photo drop unreachable; photo kept locally.")
			}
			if result.RecoveredCapacity {
				cmd.Println("Older uploaded photos were removed to make room.")
			}
			cmd.Printf("Added %q as %s (%d photos in the ring)\n",
				result.Image.Caption, result.Image.ID, session.Registry.Count())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "photo title (defaulted when empty)")
	cmd.Flags().StringVar(&commentText, "comment", "", "first comment to attach")
	cmd.Flags().BoolVar(&yes, "yes", false, "pre-accept the storage recovery prompt")

	return cmd
}
