// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/levuhoang/photoring/internal/comment"
)

// newCommentsCommand prints an image's comment board, newest first.
func newCommentsCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <image-id>",
		Short: "Show the comment board for a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *verbose)
			if err != nil {
				return err
			}
			defer session.Close()

			comments, err := session.Comments.QueryByImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(comments) == 0 {
				cmd.Println("No comments yet. Be the first to comment!")
				return nil
			}

			for _, entry := range comments {
				cmd.Printf("%s  %s\n    %s\n",
					entry.CreatedAt.Local().Format("2006-01-02 15:04"), entry.Author, entry.Text)
			}
			return nil
		},
	}
}

// newCommentCommand appends a comment to an image's board.
func newCommentCommand(verbose *bool) *cobra.Command {
	var (
		author string
		text   string
	)

	cmd := &cobra.Command{
		Use:   "comment <image-id>",
		Short: "Add a comment to a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *verbose)
			if err != nil {
				return err
			}
			defer session.Close()

			entry := &comment.Comment{
				ImageID: args[0],
				Author:  author,
				Text:    text,
			}
			if err := session.Comments.Append(cmd.Context(), entry); err != nil {
				return err
			}

			cmd.Printf("Comment %s added.\n", entry.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "commenter name")
	cmd.Flags().StringVar(&text, "text", "", "comment text")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
