// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package main

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/levuhoang/photoring/internal/carousel"
)

// newShowCommand runs the live carousel with the real autoplay timer,
// driven by single-letter commands on stdin.
func newShowCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Run the carousel interactively",
		Long: `Run the carousel interactively.

Commands:
  n          next photo (inside the lightbox: next image)
  p          previous photo (inside the lightbox: previous image)
  s          pause / resume autoplay
  o <index>  open the lightbox on a slot
  c          close the lightbox
  q          quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *verbose)
			if err != nil {
				return err
			}
			defer session.Close()

			controller := session.Controller
			controller.Start()
			printStatus(cmd, controller.Status())

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				cmd.Print("> ")
				if !scanner.Scan() {
					return scanner.Err()
				}

				fields := strings.Fields(scanner.Text())
				if len(fields) == 0 {
					continue
				}

				switch fields[0] {
				case "q":
					return nil

				case "n":
					if controller.Status().ModalOpen {
						printView(cmd, controller, 1)
					} else {
						controller.Next()
					}

				case "p":
					if controller.Status().ModalOpen {
						printView(cmd, controller, -1)
					} else {
						controller.Prev()
					}

				case "s":
					if controller.TogglePause() {
						cmd.Println("Paused.")
					} else {
						cmd.Println("Playing.")
					}

				case "o":
					if len(fields) < 2 {
						cmd.Println("Usage: o <index>")
						continue
					}
					index, err := strconv.Atoi(fields[1])
					if err != nil {
						cmd.Println("Usage: o <index>")
						continue
					}
					view, err := controller.OpenModal(cmd.Context(), index)
					if err != nil {
						cmd.Println(err.Error())
						continue
					}
					printModal(cmd, view)

				case "c":
					controller.CloseModal()
					cmd.Println("Lightbox closed.")

				default:
					cmd.Println("Commands: n, p, s, o <index>, c, q")
				}

				printStatus(cmd, controller.Status())
			}
		},
	}
}

// printView navigates inside the lightbox and renders the landing image.
func printView(cmd *cobra.Command, controller *carousel.Controller, direction int) {
	view, err := controller.Navigate(cmd.Context(), direction)
	if err != nil {
		cmd.Println(err.Error())
		return
	}
	printModal(cmd, view)
}

// printModal renders the open slot and its comment board.
func printModal(cmd *cobra.Command, view carousel.ModalView) {
	cmd.Printf("[%d] %s\n", view.Slot.Index, view.Slot.Image.Caption)
	if len(view.Comments) == 0 {
		cmd.Println("  No comments yet. Be the first to comment!")
		return
	}
	for _, entry := range view.Comments {
		cmd.Printf("  %s: %s\n", entry.Author, entry.Text)
	}
}

// printStatus renders one line of carousel state.
func printStatus(cmd *cobra.Command, status carousel.Status) {
	state := "playing"
	if status.Paused {
		state = "paused"
	}
	if status.ModalOpen {
		state = "lightbox open"
	}
	cmd.Printf("[%d photos | %.1f° | %s]\n", status.Count, status.Rotation, state)
}
