// Copyright (c) 2026 Photoring. All rights reserved.
// Author: vu.hoangle.dev@gmail.com

package main

import (
	"github.com/spf13/cobra"
)

// newListCommand prints every slot in the ring.
func newListCommand(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the carousel slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, *verbose)
			if err != nil {
				return err
			}
			defer session.Close()

			slots := session.Registry.Slots()
			if len(slots) == 0 {
				cmd.Println("The gallery is empty.")
				return nil
			}

			for _, slot := range slots {
				cmd.Printf("%3d  %6.1f°  %-8s  %s  (%s)\n",
					slot.Index, slot.Angle, slot.Image.Origin, slot.Image.Caption, slot.Image.ID)
			}
			cmd.Printf("%d photos, %.1f° apart\n", len(slots), 360.0/float64(len(slots)))
			return nil
		},
	}
}
