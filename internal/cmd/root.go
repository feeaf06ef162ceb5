// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for arc-recall.
func NewRootCmd(app *App) *cobra.Command {

	root := &cobra.Command{
		Use:   "arc-recall",
		Short: "Manage and study your flashcards",
		Long: `Organize flashcards into nested categories and study them.

arc-recall provides tools to:
- Organize flashcards under a category tree
- Add, edit, and remove flashcards
- Search and filter your collection
- Run self-paced study sessions
- Export your deck for backup or to Anki

Signed in, your data lives on the arc-recall service; signed out,
everything stays on this device.`,
	}

	root.AddCommand(newAuthCmd(app))
	root.AddCommand(newCategoryCmd(app))
	root.AddCommand(newCardCmd(app))
	root.AddCommand(newStudyCmd(app))
	root.AddCommand(newExportCmd(app))
	root.AddCommand(newStatsCmd(app))

	return root
}
