package main

import (
	"fmt"
	"text/tabwriter"

	models "fitconsole/internal/domain/models/docsystem"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the entries at root or inside a folder",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

var lsFolder string

func init() {
	lsCmd.Flags().StringVar(&lsFolder, "folder", "", "Folder id to list (default root)")

	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	var view *models.View
	if lsFolder != "" {
		view, err = a.views.OpenFolder(cmd.Context(), a.sess, lsFolder)
	} else {
		view, err = a.views.GetView(cmd.Context(), a.sess)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return a.printJSON(view)
	}

	if view.Location.FolderID != nil {
		fmt.Fprintf(a.out, "%s/\n", view.Location.FolderName)
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tID\tNAME\tCATEGORY")
	for _, e := range view.Entries {
		id := e.ID
		if e.Synthetic {
			id += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, id, e.Name, e.Category)
	}
	return w.Flush()
}
