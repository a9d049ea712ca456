package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ENTRY_ID",
	Short: "Print the content of a file or report",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	entry, err := a.views.Preview(cmd.Context(), a.sess.CompanyID, args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return a.printJSON(entry)
	}

	fmt.Fprintf(a.out, "%s\n\n", entry.Name)
	if entry.Payload != nil {
		fmt.Fprintln(a.out, *entry.Payload)
	}
	return nil
}
