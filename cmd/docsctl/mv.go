package main

import (
	"fmt"

	docsysSvc "fitconsole/internal/domain/services/docsystem"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv FILE_ID FOLDER_ID",
	Short: "Place a file into a folder",
	Long:  "Place a file into a folder. Only files with a persistent id can be moved; ids marked * in ls are synthetic.",
	Args:  cobra.ExactArgs(2),
	RunE:  runMv,
}

func init() {
	rootCmd.AddCommand(mvCmd)
}

func runMv(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	req := &docsysSvc.MoveFileRequest{
		CompanyID: a.sess.CompanyID,
		FileID:    args[0],
		FolderID:  args[1],
	}
	if err := a.moves.MoveFile(cmd.Context(), req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "moved %s to %s\n", args[0], args[1])
	return nil
}
