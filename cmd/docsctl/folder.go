package main

import (
	"fmt"

	docsysSvc "fitconsole/internal/domain/services/docsystem"
	"fitconsole/internal/httputil"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runMkdir,
}

var renameCmd = &cobra.Command{
	Use:   "rename FOLDER_ID NAME",
	Short: "Rename a folder",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

var rmCmd = &cobra.Command{
	Use:   "rm FOLDER_ID",
	Short: "Delete a folder and its subfolders",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var (
	mkdirDescription  string
	mkdirParent       string
	renameDescription string
)

func init() {
	mkdirCmd.Flags().StringVar(&mkdirDescription, "description", "", "Folder description")
	mkdirCmd.Flags().StringVar(&mkdirParent, "parent", "", "Parent folder id (default root)")
	renameCmd.Flags().StringVar(&renameDescription, "description", "", "New description (omit to keep)")

	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
}

func runMkdir(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	req := &docsysSvc.CreateFolderRequest{
		CompanyID:   a.sess.CompanyID,
		Name:        args[0],
		Description: mkdirDescription,
	}
	if mkdirParent != "" {
		req.ParentID = &mkdirParent
	}

	folder, err := a.folders.CreateFolder(cmd.Context(), req)
	if err != nil {
		return err
	}

	if jsonOut {
		return a.printJSON(folder)
	}
	fmt.Fprintf(a.out, "created folder %s (%s)\n", folder.Name, folder.ID)
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	req := &docsysSvc.RenameFolderRequest{
		CompanyID: a.sess.CompanyID,
		Name:      args[1],
	}
	if cmd.Flags().Changed("description") {
		req.Description = httputil.Set(renameDescription)
	}

	folder, err := a.folders.RenameFolder(cmd.Context(), args[0], req)
	if err != nil {
		return err
	}

	if jsonOut {
		return a.printJSON(folder)
	}
	fmt.Fprintf(a.out, "renamed folder %s to %s\n", folder.ID, folder.Name)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if err := a.folders.DeleteFolder(cmd.Context(), a.sess.CompanyID, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted folder %s\n", args[0])
	return nil
}
