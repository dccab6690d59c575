package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"atlasgrip/internal/project"
	"atlasgrip/internal/tree"
	"atlasgrip/internal/ui"
)

func newTreeCmd(a *app) *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the project tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			store := tree.FromProject(a.manager.Project(), true)
			if plain {
				return store.WriteOutline(cmd.OutOrStdout())
			}
			var buf bytes.Buffer
			if err := store.WriteOutline(&buf); err != nil {
				return err
			}
			return ui.ShowInPager(&buf)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "write to stdout instead of the pager")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the project descriptor to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireProject(); err != nil {
				return err
			}
			switch strings.ToLower(format) {
			case "toml":
				return project.ExportTOML(a.manager.Project(), cmd.OutOrStdout())
			case "yaml", "yml":
				return project.ExportYAML(a.manager.Project(), cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format %q (want toml or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")
	return cmd
}

func newAddAtlasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-atlas <file>...",
		Short: "Register atlas files and save the project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]string, 0, len(args))
			for _, f := range args {
				abs, err := filepath.Abs(f)
				if err != nil {
					return fmt.Errorf("failed to resolve %s: %w", f, err)
				}
				files = append(files, abs)
			}

			invalid := a.manager.AddAtlases(files...)
			if len(invalid) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "already registered: %s\n", strings.Join(invalid, ", "))
			}
			if len(invalid) == len(files) {
				return nil
			}

			err := a.manager.Save()
			if errors.Is(err, project.ErrNoPath) {
				err = a.manager.SaveAs(a.cfg.Project)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d atlas(es) to %s\n", len(files)-len(invalid), a.manager.Project().Path)
			return nil
		},
	}
}
