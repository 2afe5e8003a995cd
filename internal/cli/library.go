package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Video library commands",
	}

	cmd.AddCommand(newLibraryShowCmd())
	cmd.AddCommand(newLibraryLoadCmd())
	cmd.AddCommand(newLibraryChooseCmd())

	return cmd
}

func newLibraryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the video catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Library

			if err := client.Get("/api/v1/library", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLibraryLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Request the video bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LoadResult

			if err := client.Post("/api/v1/library/load", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLibraryChooseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choose <index>",
		Short: "Choose a video by catalog index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			req := map[string]int{"index": index}
			if err := client.Post("/api/v1/library/choose", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Video chosen")
			return nil
		},
	}
}
