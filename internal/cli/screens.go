package cli

import (
	"github.com/spf13/cobra"
)

func newScreensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screens",
		Short: "Screen navigation commands",
	}

	cmd.AddCommand(newScreensShowCmd())
	cmd.AddCommand(newScreensProjectCmd("project1", "Enter the video library project"))
	cmd.AddCommand(newScreensProjectCmd("project2", "Enter the virtual showroom project"))

	return cmd
}

func newScreensShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Screen

			if err := client.Get("/api/v1/screens", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newScreensProjectCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/screens/"+name, nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Entered " + name)
			return nil
		},
	}
}
