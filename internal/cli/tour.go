package cli

import (
	"github.com/spf13/cobra"
)

func newTourCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tour",
		Short: "Showroom tour commands",
	}

	cmd.AddCommand(newTourStatusCmd())
	cmd.AddCommand(newTourStepCmd("build", "Build the showroom scene"))
	cmd.AddCommand(newTourStepCmd("next", "Advance the tour"))
	cmd.AddCommand(newTourStepCmd("back", "Step the tour backwards"))

	return cmd
}

func newTourStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the tour state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Tour

			if err := client.Get("/api/v1/tour", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTourStepCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Tour

			if err := client.Post("/api/v1/tour/"+name, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
