package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newPlaybackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playback",
		Short: "Playback control commands",
	}

	cmd.AddCommand(newPlaybackStatusCmd())
	cmd.AddCommand(newPlaybackControlCmd("pause", "Toggle pause"))
	cmd.AddCommand(newPlaybackSeekCmd())
	cmd.AddCommand(newPlaybackControlCmd("fast-forward", "Skip forward five seconds"))
	cmd.AddCommand(newPlaybackControlCmd("rewind", "Skip back five seconds"))
	cmd.AddCommand(newPlaybackControlCmd("stop", "Stop playback"))
	cmd.AddCommand(newPlaybackReplayCmd())

	return cmd
}

func newPlaybackStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show playback state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Playback

			if err := client.Get("/api/v1/playback", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaybackControlCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Playback

			if err := client.Post("/api/v1/playback/"+name, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaybackSeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seek <seconds>",
		Short: "Seek to an absolute position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			req := map[string]float64{"seconds": seconds}
			var result Playback

			if err := client.Post("/api/v1/playback/seek", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaybackReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Restart the last chosen video",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/playback/replay", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Replaying")
			return nil
		},
	}
}
