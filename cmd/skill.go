package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bounce/internal/keyframe"
	"github.com/abhisek/bounce/internal/skilldef"
	"github.com/abhisek/bounce/internal/ui/theme"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse the skill catalog",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skill instances (optionally filtered by start or body position)",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		position, _ := cmd.Flags().GetString("position")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		if start != "" && !skilldef.BedPosition(start).Valid() {
			return fmt.Errorf("unknown bed position %q", start)
		}
		if position != "" && !skilldef.BodyPosition(position).Valid() {
			return fmt.Errorf("unknown body position %q", position)
		}

		var skills []skilldef.SkillDefinition
		for _, s := range e.catalog.Instances() {
			if start != "" && s.StartingPosition != skilldef.BedPosition(start) {
				continue
			}
			if position != "" && s.Position != skilldef.BodyPosition(position) {
				continue
			}
			skills = append(skills, s)
		}
		if len(skills) == 0 {
			return fmt.Errorf("no skills match the given filters")
		}

		w := cmd.OutOrStdout()
		fmt.Fprintln(w, theme.Heading.Render(fmt.Sprintf("%-30s  %-9s  %-14s  %-14s  %5s  %-14s  %4s",
			"Name", "Position", "From", "To", "Flips", "Twists", "DD")))
		fmt.Fprintln(w, theme.Divider(104))

		for _, s := range skills {
			name := s.Name
			if len(name) > 30 {
				name = name[:27] + "..."
			}
			fmt.Fprintf(w, "%-30s  %-9s  %-14s  %-14s  %5g  %-14s  %s\n",
				name, s.Position,
				s.StartingPosition.DisplayName(), s.EndingPosition.DisplayName(),
				s.Flips, formatTwists(s.Twists),
				theme.Difficulty(e.scorer.Score(s)))
		}

		fmt.Fprintf(w, "\n%d skills\n", len(skills))
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's definition, difficulty and render budgets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, _ := cmd.Flags().GetString("position")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		s, err := e.catalog.Instance(args[0], skilldef.BodyPosition(position))
		if err != nil {
			return err
		}
		props := keyframe.RenderPropertiesFor(s).Override(e.cfg.Render)

		positions := make([]string, 0, len(s.Positions()))
		for _, p := range s.Positions() {
			positions = append(positions, fmt.Sprintf("%s %.1f", p, e.scorer.Score(s.WithPosition(p))))
		}

		lines := []string{
			theme.Title.Render(s.Name),
			theme.Field("Position", string(s.Position)),
			theme.Field("From", s.StartingPosition.DisplayName()),
			theme.Field("To", s.EndingPosition.DisplayName()),
			theme.Field("Flips", fmt.Sprintf("%g", s.Flips)),
			theme.Field("Twists", formatTwists(s.Twists)),
			theme.Field("Direction", direction(s)),
			theme.Field("Difficulty", theme.Difficulty(e.scorer.Score(s))),
			theme.Field("Positions", strings.Join(positions, ", ")),
			theme.Field("Stall", fmt.Sprintf("%.2f", props.StallRotation)),
			theme.Field("Kickout", fmt.Sprintf("%.2f", props.KickoutRotation)),
			theme.Field("Enter", fmt.Sprintf("%.2f", props.EnterRotation)),
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.Card.Render(strings.Join(lines, "\n")))
		return nil
	},
}

var skillFramesCmd = &cobra.Command{
	Use:   "frames <name>",
	Short: "Print a skill's animation keyframes as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, _ := cmd.Flags().GetString("position")
		incoming, _ := cmd.Flags().GetFloat64("incoming-twist")
		samples, _ := cmd.Flags().GetInt("samples")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		s, err := e.catalog.Instance(args[0], skilldef.BodyPosition(position))
		if err != nil {
			return err
		}

		props := keyframe.RenderPropertiesFor(s).Override(e.cfg.Render)
		frames := keyframe.MakeSkillFrames(s, incoming, &props)

		var out any = frames
		if samples > 1 {
			out = frames.Sample(samples)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func formatTwists(twists []float64) string {
	parts := make([]string, len(twists))
	for i, t := range twists {
		parts[i] = fmt.Sprintf("%g", t)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func direction(s skilldef.SkillDefinition) string {
	if s.IsBackSkill {
		return "backward"
	}
	return "forward"
}

func init() {
	skillListCmd.Flags().String("start", "", "Filter by starting bed position (e.g. Standing, Back)")
	skillListCmd.Flags().String("position", "", "Filter by body position (Tuck, Pike, Straight)")

	skillShowCmd.Flags().String("position", "", "Body position (defaults to the skill's own)")

	skillFramesCmd.Flags().String("position", "", "Body position (defaults to the skill's own)")
	skillFramesCmd.Flags().Float64("incoming-twist", 0, "Cumulative twist carried in from previous skills")
	skillFramesCmd.Flags().Int("samples", 0, "Resample the timeline at N evenly spaced points")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillFramesCmd)
}
