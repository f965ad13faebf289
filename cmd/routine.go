package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bounce/internal/keyframe"
	"github.com/abhisek/bounce/internal/requirement"
	"github.com/abhisek/bounce/internal/routine"
	"github.com/abhisek/bounce/internal/routinegen"
	"github.com/abhisek/bounce/internal/skilldef"
	"github.com/abhisek/bounce/internal/ui/theme"
)

var routineCmd = &cobra.Command{
	Use:   "routine",
	Short: "Generate and check routines",
}

var routineGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random routine, optionally meeting a requirement",
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")
		reqID, _ := cmd.Flags().GetString("requirement")
		seed, _ := cmd.Flags().GetUint64("seed")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		opts := append(e.cfg.GeneratorOptions(), routinegen.WithLogger(e.logger))
		if length > 0 {
			opts = append(opts, routinegen.WithConfig(routinegen.Config{MaxLength: length}))
		}
		if seed != 0 {
			opts = append(opts, routinegen.WithSeed(seed))
		}
		gen := routinegen.New(opts...)

		var req *requirement.Requirement
		if reqID != "" {
			q, err := e.requirements.Get(reqID)
			if err != nil {
				return err
			}
			req = &q
		}

		res := gen.GenerateCompliant(e.catalog.All(), req, gen.Config().MaxAttempts)
		r := routine.New(res.Routine...)

		w := cmd.OutOrStdout()
		printRoutine(w, e, r, req)
		if req != nil {
			status := theme.Pass.Render("compliant")
			if !res.Compliant {
				status = theme.Fail.Render("not compliant")
			}
			fmt.Fprintf(w, "\n%s after %d attempt(s)", status, res.Attempts)
			if res.Relaxed {
				fmt.Fprint(w, theme.Warn.Render(" (difficulty cap relaxed)"))
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

var routineCheckCmd = &cobra.Command{
	Use:   "check <skill[:position]>...",
	Short: "Validate and score a routine given as skill names",
	Long: `Validate and score a routine. Each argument is a skill name, optionally
followed by ":" and a body position, e.g. "Barani:Pike".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reqID, _ := cmd.Flags().GetString("requirement")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		skills, err := parseSkills(e, args)
		if err != nil {
			return err
		}

		var req *requirement.Requirement
		if reqID != "" {
			q, err := e.requirements.Get(reqID)
			if err != nil {
				return err
			}
			req = &q
		}

		r := routine.New(skills...)
		printRoutine(cmd.OutOrStdout(), e, r, req)
		if !r.Valid() || (req != nil && !req.Satisfied(r.Skills)) {
			return fmt.Errorf("routine check failed")
		}
		return nil
	},
}

// routineFrame is one skill of a routine timeline. Bounce holds the poses
// between this skill's landing and the next skill's takeoff.
type routineFrame struct {
	Skill  string                     `json:"skill"`
	Frames any                        `json:"frames"`
	Bounce []keyframe.AthletePosition `json:"bounce,omitempty"`
}

var routineFramesCmd = &cobra.Command{
	Use:   "frames <skill[:position]>...",
	Short: "Print a routine's animation keyframes as JSON",
	Long: `Convert each skill of a routine into keyframes, carrying twist from one
skill into the next. Arguments are given as for 'routine check'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, _ := cmd.Flags().GetInt("samples")
		bounce, _ := cmd.Flags().GetInt("bounce")

		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		skills, err := parseSkills(e, args)
		if err != nil {
			return err
		}
		if r := routine.New(skills...); !r.Valid() {
			return fmt.Errorf("invalid routine: %s", strings.Join(r.Errors(), "; "))
		}

		timelines := keyframe.RoutineFrames(skills, func(def skilldef.SkillDefinition) keyframe.RenderProps {
			return keyframe.RenderPropertiesFor(def).Override(e.cfg.Render)
		})

		out := make([]routineFrame, len(timelines))
		for i, tl := range timelines {
			out[i] = routineFrame{Skill: skills[i].String(), Frames: tl}
			if samples > 1 {
				out[i].Frames = tl.Sample(samples)
			}
			if i < len(timelines)-1 {
				for j := range max(bounce, 0) {
					out[i].Bounce = append(out[i].Bounce, tl.Bounce(float64(j+1)/float64(bounce)))
				}
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

// parseSkills resolves "name[:position]" arguments against the catalog.
func parseSkills(e *env, args []string) ([]skilldef.SkillDefinition, error) {
	skills := make([]skilldef.SkillDefinition, 0, len(args))
	for _, arg := range args {
		name, pos, _ := strings.Cut(arg, ":")
		s, err := e.catalog.Instance(strings.TrimSpace(name), skilldef.BodyPosition(strings.TrimSpace(pos)))
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, nil
}

func printRoutine(w io.Writer, e *env, r *routine.Routine, req *requirement.Requirement) {
	sum := routine.Summarize(r.Skills, e.scorer, e.cfg.System())

	fmt.Fprintln(w, theme.Title.Render("Routine "+r.ID))
	fmt.Fprintln(w, theme.Divider(60))
	for i, line := range sum.Lines {
		fmt.Fprintf(w, "%2d. %-40s %s\n", i+1, line.Skill.String(), theme.Difficulty(line.Difficulty))
	}
	if len(sum.Lines) == 0 {
		fmt.Fprintln(w, theme.Label.Render("(empty)"))
	}
	fmt.Fprintln(w, theme.Divider(60))
	fmt.Fprintln(w, theme.Field("Total", fmt.Sprintf("%s (%s)", theme.Difficulty(sum.Total), sum.System)))
	fmt.Fprintln(w, theme.Field("Valid", theme.Mark(sum.Valid)))
	for _, msg := range sum.Violations {
		fmt.Fprintln(w, "  "+theme.Fail.Render(msg))
	}

	if req == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Heading.Render(req.Name))
	for _, res := range req.Evaluate(r.Skills) {
		line := fmt.Sprintf("%s %s", theme.Mark(res.Passed), res.Description)
		if res.Details != "" {
			line += theme.Label.Render(" · " + res.Details)
		}
		fmt.Fprintln(w, line)
	}
}

func init() {
	routineGenerateCmd.Flags().Int("length", 0, "Maximum routine length when no requirement fixes it")
	routineGenerateCmd.Flags().String("requirement", "", "Requirement ID to satisfy (see 'bounce requirement list')")
	routineGenerateCmd.Flags().Uint64("seed", 0, "Random seed for reproducible output")
	routineGenerateCmd.Flags().Bool("womens", false, "Use women's scoring")

	routineCheckCmd.Flags().String("requirement", "", "Requirement ID to check against")
	routineCheckCmd.Flags().Bool("womens", false, "Use women's scoring")

	routineFramesCmd.Flags().Int("samples", 0, "Resample each skill's timeline at N evenly spaced points")
	routineFramesCmd.Flags().Int("bounce", 0, "Emit N in-between poses after each landing")

	routineCmd.AddCommand(routineGenerateCmd)
	routineCmd.AddCommand(routineCheckCmd)
	routineCmd.AddCommand(routineFramesCmd)
}
