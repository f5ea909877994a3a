package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Natnat0905/GeoChat/internal/geometry"
	"github.com/Natnat0905/GeoChat/internal/render"
)

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Render a diagram straight from shape parameters (no LLM)",
	Long: `Normalize shape parameters and render the figure. The parameters go
through the same aliasing, derivation, and validation as chat answers, so
partial inputs work:

  geochat draw --shape rectangle --params '{"area": 20, "height": 4}'
  geochat draw --shape right_triangle --params '{"leg1": 3, "leg2": 4}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		shapeVal, _ := cmd.Flags().GetString("shape")
		paramsVal, _ := cmd.Flags().GetString("params")
		out, _ := cmd.Flags().GetString("out")
		asDataURI, _ := cmd.Flags().GetBool("data-uri")

		shape, ok := geometry.ParseShape(shapeVal)
		if !ok {
			return fmt.Errorf("unknown shape %q", shapeVal)
		}

		raw := map[string]any{}
		if paramsVal != "" {
			if err := json.Unmarshal([]byte(paramsVal), &raw); err != nil {
				return fmt.Errorf("parse --params: %w", err)
			}
		}

		params, err := geometry.New(logger).Normalize(shape, raw)
		if err != nil {
			if names, ok := render.ExpectedParams(shape); ok {
				return fmt.Errorf("%w (figure parameters: %s)", err, strings.Join(names, ", "))
			}
			return err
		}
		resolved, err := geometry.Resolve(shape, params)
		if err != nil {
			return err
		}
		png, err := render.New(logger).Render(resolved)
		if err != nil {
			return err
		}

		if asDataURI {
			fmt.Println(render.DataURI(png))
			return nil
		}

		if out == "" {
			out = fmt.Sprintf("%s.png", shape)
		}
		if err := os.WriteFile(out, png, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}

		// Echo the canonical set so callers see the derived values.
		if canonical, err := json.Marshal(params.Raw()); err == nil {
			fmt.Println(string(canonical))
		}
		fmt.Printf("Diagram saved to %s\n", out)
		return nil
	},
}

func init() {
	drawCmd.Flags().String("shape", "", "Shape key (circle, rectangle, right_triangle, ...)")
	drawCmd.Flags().String("params", "{}", "Shape parameters as JSON")
	drawCmd.Flags().StringP("out", "o", "", "Output PNG path (defaults to <shape>.png)")
	drawCmd.Flags().Bool("data-uri", false, "Print a base64 data URI instead of writing a file")
	_ = drawCmd.MarkFlagRequired("shape")
}
