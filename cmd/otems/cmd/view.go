package cmd

import (
	"fmt"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/jbeda/geom"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/material"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/mesh"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer"
	"github.com/OpenTraceLab/OpenTraceEMS/pkg/ems/renderer/palette"
)

var (
	viewConfig string
	viewNoMesh bool
)

var viewCmd = &cobra.Command{
	Use:   "view <board_file>",
	Short: "View the converted board and its grid",
	Long: `Opens the converted board in an interactive Gio-based viewer with the
generated mesh lines on top. Lines bounding a gap that breaks the configured
limits are drawn in the warning colour.

Controls:
  Left Click / R    - Rotate 90°
  Right Click / F   - Flip board
  Scroll Wheel      - Zoom in/out
  Space             - Fit board to window
  M                 - Toggle mesh lines
  O                 - Toggle board outline
  1-5               - Toggle box, pcb, metal_bot, metal_top, hole_fill
  T                 - Next colour theme
  Q / Escape        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().StringVarP(&viewConfig, "config", "c", "", "(in) JSON configuration file")
	viewCmd.Flags().BoolVar(&viewNoMesh, "no-mesh", false, "do not generate the grid")
	viewCmd.Flags().StringVar(&themeName, "theme", "Classic", "colour theme")
	addMeshFlags(viewCmd)
}

// viewer is the window state shared by the event handlers.
type viewer struct {
	camera *renderer.Camera
	layers *renderer.LayerConfig
	scene  *renderer.Scene
	theme  palette.Theme
	bounds geom.Rect
	fit    bool
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	fmt.Printf("Loading board: %s\n", filename)
	prj, err := loadProject(viewConfig, filename)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Converted %d primitives\n", len(prj.model.Primitives))

	scene := &renderer.Scene{Model: prj.model}
	if !viewNoMesh {
		extra, err := extraLines(meshSpecs)
		if err != nil {
			return err
		}
		lines, rep := prj.generateMesh(extra)
		scene.Lines, scene.Report = &lines, rep
		fmt.Printf("  Mesh: %d x %d x %d lines\n", len(lines[mesh.X]), len(lines[mesh.Y]), len(lines[mesh.Z]))
	}

	theme, ok := palette.ParseTheme(themeName)
	if !ok {
		logWarn("unknown theme %q, using %s", themeName, palette.ThemeNames[theme])
	}

	v := &viewer{
		camera: renderer.NewCamera(1000, 800),
		layers: renderer.NewLayerConfig(),
		scene:  scene,
		theme:  theme,
	}
	v.bounds, v.fit = prj.model.Bounds()
	if v.fit {
		v.camera.Fit(v.bounds)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("OpenTraceEMS - " + filename))
		w.Option(app.Size(unit.Dp(1000), unit.Dp(800)))

		if err := v.run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func (v *viewer) run(w *app.Window) error {
	var ops op.Ops

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			ops.Reset()

			gtx := layout.Context{
				Ops:         &ops,
				Constraints: layout.Exact(e.Size),
				Metric:      e.Metric,
				Now:         e.Now,
				Source:      e.Source,
			}

			v.camera.UpdateScreenSize(e.Size.X, e.Size.Y)

			for {
				ev, ok := gtx.Event(key.Filter{})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if v.handleKey(ke.Name) {
						return nil
					}
					w.Invalidate()
				}
			}

			for {
				ev, ok := gtx.Event(pointer.Filter{
					Kinds: pointer.Press | pointer.Scroll,
				})
				if !ok {
					break
				}
				if pe, ok := ev.(pointer.Event); ok {
					switch pe.Kind {
					case pointer.Press:
						if pe.Buttons == pointer.ButtonPrimary {
							v.camera.Rotate(90)
						} else if pe.Buttons == pointer.ButtonSecondary {
							v.camera.Flip()
						}
					case pointer.Scroll:
						zoomFactor := 1.0 + float64(pe.Scroll.Y)*0.1
						v.camera.ZoomAt(float64(pe.Position.X), float64(pe.Position.Y), zoomFactor)
					}
					w.Invalidate()
				}
			}

			renderer.RenderModel(gtx, v.camera, v.scene, v.layers, palette.For(v.theme))
			e.Frame(&ops)
		}
	}
}

// handleKey applies one key press and reports whether the window should close.
func (v *viewer) handleKey(k key.Name) bool {
	switch k {
	case key.NameEscape, "Q":
		return true
	case "F":
		v.camera.Flip()
	case "R":
		v.camera.Rotate(90)
	case key.NameLeftArrow:
		v.camera.Rotate(-90)
	case key.NameSpace:
		if v.fit {
			v.camera.Fit(v.bounds)
		}
	case "M":
		v.layers.Toggle(renderer.LayerMesh)
	case "O":
		v.layers.Toggle(renderer.LayerOutline)
	case "T":
		v.theme = (v.theme + 1) % palette.Theme(len(palette.ThemeNames))
		logInfo("theme %s", palette.ThemeNames[v.theme])
	default:
		if name, ok := materialKeys[string(k)]; ok {
			logInfo("%s visible: %v", name, v.layers.Toggle(name))
		}
	}
	return false
}

// materialKeys toggles materials in draw order.
var materialKeys = map[string]string{
	"1": material.NameBox,
	"2": material.NamePCB,
	"3": material.NameMetalBot,
	"4": material.NameMetalTop,
	"5": material.NameHoleFill,
}
