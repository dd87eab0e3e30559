package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"oss.terrastruct.com/xdefer"

	"oss.terrastruct.com/vizcore/lib/geo"
	"oss.terrastruct.com/vizcore/lib/go2"
	"oss.terrastruct.com/vizcore/lib/log"
	"oss.terrastruct.com/vizcore/lib/textmeasure"
	"oss.terrastruct.com/vizcore/lib/version"
	"oss.terrastruct.com/vizcore/lib/xmain"
	"oss.terrastruct.com/vizcore/vizlabels"
)

func main() {
	xmain.Main(run)
}

func run(ctx context.Context, ms *xmain.State) (err error) {
	maxOffsetFlag, err := ms.Opts.Float64("VIZ_MAX_OFFSET", "max-offset", "", vizlabels.DefaultMaxOffset, "the largest distance in pixels a label is pushed off of its anchor")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("VIZ_DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Log.Warn.Printf("Invalid VIZ_DEBUG value ignored")
		debugFlag = go2.Pointer(false)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}
	fontFlag := ms.Opts.String("VIZ_FONT", "font", "", "", "path to a .ttf file used to measure donut labels. If none provided, Go Regular is used.")

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}
	if err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}

	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}

	args := ms.Opts.Flags.Args()
	if len(args) == 0 {
		help(ms)
		return nil
	} else if len(args) > 2 {
		return xmain.UsageErrorf("too many arguments passed")
	}
	inputPath := args[0]
	outputPath := xmain.StdioPath
	if len(args) == 2 {
		outputPath = args[1]
	}

	ctx = ms.WithSlog(ctx, *debugFlag)
	defer log.Sync(ctx)

	out, err := layoutFile(ctx, ms, inputPath, *maxOffsetFlag, *fontFlag)
	if err != nil {
		return err
	}
	if err := ms.WriteJSON(outputPath, out); err != nil {
		return err
	}
	if outputPath != xmain.StdioPath {
		ms.Log.Success.Printf("laid out %v to %v", inputPath, outputPath)
	}
	return nil
}

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `Usage:
  %s [--max-offset=60] [--font=font.ttf] [--debug] file.json [output.json]

%[1]s lays out the chart labels described by file.json and writes where each
one landed as JSON. Use - for stdin or stdout.

Flags:
%s
`, ms.Name, ms.Opts.Help())
}

// input describes either free standing label candidates or the slices of a donut.
type input struct {
	Viewport   vizlabels.Viewport          `json:"viewport"`
	Transform  *geo.Transform              `json:"transform,omitempty"`
	Config     json.RawMessage             `json:"config,omitempty"`
	Candidates []*vizlabels.LabelCandidate `json:"candidates,omitempty"`
	Donut      *donutInput                 `json:"donut,omitempty"`
}

type donutInput struct {
	OuterRadius float64              `json:"outerRadius"`
	FontSize    float64              `json:"fontSize,omitempty"`
	Arcs        []vizlabels.DonutArc `json:"arcs"`
}

type output struct {
	Labels []placed                `json:"labels,omitempty"`
	Donut  []*vizlabels.DonutLabel `json:"donut,omitempty"`
}

type placed struct {
	Text string `json:"text"`
	*vizlabels.PlacedLabel
}

func layoutFile(ctx context.Context, ms *xmain.State, inputPath string, maxOffset float64, fontPath string) (_ *output, err error) {
	defer xdefer.Errorf(&err, "failed to lay out %s", inputPath)

	var in input
	if err := ms.ReadJSON(inputPath, &in); err != nil {
		return nil, err
	}
	if in.Viewport.Width <= 0 || in.Viewport.Height <= 0 {
		return nil, fmt.Errorf("viewport must have a positive size, got %vx%v", in.Viewport.Width, in.Viewport.Height)
	}
	cfg, err := layoutConfig(ms, in.Config, maxOffset)
	if err != nil {
		return nil, err
	}

	var out output
	if in.Donut != nil {
		measurer, err := newRuler(ms, fontPath)
		if err != nil {
			return nil, err
		}
		dcfg := vizlabels.DefaultDonutConfig()
		dcfg.Layout = cfg
		if in.Donut.FontSize > 0 {
			dcfg.FontSize = in.Donut.FontSize
		}
		out.Donut = vizlabels.NewDonutLayout(dcfg, measurer).Layout(ctx, in.Donut.Arcs, in.Viewport, in.Donut.OuterRadius)
	}
	if len(in.Candidates) > 0 {
		transform := geo.Identity()
		if in.Transform != nil {
			transform = *in.Transform
		}
		for _, pl := range vizlabels.New(cfg).Layout(ctx, in.Candidates, in.Viewport, transform, true) {
			out.Labels = append(out.Labels, placed{Text: pl.Candidate.Text, PlacedLabel: pl})
		}
	}

	return &out, nil
}

// layoutConfig overlays the fixture's config onto the defaults. maxOffset comes
// from --max-offset or $VIZ_MAX_OFFSET: the flag beats the fixture, which beats
// the variable.
func layoutConfig(ms *xmain.State, raw json.RawMessage, maxOffset float64) (cfg vizlabels.Config, err error) {
	cfg = vizlabels.DefaultConfig()
	cfg.MaxOffset = maxOffset
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid config: %w", err)
		}
	}
	if ms.Opts.Changed("max-offset") {
		cfg.MaxOffset = maxOffset
	}
	return cfg, nil
}

func newRuler(ms *xmain.State, fontPath string) (*textmeasure.Ruler, error) {
	if fontPath == "" {
		return textmeasure.NewRuler()
	}
	ttf, err := ms.ReadPath(fontPath)
	if err != nil {
		return nil, err
	}
	return textmeasure.NewRulerFromTTF(ttf)
}
