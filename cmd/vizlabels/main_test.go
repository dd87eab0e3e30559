package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/xos"

	"oss.terrastruct.com/vizcore/lib/label"
	"oss.terrastruct.com/vizcore/lib/log"
	"oss.terrastruct.com/vizcore/lib/xmain"
	"oss.terrastruct.com/vizcore/vizlabels"
)

func testState(in string) *xmain.State {
	env := xos.NewEnv(nil)
	return &xmain.State{
		Stdin: strings.NewReader(in),
		Env:   env,
		Opts:  xmain.NewOpts(env, nil),
	}
}

func TestLayoutFile(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	in := `{
  "viewport": {"width": 200, "height": 100},
  "candidates": [
    {
      "text": "north",
      "size": {"width": 30, "height": 10},
      "anchor": {"kind": 1, "polygon": [{"x": 10, "y": 10}, {"x": 90, "y": 10}, {"x": 90, "y": 60}, {"x": 10, "y": 60}]},
      "positions": ["CENTER", "ABOVE"]
    },
    {
      "text": "pin",
      "size": {"width": 20, "height": 10},
      "anchor": {"kind": 0, "point": {"x": 150, "y": 50}},
      "positions": ["RIGHT"]
    }
  ]
}`
	out, err := layoutFile(ctx, testState(in), xmain.StdioPath, vizlabels.DefaultMaxOffset, "")
	if err != nil {
		t.Fatal(err)
	}
	if assert.Len(t, out.Labels, 2) {
		assert.Equal(t, "north", out.Labels[0].Text)
		assert.True(t, out.Labels[0].IsVisible)
		assert.True(t, out.Labels[0].IsPlacedInsidePolygon)
		assert.Equal(t, label.Center, out.Labels[0].Position)

		assert.Equal(t, "pin", out.Labels[1].Text)
		assert.Equal(t, label.Right, out.Labels[1].Position)
		assert.Equal(t, label.TextAnchorStart, out.Labels[1].TextAnchor)
	}

	// the output document keeps the text next to each placement
	b, err := json.Marshal(out)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"text":"north"`)
}

func TestLayoutConfig(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		config string
		exp    func(*vizlabels.Config)
	}{
		{
			name: "no_config",
			exp:  func(*vizlabels.Config) {},
		},
		{
			name:   "partial_config_keeps_defaults",
			config: `{"minOffset": 8}`,
			exp: func(c *vizlabels.Config) {
				c.MinOffset = 8
			},
		},
		{
			name:   "fixture_beats_env",
			config: `{"maxOffset": 30}`,
			exp: func(c *vizlabels.Config) {
				c.MaxOffset = 30
			},
		},
		{
			name:   "flag_beats_fixture",
			args:   []string{"--max-offset=90"},
			config: `{"maxOffset": 30}`,
			exp: func(c *vizlabels.Config) {
				c.MaxOffset = 90
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			env := xos.NewEnv([]string{"VIZ_MAX_OFFSET=45"})
			ms := &xmain.State{Env: env, Opts: xmain.NewOpts(env, tc.args)}
			maxOffset, err := ms.Opts.Float64("VIZ_MAX_OFFSET", "max-offset", "", vizlabels.DefaultMaxOffset, "")
			assert.NoError(t, err)
			assert.NoError(t, ms.Opts.Flags.Parse(ms.Opts.Args))

			var raw json.RawMessage
			if tc.config != "" {
				raw = json.RawMessage(tc.config)
			}
			cfg, err := layoutConfig(ms, raw, *maxOffset)
			assert.NoError(t, err)

			exp := vizlabels.DefaultConfig()
			exp.MaxOffset = 45
			tc.exp(&exp)
			assert.Equal(t, exp, cfg)
			assert.Equal(t, float64(vizlabels.DefaultStemExtension), cfg.StemExtension)
		})
	}
}

func TestLayoutFileErrors(t *testing.T) {
	ctx := log.WithTB(context.Background(), t, nil)

	_, err := layoutFile(ctx, testState(`{`), xmain.StdioPath, vizlabels.DefaultMaxOffset, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to lay out -")

	_, err = layoutFile(ctx, testState(`{"viewport": {"width": 0, "height": 10}}`), xmain.StdioPath, vizlabels.DefaultMaxOffset, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "positive size")

	_, err = layoutFile(ctx, testState(`{"viewport": {"width": 10, "height": 10}, "config": {"minOffset": "near"}}`), xmain.StdioPath, vizlabels.DefaultMaxOffset, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
