package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faypicker/fay/pkg/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func x11Env(commands ...string) env.Info {
	cmds := make(map[string]bool, len(commands))
	for _, c := range commands {
		cmds[c] = true
	}
	return env.Info{SessionType: "x11", XDisplay: ":0", Commands: cmds}
}

func TestFehAvailability(t *testing.T) {
	b := NewFehBackend()
	assert.True(t, b.IsAvailable(x11Env("feh")))
	assert.False(t, b.IsAvailable(x11Env("gsettings")))

	wayland := env.Info{SessionType: "wayland", Commands: map[string]bool{"feh": true}}
	assert.False(t, b.IsAvailable(wayland))
}

func TestFehApply(t *testing.T) {
	tmpDir := t.TempDir()
	img := writeTestImage(t, tmpDir, "pic.png", 2560, 1440)
	ctx := NewApplyContext(1920, 1080)

	runner := newFakeRunner()
	b := NewFehBackend()
	b.run = runner.run

	// Soft preview: --no-fehbg keeps feh from persisting the invocation.
	result := b.Apply(img, ModeFill, ctx, false)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"feh", "--no-fehbg", "--bg-fill", img}, runner.calls[0])

	// Persistent apply drops the flag, auto resolves before mapping.
	result = b.Apply(img, ModeAuto, ctx, true)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"feh", "--bg-fill", img}, runner.calls[1])

	// Unmapped mode defaults to bg-fill.
	result = b.Apply(img, "mystery", ctx, true)
	assert.True(t, result.OK)
	assert.Equal(t, []string{"feh", "--bg-fill", img}, runner.calls[2])
}

func TestFehCaptureCurrent(t *testing.T) {
	tmpDir := t.TempDir()
	fehbg := filepath.Join(tmpDir, ".fehbg")
	content := "#!/bin/sh\n" +
		"# set by feh\n" +
		"\n" +
		"feh --no-fehbg --bg-center '/old/one.png'\n" +
		"feh --no-fehbg --bg-max '/current/two three.png'\n"
	require.NoError(t, os.WriteFile(fehbg, []byte(content), 0755))

	b := NewFehBackend()
	b.fehbgPath = fehbg

	state := b.CaptureCurrent()
	require.NotNil(t, state)
	assert.Equal(t, "feh", state.BackendID)
	assert.Equal(t, "/current/two three.png", state.ImagePath)
	assert.Equal(t, ModeFit, state.Mode)
	assert.Equal(t,
		[]string{"feh", "--no-fehbg", "--bg-max", "/current/two three.png"},
		state.BackendState["command"])
}

func TestFehCaptureCurrentNoFile(t *testing.T) {
	b := NewFehBackend()
	b.fehbgPath = filepath.Join(t.TempDir(), ".fehbg")
	assert.Nil(t, b.CaptureCurrent())
}

func TestFehCaptureCurrentNoImages(t *testing.T) {
	tmpDir := t.TempDir()
	fehbg := filepath.Join(tmpDir, ".fehbg")
	require.NoError(t, os.WriteFile(fehbg, []byte("feh --bg-fill\n"), 0755))

	b := NewFehBackend()
	b.fehbgPath = fehbg
	assert.Nil(t, b.CaptureCurrent())
}

func TestFehRestoreReplaysVerbatimInvocation(t *testing.T) {
	runner := newFakeRunner()
	b := NewFehBackend()
	b.run = runner.run

	state := &State{
		BackendID: "feh",
		ImagePath: "/does/not/matter.png",
		Mode:      ModeFill,
		BackendState: map[string]interface{}{
			"command": []string{"feh", "--bg-center", "/exact/path.png"},
		},
	}
	result := b.Restore(state, NewApplyContext(1920, 1080))
	assert.True(t, result.OK)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"feh", "--bg-center", "/exact/path.png"}, runner.calls[0])
}

func TestFehRestoreFallsBackToReapply(t *testing.T) {
	tmpDir := t.TempDir()
	img := writeTestImage(t, tmpDir, "pic.png", 2560, 1440)

	runner := newFakeRunner()
	b := NewFehBackend()
	b.run = runner.run

	// Malformed stored invocation: fall back to a mode-keyed soft re-apply.
	state := &State{
		BackendID:    "feh",
		ImagePath:    img,
		Mode:         ModeCenter,
		BackendState: map[string]interface{}{"command": []interface{}{1, 2}},
	}
	result := b.Restore(state, NewApplyContext(1920, 1080))
	assert.True(t, result.OK)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"feh", "--no-fehbg", "--bg-center", img}, runner.calls[0])
}

func TestFehRestoreMissingImage(t *testing.T) {
	runner := newFakeRunner()
	b := NewFehBackend()
	b.run = runner.run

	state := &State{BackendID: "feh", ImagePath: "/gone.png", Mode: ModeFill}
	result := b.Restore(state, NewApplyContext(1920, 1080))
	assert.False(t, result.OK)
	assert.Empty(t, runner.calls)
}
