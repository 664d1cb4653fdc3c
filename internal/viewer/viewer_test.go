package viewer

import (
	"fmt"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mandex/mandex/internal/errors"
)

// fakeEnv wires a dispatcher to a fixed set of "installed" viewers and
// records what gets started.
type fakeEnv struct {
	installed map[string]bool
	started   []string
	startErr  map[string]error
}

func (f *fakeEnv) apply(d *Dispatcher) {
	d.lookPath = func(name string) (string, error) {
		if f.installed[name] {
			return "/usr/bin/" + name, nil
		}
		return "", fmt.Errorf("%s not found", name)
	}
	d.start = func(name string, args ...string) error {
		if err := f.startErr[name]; err != nil {
			return err
		}
		f.started = append(f.started, fmt.Sprintf("%s %v", name, args))
		return nil
	}
}

func TestOpen_UsesFirstInstalledViewer(t *testing.T) {
	env := &fakeEnv{installed: map[string]bool{"evince": true, "xdg-open": true}}
	d := New("")
	env.apply(d)

	require.NoError(t, d.Open("/manuals/m68k.pdf", 129))
	require.Len(t, env.started, 1)
	assert.Equal(t, "evince [-p 129 /manuals/m68k.pdf]", env.started[0])
}

func TestOpen_FallsThroughOnStartFailure(t *testing.T) {
	env := &fakeEnv{
		installed: map[string]bool{"zathura": true, "okular": true},
		startErr:  map[string]error{"zathura": fmt.Errorf("exec format error")},
	}
	d := New("")
	env.apply(d)

	require.NoError(t, d.Open("/m.pdf", 7))
	require.Len(t, env.started, 1)
	assert.Contains(t, env.started[0], "okular")
}

func TestOpen_NoViewerAvailable(t *testing.T) {
	env := &fakeEnv{installed: map[string]bool{}}
	d := New("")
	env.apply(d)

	err := d.Open("/m.pdf", 7)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeViewerUnavailable, errors.GetCode(err))

	var merr *errors.Error
	require.True(t, stderrors.As(err, &merr))
	assert.NotEmpty(t, merr.Suggestion)
}

func TestNew_PreferredViewerOnly(t *testing.T) {
	env := &fakeEnv{installed: map[string]bool{"zathura": true, "okular": true}}
	d := New("okular")
	env.apply(d)

	require.NoError(t, d.Open("/m.pdf", 42))
	require.Len(t, env.started, 1)
	assert.Equal(t, "okular [-p 42 /m.pdf]", env.started[0])
}

func TestNew_UnknownPreferredViewerGetsPlainInvocation(t *testing.T) {
	env := &fakeEnv{installed: map[string]bool{"myviewer": true}}
	d := New("myviewer")
	env.apply(d)

	require.NoError(t, d.Open("/m.pdf", 42))
	require.Len(t, env.started, 1)
	assert.Equal(t, "myviewer [/m.pdf]", env.started[0])
}

func TestCapabilities_PageArguments(t *testing.T) {
	byName := make(map[string]Capability, len(capabilities))
	for _, c := range capabilities {
		byName[c.Name] = c
	}

	assert.Equal(t, []string{"--page=30", "m.pdf"}, byName["zathura"].Args("m.pdf", 30))
	assert.Equal(t, []string{"-p", "30", "m.pdf"}, byName["okular"].Args("m.pdf", 30))
	assert.Equal(t, []string{"-p", "30", "m.pdf"}, byName["evince"].Args("m.pdf", 30))
	assert.Equal(t, []string{"m.pdf", "30"}, byName["mupdf"].Args("m.pdf", 30))
	assert.Equal(t, []string{"m.pdf", ":30"}, byName["xpdf"].Args("m.pdf", 30))
	assert.Equal(t, []string{"m.pdf"}, byName["xdg-open"].Args("m.pdf", 30))
}
