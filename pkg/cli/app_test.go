package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapilab/featscale/pkg/experiment"
)

func TestNewApp(t *testing.T) {
	initLogging(false)

	app := newApp()
	require.NotNil(t, app)
	assert.Equal(t, name, app.Name)

	var cmds []string
	for _, c := range app.Commands {
		cmds = append(cmds, c.Name)
	}
	assert.Contains(t, cmds, "fetch")
	assert.Contains(t, cmds, "run")
	assert.Contains(t, cmds, "vocab")
}

func TestPrintResultTable(t *testing.T) {
	results := []*experiment.Result{
		{Term: "order", Weight: 1, C: 1, Coef: 1.1239, Posterior: 0.7928},
		{Term: "order", Weight: 100, C: 1, Coef: 0.0411, Posterior: 0.9865},
	}

	var buf bytes.Buffer
	printResultTable(&buf, results)

	assert.Equal(t,
		"term\tcoef\tposterior\n"+
			"order\t1.124\t0.793\n"+
			"order\t0.041\t0.987\n",
		buf.String())
}

func TestPrintResultTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	printResultTable(&buf, nil)
	assert.Equal(t, "term\tcoef\tposterior\n", buf.String())
}
