package cmd

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
)

func newGlobalContext(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	app := cli.NewApp()
	global := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	global.Bool("v", false, "")
	global.Bool("vv", false, "")
	global.Bool("quiet", false, "")
	if err := global.Parse(args); err != nil {
		t.Fatal(err)
	}
	parent := cli.NewContext(app, global, nil)
	return cli.NewContext(app, flag.NewFlagSet("render", flag.ContinueOnError), parent)
}

func TestSetupLogging(t *testing.T) {
	defer log.SetLevel(log.Notice)

	tests := []struct {
		args     []string
		expected log.Level
	}{
		{nil, log.Notice},
		{[]string{"-quiet"}, log.Warning},
		{[]string{"-v"}, log.Info},
		{[]string{"-vv"}, log.Debug},
		{[]string{"-v", "-vv", "-quiet"}, log.Debug},
	}

	for _, tt := range tests {
		log.SetLevel(log.Notice)
		setupLogging(newGlobalContext(t, tt.args...))
		assert.Equal(t, tt.expected, log.CurrentLevel(), "args %v", tt.args)
	}
}
