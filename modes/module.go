package modes

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/mscript/cmds"
)

var devFlag = cmds.Switch("-dev")

// ModuleForProduction is used by commands. The -dev switch turns on development checks.
type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

func (ModuleForProduction) T() *testing.T {
	return nil
}

func (ModuleForProduction) Mode() Mode {
	if *devFlag {
		return ModeDevelopment
	}
	return ModeProduction
}

// ModuleForTest always runs in development mode.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (m ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
