package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nestor-core/internal/nlog"
)

// CLI is a kong-based struct with one field per subcommand plus a shared
// --log flag, narrowed to the three subcommands this headless core
// actually needs: the core has no GUI, no input capture, and no
// monitor/shader flags, since rendering, audio, and host windowing are
// out of scope (spec.md §1).
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a ROM headlessly until it crashes or a step limit is reached."`
	RomInfo RomInfoCmd `cmd:"" help:"Show ROM header info." name:"rom-info"`
	Version VersionCmd `cmd:"" help:"Show nestor-core version."`

	Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
	Config string      `help:"Path to a config directory (default: OS user config dir)." type:"path"`
}

type RunCmd struct {
	RomPath string   `arg:"" name:"/path/to/rom" help:"${rompath_help}" required:"true" type:"existingfile"`
	Steps   int64    `name:"steps" help:"Stop after N CPU steps (0 = run until crash)." default:"0"`
	Trace   *outfile `name:"trace" help:"Write a per-instruction trace log." placeholder:"FILE|stdout|stderr"`
	PAL     bool     `name:"pal" help:"Enable the PAL cycle-stretch approximation."`
	Save    string   `name:"save" help:"Battery-RAM save file path (default: <rom>.sav when the cartridge has a battery)." type:"path"`
}

type RomInfoCmd struct {
	RomPath string `arg:"" name:"/path/to/rom" type:"existingfile"`
	JSON    bool   `name:"json" help:"Emit machine-readable JSON instead of text."`
}

type VersionCmd struct{}

var vars = kong.Vars{
	"rompath_help": "Path to an iNES (.nes) cartridge image.",
	"log_help":     "Enable logging for specified modules.",
}

func parseArgs(args []string) (CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nestor-core"),
		kong.Description("NES CPU/bus/mapper core."),
		kong.UsageOnError(),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")
	return cli, ctx
}

// logModMask decodes the --log flag's comma-separated module list into
// debug-enabled nlog modules.
type logModMask struct {
	mods []nlog.Module
	all  bool
	none bool
}

// Decode implements kong.MapperValue.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			lm.all = true
		case "no", "":
			lm.none = true
		default:
			mod, ok := nlog.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %q", v)
			}
			lm.mods = append(lm.mods, mod)
		}
	}
	if lm.none && (lm.all || len(lm.mods) > 0) {
		return fmt.Errorf("cannot combine 'no' with other log modules")
	}
	return nil
}

func (lm logModMask) apply() {
	if lm.none {
		return
	}
	if lm.all {
		nlog.EnableDebugModules(nlog.ModCPU, nlog.ModBus, nlog.ModMapper, nlog.ModCartridge, nlog.ModNES)
		return
	}
	nlog.EnableDebugModules(lm.mods...)
}

// outfile decodes FILE|stdout|stderr into an io.WriteCloser.
type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return f.open(tok.Value.(string))
}

// open resolves name to a writer, shared by Decode (kong flag parsing)
// and the config-driven trace sink (no kong.DecodeContext available
// there).
func (f *outfile) open(name string) error {
	f.name = name
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": "+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "nestor-core: fatal: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
