// Command nestor-core is a headless driver for the CPU/bus/mapper core:
// it runs a cartridge with no PPU/APU attached (both are out of scope,
// spec.md §1), so "running" means stepping the CPU until it crashes or a
// step budget is exhausted, print ROM headers, and report the core's
// version. A host embedding the core for actual play supplies its own
// PPU/APU/input collaborators and drives nes.Console directly instead of
// going through this CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"nestor-core/config"
	"nestor-core/ines"
	"nestor-core/internal/nlog"
	"nestor-core/nes"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli, ctx := parseArgs(os.Args[1:])
	cli.Log.apply()

	cfgDir := cli.Config
	if cfgDir == "" {
		dir, err := config.Dir()
		checkf(err, "resolve config directory")
		cfgDir = dir
	}
	cfg, err := config.Load(cfgDir)
	checkf(err, "load config")
	for _, name := range cfg.Trace.LogModules {
		mod, ok := nlog.ModuleByName(name)
		if !ok {
			fatalf("config: unknown log module %q", name)
		}
		nlog.EnableDebugModules(mod)
	}

	cmd := ctx.Command()
	switch {
	case strings.HasPrefix(cmd, "run"):
		runROM(cli.Run, cfg)
	case strings.HasPrefix(cmd, "rom-info"):
		romInfo(cli.RomInfo)
	case cmd == "version":
		fmt.Println(version)
	default:
		ctx.PrintUsage(false)
	}
}

func runROM(cmd RunCmd, cfg config.Config) {
	rom, err := ines.Open(cmd.RomPath)
	checkf(err, "open rom %s", cmd.RomPath)

	if !cfg.Mappers.Allows(rom.Mapper()) {
		fatalf("mapper %d disabled by config", rom.Mapper())
	}

	console, err := nes.LoadCartridge(rom)
	checkf(err, "load cartridge")
	console.PAL = cmd.PAL || cfg.Region.PAL
	console.Reset()

	var trace *outfile
	if cmd.Trace != nil {
		trace = cmd.Trace
	} else if cfg.Trace.Out != "" {
		trace = &outfile{}
		checkf(trace.open(cfg.Trace.Out), "open trace sink")
	}
	if trace != nil {
		defer trace.Close()
	}

	var steps, totalCycles int64
	for {
		if console.CPU.Crashed() {
			break
		}
		if cmd.Steps > 0 && steps >= cmd.Steps {
			break
		}
		if trace != nil {
			fmt.Fprintf(trace, "%s\n", console.CPU.Trace(uint32(totalCycles)))
		}
		totalCycles += int64(console.CPU.Step())
		steps++
	}

	if console.CPU.Crashed() {
		fmt.Fprintf(os.Stderr, "nestor-core: crashed after %d steps\n", steps)
	}

	saveSave(cmd, console)
}

func saveSave(cmd RunCmd, console *nes.Console) {
	if !console.Rom.HasBattery() {
		return
	}
	path := cmd.Save
	if path == "" {
		path = cmd.RomPath + ".sav"
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nestor-core: save file: %v\n", err)
		return
	}
	defer f.Close()
	if err := console.WriteSaveFile(f); err != nil {
		fmt.Fprintf(os.Stderr, "nestor-core: save file: %v\n", err)
	}
}

func romInfo(cmd RomInfoCmd) {
	rom, err := ines.Open(cmd.RomPath)
	checkf(err, "open rom %s", cmd.RomPath)

	if cmd.JSON {
		checkf(rom.WriteInfoJSON(os.Stdout), "write rom info json")
		fmt.Println()
		return
	}
	rom.PrintInfo(os.Stdout)
}
