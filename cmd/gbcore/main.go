package main

import (
	"flag"
	"os"

	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	romFile := flag.String("rom", "", "The rom file to load (.gb, .gz, .xz, .zip or .7z)")
	cycles := flag.Uint64("cycles", gameboy.ClockSpeed, "The number of clock cycles to run for")
	sp := flag.Uint("sp", 0xFFFE, "The initial stack pointer")
	pc := flag.Uint("pc", cpu.EntryPoint, "The address to start executing from")
	debug := flag.Bool("debug", false, "Log every instruction before it is executed")
	skipUnknown := flag.Bool("skip-unknown", false, "Skip over unknown opcodes instead of stopping")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewWithWriter(os.Stdout, log.LevelDebug)
	}

	if *romFile == "" {
		logger.Errorf("no rom file given, use -rom")
		os.Exit(2)
	}
	if *sp > 0xFFFF || *pc > 0xFFFF {
		logger.Errorf("-sp and -pc must be 16-bit addresses")
		os.Exit(2)
	}

	// open the rom file
	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Errorf("loading rom: %v", err)
		os.Exit(1)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.WithStackPointer(uint16(*sp)),
		gameboy.WithEntryPoint(uint16(*pc)),
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}
	if *skipUnknown {
		opts = append(opts, gameboy.SkipUnknown())
	}
	gb, err := gameboy.New(rom, opts...)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	if _, err := gb.Run(*cycles); err != nil {
		logger.Errorf("%v", err)
		logger.Infof("%s", gb.CPU)
		os.Exit(1)
	}

	logger.Infof("executed %d cycles", gb.Cycles())
	logger.Infof("%s", gb.CPU)
}
