// Command vawtctl runs the VAWT control core against either a real
// serial+gpio deployment or an in-memory simulation, following the
// teacher firmware's startup sequencing (configure collaborators,
// configure controller, enter the loop) and the pack's
// context+goroutine+signal shutdown shape.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	actuatorsgpio "github.com/asithakal/vawt-control-guide/internal/actuators/gpiorelay"
	actuatorssim "github.com/asithakal/vawt-control-guide/internal/actuators/sim"
	"github.com/asithakal/vawt-control-guide/internal/capability"
	"github.com/asithakal/vawt-control-guide/internal/config"
	csvsink "github.com/asithakal/vawt-control-guide/internal/logsink/csv"
	"github.com/asithakal/vawt-control-guide/internal/obslog"
	"github.com/asithakal/vawt-control-guide/internal/scheduler"
	sensorsserial "github.com/asithakal/vawt-control-guide/internal/sensors/serialio"
	sensorssim "github.com/asithakal/vawt-control-guide/internal/sensors/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vawtctl:", err)
		os.Exit(1)
	}
}

// nullSink is used when the CSV file could not be opened; per spec.md
// §7 a log-sink failure is swallowed, never fatal.
type nullSink struct{}

func (nullSink) Write(context.Context, capability.Record) error { return nil }

func run() error {
	var (
		configPath = flag.String("config", "vawt.yaml", "path to the turbine configuration YAML file")
		csvPath    = flag.String("csv", "vawt_data.csv", "path to the CSV telemetry log")
		simulate   = flag.Bool("simulate", false, "run against an in-memory simulated turbine instead of real hardware")
		serialDev  = flag.String("serial-device", "/dev/ttyUSB0", "serial device for real sensor telemetry")
		serialBaud = flag.Int("serial-baud", 115200, "serial baud rate for real sensor telemetry")
		dutyPath   = flag.String("duty-path", "", "sysfs-style path for converter duty (percent, 0-100)")
		dumpPath   = flag.String("dump-path", "", "sysfs-style path for dump load relay (0/1)")
		brakePath  = flag.String("brake-path", "", "sysfs-style path for brake relay (0/1)")
		debugLog   = flag.Bool("debug", false, "use human-readable development logging")
	)
	flag.Parse()

	log, err := obslog.New(*debugLog)
	if err != nil {
		return fmt.Errorf("constructing logger: %w", err)
	}
	defer log.Sync()

	log.Info("VAWT control core starting", zap.String("config", *configPath), zap.Bool("simulate", *simulate))

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	var sink capability.LogSink = nullSink{}
	if persisted, err := csvsink.Open(*csvPath); err != nil {
		log.Warn("CSV log sink unavailable, continuing without persistence", zap.Error(err))
	} else {
		sink = persisted
		defer persisted.Close()
	}

	var (
		sensors   capability.Sensors
		clock     capability.Clock
		actuators capability.Actuators
	)
	if *simulate {
		sim := sensorssim.NewSensors(demoFrames(), uint64(cfg.TickPeriodMS))
		sensors, clock = sim, sim
		actuators = &actuatorssim.Actuators{}
	} else {
		serial, err := sensorsserial.Open(*serialDev, *serialBaud)
		if err != nil {
			return fmt.Errorf("opening serial telemetry: %w", err)
		}
		defer serial.Close()
		sensors, clock = serial, serial
		actuators = &actuatorsgpio.Actuators{DutyPath: *dutyPath, DumpPath: *dumpPath, BrakePath: *brakePath}
	}

	sched := scheduler.New(cfg, sensors, actuators, clock, sink, log)
	sched.MarkInitialized(clock.MonotonicMS())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("entering Standby, running control loop", zap.Uint32("tick_period_ms", cfg.TickPeriodMS))
	sched.Run(ctx)

	log.Info("control loop stopped")
	return nil
}

// demoFrames is a small scripted wind ramp used by --simulate so the
// binary has something to do without any external collaborator at all.
func demoFrames() []sensorssim.Frame {
	return []sensorssim.Frame{
		{WindSpeedMS: 2.0, RotorRPM: 0, BusVoltageV: 0, BusCurrentA: 0},
		{WindSpeedMS: 5.0, RotorRPM: 60, BusVoltageV: 48, BusCurrentA: 2},
		{WindSpeedMS: 6.5, RotorRPM: 120, BusVoltageV: 48, BusCurrentA: 5},
		{WindSpeedMS: 7.5, RotorRPM: 160, BusVoltageV: 49, BusCurrentA: 8},
	}
}
