// Package serialio implements the reference "real" sensor adapter: a
// line-oriented DAQ telemetry frame read from a serial port, grounded on
// michibiki-io-hems-metrics-go/dongle's tarm/serial connect/read-loop
// style.
//
// The rotor pulse-period word is the one value written from an
// interrupt-equivalent context in this host deployment: a dedicated
// goroutine parses PULSE lines off the wire and stores the period in an
// atomic.Uint64, exactly mirroring the firmware's word-atomic ISR
// contract from spec.md §5 — no mutex, no channel, a single aligned
// load on the read side.
package serialio

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tarm/serial"
)

// staleAfter is the period-staleness window from spec.md §6: rpm reads
// as 0 when the last pulse is older than 2s, or when no pulse has ever
// been observed (period 0).
const staleAfter = 2 * time.Second

// Sensors reads wind speed, bus voltage, and bus current from
// comma-delimited "WIND,<wind>,<voltage>,<current>" telemetry lines, and
// derives rotor RPM from a separately-updated pulse-period word.
type Sensors struct {
	port *serial.Port

	lastWindMS   atomic.Uint64 // math.Float64bits
	lastVoltageV atomic.Uint64
	lastCurrentA atomic.Uint64

	pulsePeriodUS atomic.Uint64 // ISR-equivalent shared scalar
	lastPulseAtNS atomic.Int64
}

// Open connects to the named serial device at baud and starts the
// background line reader. Call Close when done.
func Open(device string, baud int) (*Sensors, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serialio: opening %s: %w", device, err)
	}
	s := &Sensors{port: port}
	go s.readLoop()
	return s, nil
}

// Close releases the serial port.
func (s *Sensors) Close() error {
	return s.port.Close()
}

// readLoop is the ISR-equivalent goroutine: the only writer of the
// pulse-period/lastPulse scalars and the telemetry floats.
func (s *Sensors) readLoop() {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "WIND,"):
			s.handleWindFrame(line)
		case strings.HasPrefix(line, "PULSE,"):
			s.handlePulseFrame(line)
		}
	}
}

func (s *Sensors) handleWindFrame(line string) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 {
		return
	}
	wind, err1 := strconv.ParseFloat(fields[1], 64)
	volt, err2 := strconv.ParseFloat(fields[2], 64)
	curr, err3 := strconv.ParseFloat(fields[3], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	s.lastWindMS.Store(floatBits(wind))
	s.lastVoltageV.Store(floatBits(volt))
	s.lastCurrentA.Store(floatBits(curr))
}

func (s *Sensors) handlePulseFrame(line string) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return
	}
	periodUS, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return
	}
	s.pulsePeriodUS.Store(periodUS)
	s.lastPulseAtNS.Store(time.Now().UnixNano())
}

func (s *Sensors) ReadWindSpeedMS(context.Context) float64 { return floatFromBits(s.lastWindMS.Load()) }
func (s *Sensors) ReadBusVoltageV(context.Context) float64 { return floatFromBits(s.lastVoltageV.Load()) }
func (s *Sensors) ReadBusCurrentA(context.Context) float64 { return floatFromBits(s.lastCurrentA.Load()) }

// ReadRotorRPM derives RPM from the pulse-period word with a single
// atomic load, normalizing a zero or stale period to "no rotation" per
// spec.md §6: rpm = 60e6/period_us, 0 when period is 0 or stale > 2s.
func (s *Sensors) ReadRotorRPM(context.Context) float64 {
	periodUS := s.pulsePeriodUS.Load()
	if periodUS == 0 {
		return 0
	}
	lastAt := s.lastPulseAtNS.Load()
	if time.Since(time.Unix(0, lastAt)) > staleAfter {
		return 0
	}
	return 60e6 / float64(periodUS)
}

// MonotonicMS satisfies capability.Clock with the host's wall-clock time
// in Unix milliseconds. This value is not monotonic: a wall-clock step
// backwards makes it go back too.
func (s *Sensors) MonotonicMS() uint64 {
	return uint64(time.Now().UnixMilli())
}
