// Package memory implements the OS memory probe.
package memory

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MemoryProbe = (*Probe)(nil)

// Probe reads the kernel's memory accounting from /proc/meminfo.
type Probe struct {
	meminfoPath string
}

// NewProbe creates a probe against the standard /proc/meminfo location.
func NewProbe() *Probe {
	return &Probe{meminfoPath: "/proc/meminfo"}
}

// NewProbeAt creates a probe reading from an alternate meminfo file. Used by tests.
func NewProbeAt(path string) *Probe {
	return &Probe{meminfoPath: path}
}

// AvailableMB returns the kernel's MemAvailable estimate in megabytes,
// which accounts for reclaimable page cache. On kernels without
// MemAvailable it falls back to MemFree + Buffers + Cached.
func (p *Probe) AvailableMB() (int, error) {
	f, err := os.Open(p.meminfoPath)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to read meminfo")
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	fields := map[string]int64{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, kb, ok := parseMeminfoLine(scanner.Text())
		if ok {
			fields[name] = kb
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, zerr.Wrap(err, "failed to scan meminfo")
	}

	if avail, ok := fields["MemAvailable"]; ok {
		return int(avail / 1024), nil
	}

	free, ok := fields["MemFree"]
	if !ok {
		return 0, zerr.New("meminfo reports no usable memory fields")
	}
	return int((free + fields["Buffers"] + fields["Cached"]) / 1024), nil
}

// parseMeminfoLine parses a "Name:   12345 kB" meminfo entry.
func parseMeminfoLine(line string) (string, int64, bool) {
	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", 0, false
	}
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "kB"))
	kb, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
	if err != nil {
		return "", 0, false
	}
	return strings.TrimSpace(name), kb, true
}
