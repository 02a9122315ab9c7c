// Package bytesize parses and prints byte counts, and works out a sensible
// input limit from the memory available to the process.
package bytesize

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
	TiB = GiB * 1024
)

const (
	// cgroupV2MemMax is the cgroup v2 memory limit file
	cgroupV2MemMax = "/sys/fs/cgroup/memory.max"
	// cgroupV1MemLimit is the cgroup v1 memory limit file
	cgroupV1MemLimit = "/sys/fs/cgroup/memory/memory.limit_in_bytes"
	// procMeminfo is the system memory info file
	procMeminfo = "/proc/meminfo"
)

// Auto is the value of a Size that should be derived from the environment.
const Auto Size = -1

// Size is a byte count usable as a command line flag. It accepts anything
// Parse does, plus "auto".
type Size int64

var _ pflag.Value = (*Size)(nil)

// String returns s in a form Set accepts.
func (s *Size) String() string {
	if *s == Auto {
		return "auto"
	}
	return formatExact(int64(*s))
}

func (s *Size) Set(v string) error {
	if strings.EqualFold(strings.TrimSpace(v), "auto") {
		*s = Auto
		return nil
	}
	n, err := Parse(v)
	if err != nil {
		return err
	}
	*s = Size(n)
	return nil
}

func (s *Size) Type() string {
	return "size"
}

// Resolve returns the byte count, deriving it from the detected memory limit
// when s is Auto. fallback is used when nothing can be detected.
func (s Size) Resolve(fallback int64) int64 {
	if s != Auto {
		return int64(s)
	}
	if total := DetectAvailable(); total > 0 {
		// Leave room for rendered copies of the input.
		return total / 4
	}
	return fallback
}

var units = []struct {
	size int64
	name string
}{
	{TiB, "TiB"},
	{GiB, "GiB"},
	{MiB, "MiB"},
	{KiB, "KiB"},
}

// formatExact uses the largest binary unit that divides n evenly.
func formatExact(n int64) string {
	for _, u := range units {
		if n >= u.size && n%u.size == 0 {
			return strconv.FormatInt(n/u.size, 10) + u.name
		}
	}
	return strconv.FormatInt(n, 10)
}

// Format formats bytes as a human-readable string using IEC binary units.
//
// NOTE: This is for human-readable output only. Use raw integer bytes for
// anything machine-parsed.
func Format(bytes int64) string {
	switch {
	case bytes >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(bytes)/GiB)
	case bytes >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(bytes)/MiB)
	case bytes >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(bytes)/KiB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// Parse parses a byte size string with optional suffix.
//
// Supported suffixes:
//   - Decimal (1000-based): KB, MB, GB, TB
//   - Binary (1024-based): KiB, MiB, GiB, TiB (also Ki, Mi, Gi, Ti and K, M, G, T)
//   - No suffix or "B": raw bytes
//   - "off": returns (0, nil), meaning no limit
//
// Only integer values are accepted. Decimal points (e.g., "1.5GiB") are rejected.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	if strings.EqualFold(s, "off") {
		return 0, nil
	}

	// Find where the number ends and suffix begins
	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}

	if i == 0 {
		return 0, fmt.Errorf("no numeric value found in %q", s)
	}

	if i < len(s) && s[i] == '.' {
		return 0, fmt.Errorf("decimal values not supported in %q; use integer bytes", s)
	}

	numStr := s[:i]
	suffix := strings.TrimSpace(s[i:])

	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number in %q: %w", s, err)
	}

	var multiplier int64 = 1
	switch strings.ToUpper(suffix) {
	case "", "B":
		multiplier = 1
	// Decimal (1000-based)
	case "KB":
		multiplier = 1000
	case "MB":
		multiplier = 1000 * 1000
	case "GB":
		multiplier = 1000 * 1000 * 1000
	case "TB":
		multiplier = 1000 * 1000 * 1000 * 1000
	// Binary (1024-based) - IEC standard
	case "KIB", "KI", "K":
		multiplier = KiB
	case "MIB", "MI", "M":
		multiplier = MiB
	case "GIB", "GI", "G":
		multiplier = GiB
	case "TIB", "TI", "T":
		multiplier = TiB
	default:
		return 0, fmt.Errorf("unknown suffix %q in %q", suffix, s)
	}

	// Check for overflow before multiplying
	if num > 0 && multiplier > 1 {
		maxSafe := (1<<63 - 1) / multiplier
		if num > maxSafe {
			return 0, fmt.Errorf("value %q too large: would overflow int64", s)
		}
	}

	return num * multiplier, nil
}

// DetectAvailable detects the memory available to the process.
// It checks in order: cgroups v2, cgroups v1, /proc/meminfo.
// Returns 0 if detection fails.
func DetectAvailable() int64 {
	if limit := readCgroupV2(cgroupV2MemMax); limit > 0 {
		return limit
	}
	if limit := readCgroupV1(cgroupV1MemLimit); limit > 0 {
		return limit
	}
	return readMeminfo(procMeminfo)
}

// readCgroupV2 returns 0 if the file is missing or the limit is "max".
func readCgroupV2(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	content := strings.TrimSpace(string(data))
	if content == "max" {
		return 0
	}

	limit, err := strconv.ParseInt(content, 10, 64)
	if err != nil {
		return 0
	}
	return limit
}

// readCgroupV1 returns 0 if the file is missing or the limit is effectively
// unlimited.
func readCgroupV1(path string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}

	limit, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0
	}

	// cgroup v1 reports "unlimited" as a value close to MaxInt64.
	// Consider anything over 1 exabyte as unlimited
	if limit > 1<<60 {
		return 0
	}
	return limit
}

// readMeminfo reads MemTotal, for VMs where cgroups don't reflect the limit.
func readMeminfo(path string) int64 {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}

		// Value is in kB
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
