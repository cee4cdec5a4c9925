// Package runinfo holds the process-level helpers shared by the command line tools.
package runinfo

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	log "github.com/sirupsen/logrus"
)

// memoryShare is the fraction of available memory a corpus may take
// before CheckMemory warns.
const memoryShare = 4

/*
NewLogger configures the standard logger and returns an entry tagged with
the tool name and a fresh run id.

An unknown level falls back to warn.
*/
func NewLogger(level, tool string) *log.Entry {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)

	entry := log.WithFields(log.Fields{
		"tool":   tool,
		"run_id": uuid.New().String(),
	})
	if err != nil && level != "" {
		entry.Warnf("Unknown log level %q, using warn", level)
	}
	return entry
}

/*
CheckMemory warns when the file at path is larger than a quarter of the
available memory. It returns false in that case.

Probe failures are logged at debug level and treated as fine.
*/
func CheckMemory(path string, logger *log.Entry) bool {
	info, err := os.Stat(path)
	if err != nil {
		logger.Debugf("Memory probe skipped: %v", err)
		return true
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		logger.Debugf("Memory probe failed: %v", err)
		return true
	}
	return memoryFits(uint64(info.Size()), vm.Available, path, logger)
}

func memoryFits(size, available uint64, path string, logger *log.Entry) bool {
	if size*memoryShare <= available {
		return true
	}
	logger.WithFields(log.Fields{
		"file":      path,
		"size":      size,
		"available": available,
	}).Warn("Corpus is large for available memory; unique sentence tracking may exhaust it")
	return false
}

/*
CheckDisk warns when the directory holding path has less than want bytes free.
*/
func CheckDisk(path string, want uint64, logger *log.Entry) bool {
	dir := filepath.Dir(path)
	usage, err := disk.Usage(dir)
	if err != nil {
		logger.Debugf("Disk probe failed for %s: %v", dir, err)
		return true
	}
	if usage.Free >= want {
		return true
	}
	logger.WithFields(log.Fields{
		"dir":  dir,
		"free": usage.Free,
		"want": want,
	}).Warn("Low disk space for output")
	return false
}
