package system

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// perWorkerBytes is a generous estimate of the peak footprint of one
// describe worker: the decoded page plus a crop plus the encoded
// payload.
const perWorkerBytes = 256 << 20

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to read the open-file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Failed to raise the open-file limit: %v", err)
	}
}

// SuggestWorkers sizes the describe pool: one worker per CPU, capped by
// available memory so a huge screenshot on a small machine does not
// thrash. Never below 1.
func SuggestWorkers() int {
	workers := runtime.NumCPU()

	if vm, err := mem.VirtualMemory(); err == nil {
		byMemory := int(vm.Available / perWorkerBytes)
		if byMemory > 0 && byMemory < workers {
			workers = byMemory
		}
	}

	if workers < 1 {
		workers = 1
	}
	return workers
}

// FindLatestInput returns the most recently modified screenshot or PDF
// in dir, so running without -input picks up the newest capture.
func FindLatestInput(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".png", ".jpg", ".jpeg", ".pdf"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		match := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no screenshots or PDFs found in %s", dir)
	}
	return latestFile, nil
}
