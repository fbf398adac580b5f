//go:build !windows
// +build !windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// getChangeTime gets the change time from FileInfo (Unix)
func getChangeTime(info os.FileInfo) time.Time {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	// Use ctime (change time)
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
