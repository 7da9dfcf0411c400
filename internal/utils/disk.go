// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-hybrid-sync/models"
	"golang.org/x/sys/unix"
)

// DiskUsage reports the usage of the filesystem holding path. Free is the
// space available to unprivileged users.
func DiskUsage(path string) (models.DiskSpace, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return models.DiskSpace{}, fmt.Errorf("statfs %s: %w", path, err)
	}

	bsize := uint64(st.Bsize)
	total := st.Blocks * bsize
	free := st.Bavail * bsize
	used := total - st.Bfree*bsize

	space := models.DiskSpace{Used: used, Free: free, Total: total}
	if total > 0 {
		space.Percent = float64(used) / float64(total) * 100
	}
	return space, nil
}

// DirSize sums the sizes of regular files directly inside dir whose name
// matches pattern. A missing dir has size zero.
func DirSize(dir, pattern string) (count int, size int64, err error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		count++
		size += info.Size()
	}
	return count, size, nil
}
