package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/foodhub/config"
	"github.com/shashiranjanraj/foodhub/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the disks named in config. The local disk always exists;
// the s3 disk only when S3_BUCKET is set. A broken S3 configuration is
// logged and leaves the disk unregistered.
func Connect(ctx context.Context) error {
	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return err
	}
	Register(local)

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(ctx, S3Config{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			Register(d)
		}
	}

	return SetDefault(config.StorageDefault())
}

// Register adds or replaces the disk under d.Name().
func Register(d Disk) {
	managerMu.Lock()
	disks[d.Name()] = d
	managerMu.Unlock()
}

// SetDefault selects the disk returned by Default.
func SetDefault(name string) error {
	managerMu.Lock()
	defer managerMu.Unlock()
	if _, ok := disks[name]; !ok {
		return fmt.Errorf("storage: disk %q is not configured", name)
	}
	defaultDisk = name
	return nil
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk selected by STORAGE_DISK.
func Default() (Disk, error) {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}
