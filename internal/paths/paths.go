package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "perch"
	ConfigFileName = "perch.json"
	StateFileName  = "window-state.json"
	EventDBName    = "events.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for perch:
//   - Windows: %APPDATA%\perch
//   - Unix:    ~/.config/perch
//
// Falls back to os.TempDir()/perch if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// StatePath returns the window-state file location inside the data dir.
func StatePath() string {
	return filepath.Join(DataDir(), StateFileName)
}

// EventDBPath returns the event-log database location inside the data dir.
func EventDBPath() string {
	return filepath.Join(DataDir(), EventDBName)
}
