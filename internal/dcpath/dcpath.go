// Package dcpath contains consts and methods to work with paths inside
// the .dircache directory
package dcpath

import "path/filepath"

// .dircache/ files and directories
const (
	DotDirPath    = ".dircache"
	ObjectsPath   = "objects"
	IndexPath     = "index"
	IndexLockPath = "index.lock"
	ConfigPath    = "config"
)

// DBEnvironment is the environment variable overriding the path to
// the object store
const DBEnvironment = "SHA1_FILE_DIRECTORY"

// DotDir returns the path of the .dircache directory of a working
// directory
func DotDir(workingDirectory string) string {
	return filepath.Join(workingDirectory, DotDirPath)
}

// DefaultObjectsDir returns the default path of the object store of a
// working directory
func DefaultObjectsDir(workingDirectory string) string {
	return filepath.Join(workingDirectory, DotDirPath, ObjectsPath)
}

// Index returns the path of the index file of a working directory
func Index(workingDirectory string) string {
	return filepath.Join(workingDirectory, DotDirPath, IndexPath)
}

// IndexLock returns the path of the index lock file of a working
// directory
func IndexLock(workingDirectory string) string {
	return filepath.Join(workingDirectory, DotDirPath, IndexLockPath)
}

// ConfigFile returns the path of the optional config file of a working
// directory
func ConfigFile(workingDirectory string) string {
	return filepath.Join(workingDirectory, DotDirPath, ConfigPath)
}
