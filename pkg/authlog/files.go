package authlog

import (
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/activecm/cybershield/util"
	log "github.com/sirupsen/logrus"
)

// readDir reads the directory looking for supported log files
func readDir(dirPath string, logger *log.Logger) []string {
	var toReturn []string
	files, err := ioutil.ReadDir(dirPath)
	if err != nil {
		logger.WithFields(log.Fields{
			"error": err.Error(),
			"path":  dirPath,
		}).Error("Error when reading directory")
		return nil
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if format, _ := DetectFormat(file.Name()); format != FormatUnknown {
			toReturn = append(toReturn, filepath.Join(dirPath, file.Name()))
		}
	}
	sort.Strings(toReturn)
	return toReturn
}

//GatherLogFiles expands directories into the supported log files they hold.
//Files named directly are kept in the order given; missing or unsupported
//files are skipped with a warning.
func GatherLogFiles(paths []string, logger *log.Logger) []string {
	var toReturn []string

	for _, path := range paths {
		exists, err := util.Exists(path)
		if err != nil || !exists {
			fields := log.Fields{"path": path}
			if err != nil {
				fields["error"] = err.Error()
			}
			logger.WithFields(fields).Warn("Ignoring missing log file")
			continue
		}

		if util.IsDir(path) {
			toReturn = append(toReturn, readDir(path, logger)...)
		} else if format, _ := DetectFormat(path); format != FormatUnknown {
			toReturn = append(toReturn, path)
		} else {
			logger.WithFields(log.Fields{
				"path": path,
			}).Warn("Ignoring unsupported log file")
		}
	}

	return toReturn
}
