package bootstrap

import (
	"path/filepath"

	"pybootstrap/internal/logging"
	"pybootstrap/internal/notice"
)

// RecordFile is the run record kept in the log directory.
const RecordFile = "bootstrap.log"

// writeRunRecord appends one entry describing this run to RecordFile.
// Failures are logged and otherwise ignored.
func writeRunRecord(dir string, s notice.Summary, logger *logging.AppLogger) {
	path := filepath.Join(dir, RecordFile)

	record, closer, err := logging.NewFileLogger(path)
	if err != nil {
		logger.Warn("Could not write run record", "path", path, "error", err)
		return
	}
	defer closer.Close()

	record.Info("Bootstrap completed",
		"python", s.Python,
		"executable", s.Executable,
		"project", s.ProjectDir,
		"logs", s.LogDir,
	)
}
