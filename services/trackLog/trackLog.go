package trackLog

import (
	"fmt"

	"github.com/AliaksandrTarashkevich/ppianieal/services/log"

	"github.com/sirupsen/logrus"
)

var logTracker = logrus.NewEntry(logrus.StandardLogger())

// LogTrackInit replaces the standard logger with the configured tracker.
func LogTrackInit() {
	var trackerService log.LogService
	temp := trackerService.LoggerInit("tracker")
	logTracker = temp.WithFields(logrus.Fields{"task": "track"})
}

// Entry is the tracker for services that log with fields.
func Entry() *logrus.Entry {
	return logTracker
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return logTracker.WithFields(fields)
}

func Info(message string, needWriteLog bool) {
	if needWriteLog {
		logTracker.Info(message)
		return
	}
	fmt.Println(message)
}

func Warn(message string, needWriteLog bool) {
	if needWriteLog {
		logTracker.Warn(message)
		return
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog {
		logTracker.Error(message)
		return
	}
	fmt.Println(message)
}
