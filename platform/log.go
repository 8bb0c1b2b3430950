package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// fileHook rotates the log file once per day.
type fileHook struct {
	writer   *os.File
	logPath  string
	fileName string
	fileDate string
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	day := entry.Time.Format("2006-01-02")
	line, _ := entry.String()
	if h.fileDate != day {
		h.fileDate = day
		h.writer.Close()
		filename := fmt.Sprintf("%s/%s-%s.log", h.logPath, day, h.fileName)
		writer, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
		if err != nil {
			return err
		}
		h.writer = writer
	}
	h.writer.Write([]byte(line))
	return nil
}

// LogFormatter renders entries as "[timestamp] [level] message".
type LogFormatter struct{}

func (f *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	b.WriteString(fmt.Sprintf("[%s] [%s] %s\n", timestamp, entry.Level, entry.Message))
	return b.Bytes(), nil
}

// NewAppLogger builds a logger that writes to stderr and to a per-day file
// under logPath. Falls back to stderr only when the log directory cannot
// be created, so a read-only filesystem never prevents startup.
func NewAppLogger(logPath, fileName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})

	if err := os.MkdirAll(logPath, os.ModePerm); err != nil {
		logger.SetOutput(os.Stderr)
		logger.Warnf("failed to create log directory %s: %v", logPath, err)
		return logger
	}

	day := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s/%s-%s.log", logPath, day, fileName)
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		logger.SetOutput(os.Stderr)
		logger.Warnf("failed to open log file %s: %v", filename, err)
		return logger
	}

	logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
	logger.AddHook(&fileHook{
		writer:   logFile,
		logPath:  logPath,
		fileName: fileName,
		fileDate: day,
	})
	return logger
}

var Logger = NewAppLogger("./log", "supportchat")
