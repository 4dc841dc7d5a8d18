package startup

import (
	"fmt"
	"os"
	"sort"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["id"] = generateUniqueID()

	msg := fmt.Sprintf("[%s] [%s] [%s] %s",
		entry.Time.Format(time.RFC3339),
		entry.Level,
		entry.Data["id"],
		entry.Message,
	)
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "id" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		msg += fmt.Sprintf(" %s=%v", key, entry.Data[key])
	}

	return []byte(msg + "\n"), nil
}

func generateUniqueID() string {
	return fmt.Sprintf("ID-%d", time.Now().UnixNano())
}

// newLogger writes to stdout, or to a file rotated every 15 minutes when a
// path is configured.
func newLogger(path string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&CustomFormatter{})
	logger.SetOutput(os.Stdout)
	if path == "" {
		return logger
	}

	writer, err := rotatelogs.New(
		path+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(15*time.Minute),
	)
	if err != nil {
		logger.Fatalf("Failed to create rotatelogs hook: %v", err)
	}
	logger.SetOutput(writer)
	return logger
}
