package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// BlameLog is the log every blame run appends to.
const BlameLog = "blame.log"

var separator = strings.Repeat("=", 60)

// Log appends a debug entry to the specified log file in cacheDir/logs/.
func Log(cacheDir, logName, message string, data interface{}) {
	logDir := filepath.Join(cacheDir, "logs")
	_ = os.MkdirAll(logDir, 0o755)

	f, err := os.OpenFile(filepath.Join(logDir, logName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	ts := time.Now().Format("2006-01-02T15:04:05")
	fmt.Fprintf(f, "\n%s\n", separator)
	fmt.Fprintf(f, "[%s] %s\n", ts, message)

	if data != nil {
		b, err := json.MarshalIndent(data, "", "  ")
		if err == nil {
			fmt.Fprintf(f, "%s\n", b)
		}
	}
}

// Path returns the location of logName under cacheDir.
func Path(cacheDir, logName string) string {
	return filepath.Join(cacheDir, "logs", logName)
}

// Tail returns the last n lines of a log.
func Tail(cacheDir, logName string, n int) ([]string, error) {
	data, err := os.ReadFile(Path(cacheDir, logName))
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// LastEntries returns the last n entries of a log, oldest first, without
// their separators.
func LastEntries(cacheDir, logName string, n int) ([]string, error) {
	data, err := os.ReadFile(Path(cacheDir, logName))
	if err != nil {
		return nil, err
	}
	var entries []string
	for _, e := range strings.Split(string(data), separator) {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
