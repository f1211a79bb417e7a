package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

var (
	once   sync.Once
	mu     sync.Mutex
	logger *log.Logger
)

func Init() {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if logger == nil {
			logger = log.New(os.Stdout, "WORLDCLOCK: ", log.LstdFlags|log.Lshortfile)
		}
	})
}

// SetOutput redirects the package logger, mostly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = log.New(w, "WORLDCLOCK: ", log.LstdFlags|log.Lshortfile)
}

func Info(message string, v ...interface{}) {
	output("INFO: "+message, v...)
}

func Error(message string, v ...interface{}) {
	output("ERROR: "+message, v...)
}

func Debug(message string, v ...interface{}) {
	output("DEBUG: "+message, v...)
}

func output(message string, v ...interface{}) {
	Init()
	mu.Lock()
	l := logger
	mu.Unlock()
	// calldepth 3 points Lshortfile at the caller of Info/Error/Debug
	_ = l.Output(3, fmt.Sprintf(message, v...))
}
