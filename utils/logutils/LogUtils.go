// Package logutils provides the logger used for warnings raised by
// library code
package logutils

import (
	"io"
	"log"
	"os"
)

var logger = log.New(os.Stderr, "tabular: ", log.LstdFlags)

// SetOutput sets the destination of library warnings
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Warnf logs a warning
func Warnf(format string, v ...interface{}) {
	logger.Printf("warning: "+format, v...)
}
