package ferrylib

import "log"

type Logger interface {
	Printf(format string, args ...interface{})
}

type LoggerFunc func(format string, args ...interface{})

func (fn LoggerFunc) Printf(format string, args ...interface{}) { fn(format, args...) }

var DefaultLogger Logger = LoggerFunc(log.Printf)
