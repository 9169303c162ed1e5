package main

import (
	"os"

	"github.com/kpango/glg"
)

// log level constants to determine which labels to enable and which to disable.
const (
	all uint = iota
	debug
	info
	warning
	err
)

// defaultLogLevel is used whenever DCLI_LOG_LEVEL is empty or unrecognized.
// A sync daemon runs unattended, so the default must stay quiet enough for
// a long-lived process's log file not to fill up with debug/log chatter.
const defaultLogLevel = "info"

var logLevels = map[string]uint{
	"all":     all,
	"debug":   debug,
	"info":    info,
	"warning": warning,
	"error":   err,
}

var infolog *os.File

// ConfigureLogging sets up the glg logging package with the correct file
// destination, coloring, and level filtering for the sync daemon. An
// unrecognized level falls back to defaultLogLevel rather than silently
// behaving like "all" (the zero value of the level lookup).
func ConfigureLogging(level string, logPath string) {
	if logPath != "" {
		infolog = glg.FileWriter(logPath, 0644)
		glg.Get().AddWriter(infolog)
	}

	glg.Get().
		SetMode(glg.BOTH).
		EnableColor().
		SetLevelMode(glg.LOG, glg.NONE)

	resolvedLevel := level
	desiredLevel, ok := logLevels[level]
	if !ok {
		if level != "" {
			glg.Warnf("unrecognized DCLI_LOG_LEVEL %q, falling back to %q", level, defaultLogLevel)
		}
		resolvedLevel = defaultLogLevel
		desiredLevel = logLevels[defaultLogLevel]
	}

	for _, glgLevel := range []string{glg.DEBG, glg.INFO, glg.WARN, glg.ERR} {
		glg.Get().SetLevelMode(glgLevel, glgDestination(glgLevel, desiredLevel))
	}

	glg.Infof("dclisyncd logging configured at level %q", resolvedLevel)
}

func glgDestination(glgLevel string, desiredLevel uint) int {
	if desiredLevel == all {
		return glg.BOTH
	}

	enabled := false
	switch glgLevel {
	case glg.DEBG:
		enabled = desiredLevel <= debug
	case glg.INFO:
		enabled = desiredLevel <= info
	case glg.WARN:
		enabled = desiredLevel <= warning
	case glg.ERR:
		enabled = desiredLevel <= err
	}

	if enabled {
		return glg.BOTH
	}
	return glg.NONE
}

// CloseLogger closes any resources used for logging.
func CloseLogger() {
	if infolog != nil {
		infolog.Close()
	}
}
