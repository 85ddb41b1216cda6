package nlog

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	onceInitFiles sync.Once
	nlogs         [3]*nlog
	pool          sync.Pool

	logDir, procRole string
	title            string
	toStderr         bool
	alsoToStderr     bool
	host             string
	pid              = os.Getpid()

	// filenames whose caller line is not worth printing (this package itself)
	redactFnames = map[string]struct{}{
		"nlog": {}, "api": {}, "fixed": {}, "init": {},
	}

	sevText = [...]string{sevInfo: "INFO", sevWarn: "WARN", sevErr: "ERROR"}
)

func initFiles() {
	host, _ = os.Hostname()
	if logDir == "" {
		logDir = filepath.Join(os.TempDir(), sname())
	}
	os.MkdirAll(logDir, 0o755)

	now := time.Now()
	for _, sev := range []severity{sevInfo, sevErr} {
		nlogs[sev] = newNlog(sev)
		if err := nlogs[sev].rotate(now); err != nil {
			nlogs[sev].erred.Store(true)
		}
	}
}

func sname() string {
	if procRole != "" {
		return procRole
	}
	return "disolv"
}

func fcreate(tag string, now time.Time) (f *os.File, link string, err error) {
	name, linkName := logfname(tag, now)
	full := filepath.Join(logDir, name)
	f, err = os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, "", err
	}
	link = filepath.Join(logDir, linkName)
	os.Remove(link)
	os.Symlink(name, link)
	return f, link, nil
}

func assert(cond bool) {
	if !cond {
		panic("nlog: assertion failed")
	}
}
