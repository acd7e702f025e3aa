// Copyright 2025 Jacob Repp <jacobrepp@gmail.com>
//
// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package forgedir

import (
	"github.com/google/uuid"

	"github.com/jrepp/forgedir/redact"
)

// Logger is the structured-logging sink every outer call writes its
// entry/exit lines to. It is satisfied directly by *logrus.Logger and
// *logrus.Entry; forgedir never reaches for a package-global logger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}
func (noopLogger) Infof(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}

func logger(l Logger) Logger {
	if l != nil {
		return l
	}
	return noopLogger{}
}

// logEntry emits the one "entry" line every outer call makes, with
// args logged as given (callers pass tokens through maskToken first),
// and returns a correlation id to pair it with the matching exit line.
func logEntry(l Logger, fn string, args ...interface{}) string {
	id := uuid.NewString()
	logger(l).Debugf("entry id=%s func=%s args=%v", id, fn, args)
	return id
}

// logExit emits the matching "exit" line: informational on Success,
// error otherwise.
func logExit(l Logger, id, fn string, status Status, err error) {
	l = logger(l)
	if status == Success {
		l.Infof("exit id=%s func=%s status=%s", id, fn, status)
		return
	}
	l.Errorf("exit id=%s func=%s status=%s err=%v", id, fn, status, err)
}

// maskToken renders a token argument safe for the entry log line.
func maskToken(token string) string {
	return redact.Token(token)
}
