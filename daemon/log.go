//
// Copyright 2023 The Tsroll Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package daemon

import (
	"fmt"
	"log"
	"os"
)

func init() {
	log.SetPrefix(fmt.Sprintf("[%d] ", os.Getpid()))
}

var logFile *os.File

// logToFile redirects the standard logger to the given file, opened
// with O_SYNC so nothing is lost if the process dies.
func logToFile(logPath string) error {
	file, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND|os.O_SYNC, 0666)
	if err != nil {
		return fmt.Errorf("unable to open log file %q: %v", logPath, err)
	}
	log.SetOutput(file)
	if logFile != nil {
		logFile.Close()
	}
	logFile = file
	return nil
}
