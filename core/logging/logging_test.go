/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONFormatIncludesFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "debug", Format: "json", Output: &buf})

	l.WithField("table", "products").Warnf("dropped edit for column %d", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warning" {
		t.Errorf("Expected level warning, got %v", entry["level"])
	}
	if entry["table"] != "products" {
		t.Errorf("Expected table field, got %v", entry["table"])
	}
	if entry["msg"] != "dropped edit for column 3" {
		t.Errorf("Unexpected message %v", entry["msg"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Output: &buf})

	l.Infof("hidden")
	l.Debugf("hidden")
	if buf.Len() != 0 {
		t.Fatalf("Expected no output below warn, got %q", buf.String())
	}

	l.Errorf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("Expected error output, got %q", buf.String())
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "chatty", Output: &buf})

	l.Debugf("hidden")
	l.Infof("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected info level, got %q", buf.String())
	}
}

func TestNoOp(t *testing.T) {
	var l Logger = NewNoOp()
	l.WithFields(Fields{"a": 1}).Warnf("nothing %s", "here")
}
