// Copyright 2025 Poiesic Systems
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


package core

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// dateLayouts are tried in order before falling back to the fuzzy parser.
// Year-only input resolves to January 1st, year+month to the 1st of the month.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01",
	"2006",
	"January 2, 2006",
	"January 2006",
	"2 January 2006",
}

var fuzzyParser = newFuzzyParser()

func newFuzzyParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseFoundingDate resolves free-form date text to a calendar date.
// It is an ordered fallback chain: strict layouts first, then a fuzzy
// natural-language parse. Unparseable input reports ok=false rather than
// an error.
func ParseFoundingDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	if r, err := fuzzyParser.Parse(s, time.Now().UTC()); err == nil && r != nil {
		return r.Time.UTC(), true
	}

	return time.Time{}, false
}
