/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package batteries loads pre-written docstring sets.
//
// A battery is a YAML document mapping dotted names to docstrings:
//
//	string.rep: |
//	  string.rep( s, n ) ==> string
//	  s : string
//	  n : number
//
//	  Returns s repeated n times.
package batteries

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"

	"github.com/Comcast/docent/docs"

	"github.com/jsccast/yaml"
	"golang.org/x/net/publicsuffix"
)

// Load parses a battery.
//
// We use a YAML fork that gives map[string]interface{} rather than
// map[interface{}]interface{}; here we only want strings anyway, and
// this keeps the error cases simple.
func Load(r io.Reader) (map[string]string, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(bs)
}

// Parse parses battery bytes.
func Parse(bs []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(bs, &raw); err != nil {
		return nil, err
	}
	acc := make(map[string]string, len(raw))
	for name, x := range raw {
		doc, is := x.(string)
		if !is {
			return nil, fmt.Errorf("battery entry %s is a %T, not a string", name, x)
		}
		acc[name] = doc
	}
	return acc, nil
}

// LoadFile loads a battery from disk.
func LoadFile(filename string) (map[string]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadSource loads a battery from a file path or an http(s) URL.
func LoadSource(ctx context.Context, source string) (map[string]string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return LoadURL(ctx, source)
	}
	return LoadFile(source)
}

// LoadURL fetches a battery over HTTP(S).
//
// The client carries a cookie jar (some battery hosts sit behind
// session-cookie gateways).
func LoadURL(ctx context.Context, url string) (map[string]string, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	client := &http.Client{Jar: jar}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("battery fetch status " + resp.Status)
	}
	return Load(resp.Body)
}

// Apply pushes a battery into a docs table.
func Apply(t *docs.Table, battery map[string]string) {
	if t == nil {
		t = docs.DefaultTable
	}
	for name, doc := range battery {
		t.Register(name, doc)
	}
}
