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

// Package main is a batch verifier for docstring batteries: it
// parses every docstring, builds both checkers, optionally runs the
// transcripts, and reports what's broken.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Comcast/docent/batteries"
	"github.com/Comcast/docent/core"
	"github.com/Comcast/docent/docs"
	"github.com/Comcast/docent/doctest"
)

type Opts struct {
	batteryFiles string
	runDoctests  bool
	allowNoSig   bool
}

func main() {
	opts := &Opts{}
	flag.StringVar(&opts.batteryFiles, "b", "", "comma-separated battery files or URLs")
	flag.BoolVar(&opts.runDoctests, "t", false, "also run transcripts")
	flag.BoolVar(&opts.allowNoSig, "s", true, "tolerate docstrings without signatures")
	flag.Parse()

	problems, err := opts.run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "doccheck: %v\n", err)
		os.Exit(2)
	}
	if 0 < problems {
		os.Exit(1)
	}
}

func (opts *Opts) run() (int, error) {
	ctx := context.Background()
	tbl := docs.NewTable()
	reg := core.NewRegistry()

	for _, source := range strings.Split(opts.batteryFiles, ",") {
		if source == "" {
			continue
		}
		battery, err := batteries.LoadSource(ctx, source)
		if err != nil {
			return 0, err
		}
		batteries.Apply(tbl, battery)
	}

	problems := 0
	complain := func(name, format string, args ...interface{}) {
		problems++
		fmt.Printf("%s: %s\n", name, fmt.Sprintf(format, args...))
	}

	for _, name := range tbl.Names() {
		doc, _ := tbl.For(name)

		sig, err := core.ParseDoc(doc)
		if err != nil {
			if _, is := err.(*core.NoSignature); is && opts.allowNoSig {
				continue
			}
			complain(name, "%v", err)
			continue
		}

		if _, err = sig.ArgChecker(reg, core.DefaultStackOffset); err != nil {
			complain(name, "arguments: %v", err)
		}
		if _, err = sig.RetChecker(reg, core.DefaultStackOffset); err != nil {
			complain(name, "returns: %v", err)
		}

		if opts.runDoctests {
			results := (&doctest.Runner{}).Run(doctest.Extract(doc))
			for _, f := range doctest.Failed(results) {
				complain(name, "doctest %q got %s, wanted %s",
					f.Input,
					strings.Join(f.Got, " | "),
					strings.Join(f.Want, " | "))
			}
		}
	}

	fmt.Printf("%d docstrings, %d problems\n", len(tbl.Names()), problems)

	return problems, nil
}
