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

// Package main is a command-line shell for help lookup, signature
// checking, and doctests, in the spirit of a debugger REPL.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Comcast/docent/batteries"
	"github.com/Comcast/docent/core"
	"github.com/Comcast/docent/docs"
	"github.com/Comcast/docent/doctest"
	"github.com/Comcast/docent/help"
	"github.com/Comcast/docent/host"
)

type Opts struct {
	batteryFiles string
	echo         bool
}

func main() {
	opts := &Opts{}
	flag.StringVar(&opts.batteryFiles, "b", "", "comma-separated battery files or URLs")
	flag.BoolVar(&opts.echo, "e", false, "echo input")
	flag.Parse()

	if err := opts.run(); err != nil {
		panic(err)
	}
}

func (opts *Opts) run() error {

	in := os.Stdin
	w := os.Stdout

	ctx := context.Background()

	var (
		tbl = docs.NewTable()
		reg = core.NewRegistry()
		h   = host.New()
		c   = help.NewCorpus(tbl)

		lookup   = regexp.MustCompile(`^help +([-a-zA-Z0-9_.]+)`)
		search   = regexp.MustCompile(`^search +(.+)`)
		sig      = regexp.MustCompile(`^sig +([-a-zA-Z0-9_.]+)`)
		check    = regexp.MustCompile(`^check +([-a-zA-Z0-9_.]+) +(.*)`)
		doctests = regexp.MustCompile(`^doctest +([-a-zA-Z0-9_.]+)`)
		load     = regexp.MustCompile(`^load +(.+)`)
		usage    = regexp.MustCompile(`^(help|h|\?)$`)
		quit     = regexp.MustCompile(`^(quit|exit|q)$`)

		outputPrefix = "# "

		say = func(format string, args ...interface{}) {
			fmt.Fprintf(w, outputPrefix+format+"\n", args...)
		}

		protest = func(format string, args ...interface{}) {
			say("error: "+format, args...)
		}
	)

	for _, source := range strings.Split(opts.batteryFiles, ",") {
		if source == "" {
			continue
		}
		battery, err := batteries.LoadSource(ctx, source)
		if err != nil {
			return err
		}
		batteries.Apply(tbl, battery)
		say("loaded %s (%d entries)", source, len(battery))
	}

	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if opts.echo {
			fmt.Fprintf(w, "%s\n", line)
		}

		switch {
		case quit.MatchString(line):
			return nil

		case usage.MatchString(line):
			say("help NAME      show the docstring for NAME")
			say("sig NAME       show just the signature")
			say("search SUBSTR  find names or docs containing SUBSTR")
			say(`check NAME [v1, v2, ...]`)
			say("               check a JSON array of values against NAME's signature")
			say("doctest NAME   run NAME's transcripts")
			say("load SOURCE    load a battery file or URL")
			say("quit           exit")
			say("anything else evaluates in the host")

		case lookup.MatchString(line):
			name := lookup.FindStringSubmatch(line)[1]
			doc, have := c.Lookup(name)
			if !have {
				protest("no docs for %s", name)
				continue
			}
			fmt.Fprintf(w, "%s\n", doc)

		case sig.MatchString(line):
			name := sig.FindStringSubmatch(line)[1]
			s, have := c.Signature(name)
			if !have {
				protest("no docs for %s", name)
				continue
			}
			say("%s", s)

		case search.MatchString(line):
			substr := search.FindStringSubmatch(line)[1]
			for _, hit := range c.Search(substr) {
				where := ""
				if hit.InBody {
					where = " (in body)"
				}
				say("%s%s", hit.Name, where)
			}

		case check.MatchString(line):
			ss := check.FindStringSubmatch(line)
			name := ss[1]
			doc, have := c.Lookup(name)
			if !have {
				protest("no docs for %s", name)
				continue
			}
			checker, err := core.CheckArgs(doc, reg)
			if err != nil {
				protest("%v", err)
				continue
			}
			var vals []interface{}
			if err = json.Unmarshal([]byte(ss[2]), &vals); err != nil {
				protest("arguments must be a JSON array: %v", err)
				continue
			}
			if _, err = checker.Check(vals...); err != nil {
				say("rejected: %v", err)
			} else {
				say("accepted")
			}

		case doctests.MatchString(line):
			name := doctests.FindStringSubmatch(line)[1]
			doc, have := c.Lookup(name)
			if !have {
				protest("no docs for %s", name)
				continue
			}
			ts := doctest.Extract(doc)
			if len(ts) == 0 {
				say("no transcripts")
				continue
			}
			results := (&doctest.Runner{H: h}).Run(ts)
			failed := doctest.Failed(results)
			for _, f := range failed {
				say("FAIL %s", f.Input)
				say("  got  %s", strings.Join(f.Got, " | "))
				say("  want %s", strings.Join(f.Want, " | "))
			}
			say("%d steps, %d failed", len(results), len(failed))

		case load.MatchString(line):
			source := load.FindStringSubmatch(line)[1]
			battery, err := batteries.LoadSource(ctx, source)
			if err != nil {
				protest("%v", err)
				continue
			}
			batteries.Apply(tbl, battery)
			say("loaded %s (%d entries)", source, len(battery))

		default:
			x, err := h.Eval(line)
			if err != nil {
				protest("%v", err)
				continue
			}
			if x != nil {
				fmt.Fprintf(w, "%s\n", h.Render(x))
			}
		}
	}
}
