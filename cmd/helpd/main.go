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

// Package main is a small help service: docstring lookup, search,
// and rendering over HTTP, with a WebSocket endpoint for live
// lookups and a bolt-backed index that survives restarts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/Comcast/docent/batteries"
	"github.com/Comcast/docent/docs"
	"github.com/Comcast/docent/help"

	"github.com/gorhill/cronexpr"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config is the service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DB is the filename of the bolt index.
	DB string `yaml:"db"`

	// Batteries are files or URLs to load at boot.
	Batteries []string `yaml:"batteries"`

	// Reindex is an optional cron expression for rebuilding the
	// index (batteries behind URLs change).
	Reindex string `yaml:"reindex"`
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "helpd.yaml", "config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(configFile, logger); err != nil {
		logger.Fatal("helpd", zap.Error(err))
	}
}

func run(configFile string, logger *zap.Logger) error {
	bs, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}
	var cfg Config
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return err
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8085"
	}
	if cfg.DB == "" {
		cfg.DB = "helpd.db"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := &Service{
		logger: logger,
		corpus: help.NewCorpus(docs.NewTable()),
		index:  help.NewIndex(cfg.DB),
		config: &cfg,
	}

	if err := s.index.Open(ctx); err != nil {
		return err
	}
	defer s.index.Close(ctx)

	if err := s.loadBatteries(ctx); err != nil {
		return err
	}

	if cfg.Reindex != "" {
		expr, err := cronexpr.Parse(cfg.Reindex)
		if err != nil {
			return err
		}
		go s.reindexLoop(ctx, expr)
	}

	http.HandleFunc("/doc", s.handleDoc)
	http.HandleFunc("/search", s.handleSearch)
	http.HandleFunc("/render", s.handleRender)
	http.HandleFunc("/live", s.handleLive)

	logger.Info("helpd listening", zap.String("addr", cfg.Addr))
	return http.ListenAndServe(cfg.Addr, nil)
}

// Service holds the corpus, the index, and the knobs.
type Service struct {
	logger *zap.Logger
	corpus *help.Corpus
	index  *help.Index
	config *Config
}

// loadBatteries (re)loads the configured batteries and syncs the
// index.
func (s *Service) loadBatteries(ctx context.Context) error {
	for _, source := range s.config.Batteries {
		battery, err := batteries.LoadSource(ctx, source)
		if err != nil {
			return err
		}
		batteries.Apply(s.corpus.Table, battery)
		s.logger.Info("battery loaded",
			zap.String("source", source),
			zap.Int("entries", len(battery)))
	}
	return s.index.Sync(ctx, s.corpus)
}

// reindexLoop reloads batteries on the configured cron schedule.
func (s *Service) reindexLoop(ctx context.Context, expr *cronexpr.Expression) {
	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(next)):
		}
		if err := s.loadBatteries(ctx); err != nil {
			s.logger.Error("reindex", zap.Error(err))
		} else {
			s.logger.Info("reindexed")
		}
	}
}

func (s *Service) handleDoc(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	doc, have, err := s.index.Lookup(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !have {
		http.Error(w, "no docs for "+name, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(doc))
}

func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	hits, err := s.index.Search(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(hits)
}

func (s *Service) handleRender(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	doc, have, err := s.index.Lookup(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !have {
		http.Error(w, "no docs for "+name, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(help.RenderPage(name, doc))
}

// handleLive is the WebSocket endpoint.  Send a dotted name to get
// its docstring back; send "?substr" to search.
func (s *Service) handleLive(w http.ResponseWriter, r *http.Request) {
	var upgrader = websocket.Upgrader{}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade", zap.Error(err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			return
		}
		query := strings.TrimSpace(string(message))

		var response interface{}
		if strings.HasPrefix(query, "?") {
			hits, err := s.index.Search(r.Context(), query[1:])
			if err != nil {
				response = map[string]interface{}{"error": err.Error()}
			} else {
				response = map[string]interface{}{"hits": hits}
			}
		} else {
			doc, have, err := s.index.Lookup(r.Context(), query)
			switch {
			case err != nil:
				response = map[string]interface{}{"error": err.Error()}
			case !have:
				response = map[string]interface{}{"error": "no docs for " + query}
			default:
				response = map[string]interface{}{"name": query, "doc": doc}
			}
		}

		js, err := json.Marshal(response)
		if err != nil {
			s.logger.Error("marshal", zap.Error(err))
			continue
		}
		if err = c.WriteMessage(mt, js); err != nil {
			s.logger.Error("write", zap.Error(err))
			return
		}
	}
}
