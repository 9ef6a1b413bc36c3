/*
 * Copyright (c) 2025 by WrapForge Media, Inc.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"wrapproof/internal/backend"
	"wrapproof/internal/config"
	"wrapproof/internal/crash"
	"wrapproof/internal/domain"
	"wrapproof/internal/export"
	"wrapproof/internal/fontkit"
	"wrapproof/internal/imgload"
	"wrapproof/internal/jobspec"
	applog "wrapproof/internal/log"
	"wrapproof/internal/palette"
	"wrapproof/internal/preview"
	"wrapproof/internal/registry"
	"wrapproof/internal/stamp"
	"wrapproof/internal/telemetry"
	"wrapproof/internal/version"
)

func usage() {
	fmt.Println("WrapForge proofing and export engine")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  wrapproof version|-v|--version            Show version")
	fmt.Println("  wrapproof stamp <job.json> <view-type>    Stamp one rendered view and save the PNG")
	fmt.Println("  wrapproof stamp-all <job.json>            Stamp and save every view in the job")
	fmt.Println("  wrapproof proof <job.json>                Assemble the proof-sheet PDF")
	fmt.Println("  wrapproof poster <job.json>               Assemble the 48x36 color poster PDF")
	fmt.Println("  wrapproof chart [job.json]                Assemble the sample-chart PDF")
	fmt.Println("  wrapproof catalog <job.json>              Assemble the printed catalog PDF")
	fmt.Println("  wrapproof palette-save <job.json>         Store the job's colors in the local swatch library")
	fmt.Println("  wrapproof designs                         List saved designs on the render service")
	fmt.Println("  wrapproof pull <id> <out.json>            Fetch a saved design into a local job file")
	fmt.Println("  wrapproof preview <job.json> <view-type>  Show a stamped view on screen (build with -tags fyne)")
}

// engine bundles the wiring every export command needs.
type engine struct {
	cfg   config.AppConfig
	token string
	log   *slog.Logger
	asm   *export.Assembler
	st    *stamp.Stamper
	tm    *telemetry.Client
}

func newEngine(l *slog.Logger) *engine {
	cfg, token, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
	}
	fonts := fontkit.Load(cfg.Fonts.LabelTTF, cfg.Fonts.CreditTTF)
	loader := imgload.New(cfg.Render.RenderTimeout())
	st := stamp.New(fonts, loader)

	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	tm := telemetry.New(tcfg)

	return &engine{
		cfg:   cfg,
		token: token,
		log:   l,
		asm:   export.NewAssembler(st, loader, cfg.Export.OutputDir),
		st:    st,
		tm:    tm,
	}
}

// swatches picks the color source for a document: job colors first, then the
// shared Postgres library when configured, then the local sqlite library,
// finally the built-in palette.
func (e *engine) swatches(ctx context.Context, job *jobspec.Job) []domain.ColorSwatch {
	if job != nil && len(job.Colors) > 0 {
		return job.Colors
	}
	if e.cfg.Backend.DSN != "" {
		if db, err := backend.OpenDB(ctx, e.cfg.Backend.DSN); err == nil {
			defer db.Close()
			if sw, err := backend.LoadSwatches(ctx, db); err == nil && len(sw) > 0 {
				return sw
			} else if err != nil {
				e.log.Warn("swatch library query failed", slog.Any("err", err))
			}
		} else {
			e.log.Warn("swatch library unavailable", slog.Any("err", err))
		}
	}
	if path := paletteDBPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			if store, err := palette.Open(path); err == nil {
				defer store.Close()
				if sw, err := store.Load(ctx); err == nil && len(sw) > 0 {
					return sw
				}
			}
		}
	}
	return palette.Default()
}

// audit records a generated document in the shared library's export log.
// Best effort: a missing or unreachable library never blocks delivery.
func (e *engine) audit(ctx context.Context, docType, path string) {
	if e.cfg.Backend.DSN == "" {
		return
	}
	db, err := backend.OpenDB(ctx, e.cfg.Backend.DSN)
	if err != nil {
		e.log.Debug("export audit skipped", slog.Any("err", err))
		return
	}
	defer db.Close()
	if err := backend.RecordExport(ctx, db, docType, path); err != nil {
		e.log.Warn("export audit failed", slog.Any("err", err))
	}
}

// paletteDBPath is the local swatch library, kept next to the user config.
func paletteDBPath() string {
	cp, err := config.ConfigPath()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(cp), "palette.db")
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func loadJob(l *slog.Logger, path string) *jobspec.Job {
	job, err := jobspec.Load(path)
	if err != nil {
		fail(l, "job load failed", err)
	}
	return job
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var exportDir string
	var tm *telemetry.Client
	defer func() { crash.Recover(exportDir, tm) }()

	args := os.Args
	ctx := context.Background()
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		case "stamp":
			if len(args) < 4 {
				fmt.Println("stamp requires <job.json> and <view-type>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			viewType := args[3]
			var view *domain.ProofView
			for i := range job.Views {
				if job.Views[i].Type == viewType {
					view = &job.Views[i]
					break
				}
			}
			if view == nil {
				fail(l, "view not in job", fmt.Errorf("job has no %q view", viewType))
			}
			spec := job.Overlay(registry.ResolveLabel(job.Tool, job.ToolName))
			base := fmt.Sprintf("%s-%s", sanitizeBase(job.Vehicle.Model), viewType)
			path, err := e.asm.DownloadWithOverlay(ctx, view.URL, base, spec)
			if err != nil {
				fail(l, "stamp failed", err)
			}
			e.tm.Event("export.stamp", map[string]any{"view": viewType})
			e.audit(ctx, "stamp", path)
			fmt.Println("Wrote", path)
			return
		case "stamp-all":
			if len(args) < 3 {
				fmt.Println("stamp-all requires <job.json>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			spec := job.Overlay(registry.ResolveLabel(job.Tool, job.ToolName))
			urls := make([]string, 0, len(job.Views))
			for _, v := range job.Views {
				urls = append(urls, v.URL)
			}
			paths, err := e.asm.DownloadAllWithOverlay(ctx, urls, spec, e.cfg.Export.DownloadDelay())
			if err != nil {
				fail(l, "stamp-all failed", err)
			}
			e.tm.Event("export.stamp", map[string]any{"count": len(paths)})
			for _, p := range paths {
				e.audit(ctx, "stamp", p)
				fmt.Println("Wrote", p)
			}
			return
		case "proof":
			if len(args) < 3 {
				fmt.Println("proof requires <job.json>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			path, err := e.asm.ProofSheet(ctx, export.ProofSheetRequest{
				Views:      job.Views,
				Vehicle:    job.Vehicle,
				DesignName: job.DesignName,
				ToolKey:    job.Tool,
				ToolName:   job.ToolName,
			})
			if err != nil {
				fail(l, "proof sheet failed", err)
			}
			e.tm.Event("export.proofsheet", map[string]any{"views": len(job.Views)})
			e.audit(ctx, "proof-sheet", path)
			fmt.Println("Wrote", path)
			return
		case "poster":
			if len(args) < 3 {
				fmt.Println("poster requires <job.json>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			path, err := e.asm.ColorPoster(ctx, export.PosterRequest{
				Swatches:    e.swatches(ctx, job),
				ShowcaseURL: job.ShowcaseURL,
			})
			if err != nil {
				fail(l, "poster failed", err)
			}
			e.tm.Event("export.poster", nil)
			e.audit(ctx, "color-poster", path)
			fmt.Println("Wrote", path)
			return
		case "chart":
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			var job *jobspec.Job
			if len(args) >= 3 {
				job = loadJob(l, args[2])
			}
			path, err := e.asm.SampleChart(e.swatches(ctx, job))
			if err != nil {
				fail(l, "sample chart failed", err)
			}
			e.tm.Event("export.chart", nil)
			e.audit(ctx, "sample-chart", path)
			fmt.Println("Wrote", path)
			return
		case "catalog":
			if len(args) < 3 {
				fmt.Println("catalog requires <job.json>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			path, err := e.asm.Catalog(ctx, export.CatalogRequest{
				Swatches: e.swatches(ctx, job),
				Gallery:  job.Gallery,
			})
			if err != nil {
				fail(l, "catalog failed", err)
			}
			e.tm.Event("export.catalog", map[string]any{"gallery": len(job.Gallery)})
			e.audit(ctx, "catalog", path)
			fmt.Println("Wrote", path)
			return
		case "palette-save":
			if len(args) < 3 {
				fmt.Println("palette-save requires <job.json>")
				usage()
				os.Exit(2)
			}
			job := loadJob(l, args[2])
			if len(job.Colors) == 0 {
				fail(l, "no colors in job", fmt.Errorf("job %s carries no colors", args[2]))
			}
			dbPath := paletteDBPath()
			if dbPath == "" {
				fail(l, "palette path unresolved", fmt.Errorf("cannot resolve config directory"))
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				fail(l, "palette dir create failed", err)
			}
			store, err := palette.Open(dbPath)
			if err != nil {
				fail(l, "palette open failed", err)
			}
			defer store.Close()
			if err := store.Save(ctx, job.Colors); err != nil {
				fail(l, "palette save failed", err)
			}
			fmt.Printf("Stored %d colors in %s\n", len(job.Colors), dbPath)
			return
		case "designs":
			e := newEngine(l)
			tm = e.tm
			if e.cfg.Backend.BaseURL == "" {
				fail(l, "no backend configured", fmt.Errorf("set backend base_url in config or %s", config.EnvBackendURL))
			}
			c := backend.NewClient(e.cfg.Backend.BaseURL, e.token)
			list, err := c.ListDesigns(ctx)
			if err != nil {
				fail(l, "list designs failed", err)
			}
			for _, d := range list {
				fmt.Printf("%6d  %-30s %s %s %s (%d views)\n", d.ID, d.Name, d.Vehicle.Year, d.Vehicle.Make, d.Vehicle.Model, d.ViewCount)
			}
			return
		case "pull":
			if len(args) < 4 {
				fmt.Println("pull requires <id> and <out.json>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			tm = e.tm
			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				fail(l, "bad design id", err)
			}
			if e.cfg.Backend.BaseURL == "" {
				fail(l, "no backend configured", fmt.Errorf("set backend base_url in config or %s", config.EnvBackendURL))
			}
			c := backend.NewClient(e.cfg.Backend.BaseURL, e.token)
			env, err := c.GetDesign(ctx, id)
			if err != nil {
				fail(l, "fetch design failed", err)
			}
			job := jobspec.Job{
				Vehicle:    env.Design.Vehicle,
				DesignName: env.Design.Name,
				Tool:       env.Design.Tool,
				Views:      env.Views,
			}
			data, err := json.MarshalIndent(job, "", "  ")
			if err != nil {
				fail(l, "encode job failed", err)
			}
			if err := os.WriteFile(args[3], append(data, '\n'), 0o644); err != nil {
				fail(l, "write job failed", err)
			}
			fmt.Println("Wrote", args[3])
			return
		case "preview":
			if len(args) < 4 {
				fmt.Println("preview requires <job.json> and <view-type>")
				usage()
				os.Exit(2)
			}
			e := newEngine(l)
			exportDir, tm = e.cfg.Export.OutputDir, e.tm
			job := loadJob(l, args[2])
			viewType := args[3]
			for _, v := range job.Views {
				if v.Type == viewType {
					spec := job.Overlay(registry.ResolveLabel(job.Tool, job.ToolName))
					if err := preview.Show(ctx, e.st, v.URL, spec); err != nil {
						fail(l, "preview failed", err)
					}
					return
				}
			}
			fail(l, "view not in job", fmt.Errorf("job has no %q view", viewType))
			return
		}
	}

	usage()
}

// sanitizeBase keeps stamped file stems readable when vehicle metadata has
// spaces or punctuation.
func sanitizeBase(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "render"
	}
	return string(out)
}
