// Copyright 2025 BrandSentry, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brandsentry/go-brand-compliance/internal/core/model"
	"github.com/brandsentry/go-brand-compliance/internal/telemetry"
)

func main() {
	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()
	r.Use(otelgin.Middleware(config.Application.Name))
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		ComplianceRouter(apiV1)
		FileUpload(apiV1)
		apiV1.GET("/healthz", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	port := config.Application.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed", "error", err)
	}
	state.cloud.Close()

	log.Println("Server exiting")
}

// ComplianceRouter sets up the compliance analysis routes: a synchronous
// check that returns the finished report, and a streaming variant that
// delivers progress events over SSE as the pipeline runs.
func ComplianceRouter(r *gin.RouterGroup) {
	compliance := r.Group("/compliance")
	{
		compliance.POST("/check", func(c *gin.Context) {
			var req model.ComplianceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			video, err := resolveVideo(&req)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			report, err := state.pipeline.Run(c.Request.Context(), &req, video)
			if err != nil {
				slog.ErrorContext(c.Request.Context(), "compliance analysis failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "compliance analysis failed"})
				return
			}
			c.JSON(http.StatusOK, report)
		})

		compliance.POST("/check/stream", func(c *gin.Context) {
			var req model.ComplianceRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			video, err := resolveVideo(&req)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			c.Writer.Header().Set("Content-Type", "text/event-stream")
			c.Writer.Header().Set("Cache-Control", "no-cache")
			c.Writer.Header().Set("Connection", "keep-alive")

			// The pipeline runs on its own goroutine and hands progress
			// events over a channel; the handler goroutine owns the
			// response writer.
			updates := make(chan model.ProgressUpdate, 16)
			var report *model.ComplianceReport
			var runErr error
			go func() {
				defer close(updates)
				report, runErr = state.pipeline.Stream(c.Request.Context(), &req, video,
					func(update model.ProgressUpdate) {
						updates <- update
					})
			}()

			c.Stream(func(w io.Writer) bool {
				update, ok := <-updates
				if !ok {
					if runErr != nil {
						c.SSEvent("error", gin.H{"error": runErr.Error()})
					} else {
						c.SSEvent("report", report)
					}
					return false
				}
				c.SSEvent("progress", update)
				return true
			})
		})
	}
}

// FileUpload sets up the route for staging videos ahead of analysis. Each
// uploaded file is sniffed to confirm it is actually a video and stored
// under a fresh handle the client passes back as uploadId.
func FileUpload(r *gin.RouterGroup) {
	upload := r.Group("/uploads")
	{
		upload.POST("", func(c *gin.Context) {
			form, err := c.MultipartForm()
			if err != nil {
				c.String(http.StatusBadRequest, "get form err: %s", err.Error())
				return
			}
			files := form.File["files"]
			if len(files) == 0 {
				c.String(http.StatusBadRequest, "no files provided")
				return
			}

			type uploadResult struct {
				ID          string `json:"id"`
				Filename    string `json:"filename"`
				ContentType string `json:"contentType"`
			}
			results := make([]uploadResult, 0, len(files))

			for _, file := range files {
				f, err := file.Open()
				if err != nil {
					c.String(http.StatusBadRequest, "upload file err: %s", err.Error())
					return
				}
				content, err := io.ReadAll(f)
				_ = f.Close()
				if err != nil {
					log.Println(err)
					c.Status(http.StatusInternalServerError)
					return
				}

				kind, _ := filetype.Match(content)
				if !filetype.IsVideo(content) {
					c.String(http.StatusUnsupportedMediaType,
						"file %s is not a video", file.Filename)
					return
				}

				id := uuid.NewString()
				if err := state.uploads.Put(id, content, kind.MIME.Value); err != nil {
					slog.ErrorContext(c.Request.Context(), "failed to store upload", "error", err)
					c.Status(http.StatusInternalServerError)
					return
				}
				results = append(results, uploadResult{
					ID:          id,
					Filename:    file.Filename,
					ContentType: kind.MIME.Value,
				})
			}
			c.JSON(http.StatusOK, results)
		})
	}
}
