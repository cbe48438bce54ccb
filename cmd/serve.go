package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/fleet-cli/internal/export"
	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/loader"
	"github.com/sells-group/fleet-cli/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fleet dashboard API server",
	Long:  "Serves the decision report over HTTP. The finance roster is editable per session; every request recomputes from a fresh snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snap, err := loader.Load(ctx, cfg.Sources)
		if err != nil {
			return err
		}
		sess := session.New(snap)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(sess),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(sess *session.Session) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/report", func(w http.ResponseWriter, req *http.Request) {
		action, ok := fleet.ParseAction(req.URL.Query().Get("action"))
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid action filter"})
			return
		}

		rep := sess.Recompute()
		rep.Records = fleet.FilterByAction(rep.Records, action)
		writeJSON(w, http.StatusOK, rep)
	})

	r.Get("/api/summary", func(w http.ResponseWriter, req *http.Request) {
		rep := sess.Recompute()
		writeJSON(w, http.StatusOK, fleet.Summarize(rep.Records))
	})

	r.Post("/api/trucks", func(w http.ResponseWriter, req *http.Request) {
		var truck session.Truck
		if err := json.NewDecoder(req.Body).Decode(&truck); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := sess.AddTruck(truck); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"unit_id": truck.UnitID,
			"version": sess.Version(),
		})
	})

	r.Get("/api/export.csv", func(w http.ResponseWriter, req *http.Request) {
		rep := sess.Recompute()

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="truck_decisions.csv"`)
		if err := export.EncodeDecisionsCSV(rep.Records, w); err != nil {
			zap.L().Error("export stream failed", zap.Error(err))
		}
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response failed", zap.Error(err))
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
